// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gtpilot/gtpilot/internal/apikey"
	"github.com/gtpilot/gtpilot/internal/audit"
	"github.com/gtpilot/gtpilot/internal/config"
	"github.com/gtpilot/gtpilot/internal/db"
	"github.com/gtpilot/gtpilot/internal/i18n"
	"github.com/gtpilot/gtpilot/internal/metrics"
	"github.com/gtpilot/gtpilot/internal/model"
	"github.com/gtpilot/gtpilot/internal/terminal"
)

// Audit events recorded by the analyze paths. They match the dashboard's.
const (
	eventAnalysisStarted  = "Analysis started"
	eventAnalysisFinished = "Analysis finished"
)

// Overridable for tests.
var (
	stdinIsTerminal           = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
	stdinReader     io.Reader = os.Stdin
)

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze",
		Short: i18n.T("cli.analyze_short"),
		Args:  cobra.NoArgs,
		RunE: a.with(func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ms := metrics.Generate(metrics.DefaultSource)
			for _, m := range ms {
				_, _ = fmt.Fprintln(out, m.String())
			}
			_, _ = fmt.Fprintln(out)
			_, _ = fmt.Fprintln(out, a.analyze(cmd.Context(), ms))
			return nil
		}),
	}
}

// analyze runs the bridge once, bracketed by audit events.
func (a *app) analyze(ctx context.Context, ms []model.Metric) string {
	a.audit.Log(ctx, eventAnalysisStarted)
	text := a.bridge.Analyze(ctx, ms)
	a.audit.Log(ctx, eventAnalysisFinished)
	return text
}

func newKeyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: i18n.T("cli.key_short"),
	}

	var reveal bool
	show := &cobra.Command{
		Use:   "show",
		Short: i18n.T("cli.key_show_short"),
		Args:  cobra.NoArgs,
		RunE: a.with(func(cmd *cobra.Command, args []string) error {
			if err := a.keys.Load(cmd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), a.keys.Display(reveal))
			return nil
		}),
	}
	show.Flags().BoolVar(&reveal, "reveal", false, i18n.T("cli.flag_reveal"))

	var yes bool
	regenerate := &cobra.Command{
		Use:   "regenerate",
		Short: i18n.T("cli.key_regenerate_short"),
		Args:  cobra.NoArgs,
		RunE: a.with(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			if err := a.keys.Load(ctx); err != nil {
				return err
			}

			var confirm apikey.Confirmer
			switch {
			case yes:
				confirm = apikey.ConfirmFunc(func(string) bool { return true })
			case stdinIsTerminal():
				confirm = promptConfirmer(out, stdinReader)
			default:
				return errors.New(i18n.T("cli.regenerate_needs_yes"))
			}

			done, err := a.keys.Regenerate(ctx, confirm)
			if err != nil {
				return err
			}
			if !done {
				_, _ = fmt.Fprintln(out, i18n.T("cli.regenerate_aborted"))
				return nil
			}
			_, _ = fmt.Fprintln(out, i18n.T("cli.regenerated", a.keys.Key()))
			return nil
		}),
	}
	regenerate.Flags().BoolVarP(&yes, "yes", "y", false, i18n.T("cli.flag_yes"))

	cp := &cobra.Command{
		Use:   "copy",
		Short: i18n.T("cli.key_copy_short"),
		Args:  cobra.NoArgs,
		RunE: a.with(func(cmd *cobra.Command, args []string) error {
			if err := a.keys.Load(cmd.Context()); err != nil {
				return err
			}
			if a.keys.Copy(a.clipboard()) != apikey.CopyCopied {
				return errors.New(i18n.T("cli.copy_failed"))
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.copied"))
			return nil
		}),
	}

	cmd.AddCommand(show, regenerate, cp)
	return cmd
}

// promptConfirmer asks on out and reads one answer line from in.
func promptConfirmer(out io.Writer, in io.Reader) apikey.Confirmer {
	return apikey.ConfirmFunc(func(prompt string) bool {
		_, _ = fmt.Fprint(out, i18n.T("cli.regenerate_prompt", prompt))
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes", "j", "ja":
			return true
		}
		return false
	})
}

func newAuditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "audit",
		Short: i18n.T("cli.audit_short"),
		Args:  cobra.NoArgs,
		RunE: a.with(func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			entries := a.audit.Entries()
			if len(entries) == 0 {
				_, _ = fmt.Fprintln(out, i18n.T("cli.audit_empty"))
				return nil
			}
			for _, e := range entries {
				_, _ = fmt.Fprintln(out, e)
			}
			return nil
		}),
	}
}

// cliHooks records analyze requests so they run after the line completes.
type cliHooks struct {
	ctx      context.Context
	log      *audit.Logger
	analyzes int
}

func (h *cliHooks) Analyze() { h.analyzes++ }

func (h *cliHooks) LogAudit(event string) { h.log.Log(h.ctx, event) }

func newTermCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "term <command line...>",
		Short: i18n.T("cli.term_short"),
		Args:  cobra.MinimumNArgs(1),
		RunE: a.with(func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			hooks := &cliHooks{ctx: ctx, log: a.audit}
			t := terminal.New(hooks)
			t.Submit(strings.Join(args, " "))
			for _, line := range t.History() {
				_, _ = fmt.Fprintln(out, line)
			}
			for i := 0; i < hooks.analyzes; i++ {
				_, _ = fmt.Fprintln(out)
				_, _ = fmt.Fprintln(out, a.analyze(ctx, metrics.Generate(metrics.DefaultSource)))
			}
			return nil
		}),
	}
}

func newDBMaintainCmd(a *app) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "db-maintain",
		Short: i18n.T("cli.db_maintain_short"),
		Args:  cobra.NoArgs,
		// Maintenance opens its own connection; no services are needed.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			if err := db.RunDBMaintenance(ctx, a.cfg.Database.Type, a.cfg.Database.Dsn); err != nil {
				return fmt.Errorf("database maintenance failed: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.maintenance_done"))
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, i18n.T("cli.flag_timeout"))
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	var system bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: i18n.T("cli.config_short"),
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteConfigFile(&a.cfg, system); err != nil {
				return fmt.Errorf("could not write config: %w", err)
			}
			path, err := config.GetConfigPath(system)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.config_written", path))
			return nil
		},
	}
	cmd.Flags().BoolVar(&system, "system", false, i18n.T("cli.flag_system"))
	return cmd
}
