// Copyright (c) 2025 GT Pilot
// GT Pilot - social media performance cockpit
// This source code is licensed under the MIT license found in the LICENSE file.

// main.go sets up the root command, the shared service wiring and the
// entry point for execution.

package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gtpilot/gtpilot/buildvars"
	"github.com/gtpilot/gtpilot/internal/analysis"
	"github.com/gtpilot/gtpilot/internal/apikey"
	"github.com/gtpilot/gtpilot/internal/audit"
	"github.com/gtpilot/gtpilot/internal/config"
	"github.com/gtpilot/gtpilot/internal/db"
	"github.com/gtpilot/gtpilot/internal/i18n"
	"github.com/gtpilot/gtpilot/internal/logging"
	"github.com/gtpilot/gtpilot/internal/state"
	"github.com/gtpilot/gtpilot/internal/tui"
)

var version = "dev"   // set by the linker
var gitCommit = "dev" // short commit SHA, set at build time
var buildDate = ""    // RFC3339, set at build time

// Overrides for tests.
var (
	generatorOverride analysis.Generator
	clipboardOverride apikey.Clipboard
	runTUI            = tui.Run
)

// app holds the flags and services shared by all commands of one root.
type app struct {
	cfgFile   string
	verbose   bool
	ephemeral bool

	cfg    config.Config
	store  db.Store
	audit  *audit.Logger
	keys   *apikey.Manager
	bridge *analysis.Bridge
}

// loadConfig reads .env, the config file, environment and flags into a.cfg.
func (a *app) loadConfig(cmd *cobra.Command) error {
	if a.verbose {
		logging.SetDebug(true)
		db.SetDebug(true)
	}

	if err := config.LoadDotEnv(); err != nil {
		logging.Warnf("could not read .env: %v", err)
	}

	cfgPath, err := getConfigPathFromCli(cmd)
	if err != nil {
		return err
	}
	defaults := config.Defaults()
	a.cfg, err = config.LoadConfig[config.Config](cmd, defaults, cfgPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Empty values in a config file fall back to the defaults.
	if a.cfg.Database.Type == "" {
		a.cfg.Database.Type = defaults["database.type"].(string)
	}
	if a.cfg.Database.Dsn == "" {
		a.cfg.Database.Dsn = defaults["database.dsn"].(string)
	}
	if a.cfg.Language == "" {
		a.cfg.Language = defaults["language"].(string)
	}
	if a.cfg.Gemini.Model == "" {
		a.cfg.Gemini.Model = config.DefaultModel
	}

	i18n.Init(a.cfg.Language)
	return nil
}

// setup loads configuration and opens the services for cmd.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}

	var err error
	if a.ephemeral {
		a.store = db.NewMemoryStore()
	} else {
		if err := ensureSQLiteDir(a.cfg.Database.Type, a.cfg.Database.Dsn); err != nil {
			return err
		}
		a.store, err = db.New(a.cfg.Database.Type, a.cfg.Database.Dsn)
		if err != nil {
			return fmt.Errorf("could not initialize database: %w", err)
		}
	}

	ctx := cmd.Context()
	a.audit = audit.New(a.store)
	if err := a.audit.Load(ctx); err != nil {
		_ = a.teardown()
		return err
	}
	a.keys = apikey.NewManager(a.store, a.audit)

	state.Credential.SetString(config.ResolveCredential(a.cfg))
	var gen analysis.Generator = analysis.NewGeminiClient(
		a.cfg.Gemini.Endpoint,
		time.Duration(a.cfg.Gemini.TimeoutSeconds)*time.Second,
		state.Credential.String,
	)
	if generatorOverride != nil {
		gen = generatorOverride
	}
	a.bridge = analysis.NewBridge(gen, a.cfg.Gemini.Model)
	return nil
}

// with wraps a command body so the services are released however it ends.
func (a *app) with(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer func() {
			if err := a.teardown(); err != nil {
				logging.Warnf("error closing store: %v", err)
			}
		}()
		return fn(cmd, args)
	}
}

// teardown releases what setup opened.
func (a *app) teardown() error {
	state.Credential.Clear()
	if a.store == nil {
		return nil
	}
	err := a.store.Close()
	a.store = nil
	return err
}

func (a *app) clipboard() apikey.Clipboard {
	if clipboardOverride != nil {
		return clipboardOverride
	}
	return apikey.SystemClipboard
}

// ensureSQLiteDir creates the parent directory of a file-backed sqlite DSN.
func ensureSQLiteDir(dbType, dsn string) error {
	if dbType != "sqlite" || dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create database directory %s: %w", dir, err)
	}
	return nil
}

// Execute runs the CLI. The cmd/gtpilot main package calls it and handles
// the process exit.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

func getConfigPathFromCli(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") {
		return nil, nil
	}
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("could not read --config flag: %w", err)
	}
	if path == "" {
		return nil, nil
	}
	// Make sure the user-provided file exists to avoid silently using defaults.
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	return &path, nil
}

// NewRootCmd creates a fresh root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	i18n.Init(os.Getenv("GTPILOT_LANGUAGE"))
	a := &app{}

	cmd := &cobra.Command{
		Use:           "gtpilot",
		Short:         i18n.T("cli.root_short"),
		Long:          i18n.T("cli.root_long"),
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: a.with(func(cmd *cobra.Command, args []string) error {
			return a.runDashboard(cmd)
		}),
	}

	v, c, d := resolveBuildVersion(nil)
	compositeVersion := v
	if c != "" && c != "dev" {
		compositeVersion = compositeVersion + " (" + c + ")"
	}
	if d != "" {
		compositeVersion = compositeVersion + " built: " + d
	}
	cmd.Version = compositeVersion

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", i18n.T("cli.flag_config"))
	pf.BoolVarP(&a.verbose, "verbose", "v", false, i18n.T("cli.flag_verbose"))
	pf.BoolVar(&a.ephemeral, "ephemeral", false, i18n.T("cli.flag_ephemeral"))
	pf.String("language", "", i18n.T("cli.flag_language"))
	pf.String("database.type", "", i18n.T("cli.flag_db_type"))
	pf.String("database.dsn", "", i18n.T("cli.flag_db_dsn"))
	pf.String("gemini.model", "", i18n.T("cli.flag_gemini_model"))

	cmd.AddCommand(
		newAnalyzeCmd(a),
		newKeyCmd(a),
		newAuditCmd(a),
		newTermCmd(a),
		newBackupCmd(a),
		newRestoreCmd(a),
		newDBMaintainCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

// runDashboard launches the TUI with logs redirected to a file.
func (a *app) runDashboard(cmd *cobra.Command) error {
	logPath := a.cfg.Log.File
	if logPath == "" {
		if dir, err := os.UserCacheDir(); err == nil {
			logPath = filepath.Join(dir, "gtpilot", "gtpilot.log")
		}
	}
	if logPath != "" {
		closeLog, err := logging.ToFile(logPath)
		if err != nil {
			logging.Warnf("could not open log file %s: %v", logPath, err)
		} else {
			defer func() { _ = closeLog() }()
		}
	}

	ctx := cmd.Context()
	if err := a.keys.Load(ctx); err != nil {
		return err
	}
	err := runTUI(ctx, tui.Deps{
		Store:     a.store,
		Audit:     a.audit,
		Keys:      a.keys,
		Analyzer:  a.bridge,
		Clipboard: a.clipboard(),
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// resolveBuildVersion determines the version, commit and build date from
// linker variables and, when available, the embedded build info.
func resolveBuildVersion(info *debug.BuildInfo) (versionOut, commitOut, dateOut string) {
	resolvedVersion := buildvars.VersionOrDefault(version)
	resolvedCommit := gitCommit
	resolvedDate := buildDate

	var ok bool
	if info == nil {
		if infoLocal, found := debug.ReadBuildInfo(); found {
			info = infoLocal
			ok = true
		}
	} else {
		ok = true
	}

	if ok && info != nil {
		if info.Main.Version != "" && info.Main.Version != "(devel)" {
			resolvedVersion = info.Main.Version
		}
		// Some build paths only record our module as a dependency.
		if (resolvedVersion == "dev" || resolvedVersion == "(devel)") && info.Deps != nil {
			for _, dep := range info.Deps {
				if dep.Path == "github.com/gtpilot/gtpilot" && dep.Version != "" {
					resolvedVersion = dep.Version
					break
				}
			}
		}

		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if s.Value != "" {
					resolvedCommit = s.Value
				}
			case "vcs.time":
				if s.Value != "" {
					resolvedDate = s.Value
				}
			}
		}
	}

	if resolvedVersion == "dev" && gitCommit != "dev" && gitCommit != "" {
		resolvedVersion = gitCommit
	}

	return resolvedVersion, resolvedCommit, resolvedDate
}
