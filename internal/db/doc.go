// Package db contains the key/value persistence layer used by GT Pilot.
//
// Everything the dashboard remembers between runs (the generated API key,
// the serialized audit log, the selected time range) lives in a single
// local_storage table. Callers depend on the small Store interface:
//
//   - New(dbType, dsn) opens SQLite (default), PostgreSQL or MySQL, applies
//     the embedded migrations and returns a Bun-backed Store.
//   - NewMemoryStore() returns an in-process Store for tests and for runs
//     started with --ephemeral.
//
// Testing notes
//   - Prefer New("sqlite", "file:<name>?mode=memory&cache=shared") in tests
//     that need real SQL semantics and migrations.
//   - Packages that only need a Store should use NewMemoryStore.
package db
