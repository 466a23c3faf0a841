// Package sqlite records processed contracts in a SQLite database, by
// default ~/.leasefill/data/history.db. It uses the pure Go modernc.org/sqlite
// driver, so builds need no C toolchain.
//
// The schema lives in migrations/ as numbered .up.sql files; each applied
// version is recorded in schema_migrations and skipped on the next open.
// WAL mode with a busy timeout lets the HTTP server and a CLI command share
// the file.
package sqlite
