// Package track persists the games a user is watching for price drops.
//
// Two backends implement the same Store interface:
//   - Postgres (pgx pool), for shared deployments
//   - SQLite (embedded), for single-machine setups
//
// Rows are immutable once written; the only mutation is deletion.
package track
