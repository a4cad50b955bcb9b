// Package pg provides PostgreSQL connectivity for the application: pgxpool
// setup with startup retries, goose schema migrations bridged onto the pool,
// a readiness probe, and helpers for classifying common pgx/pgconn errors.
package pg
