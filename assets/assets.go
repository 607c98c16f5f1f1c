// Package assets bundles files the server needs at runtime.
package assets

import "embed"

// PostgresMigrations holds the golang-migrate scripts for the postgres store.
//
//go:embed migrations/postgres/*.sql
var PostgresMigrations embed.FS

// PostgresMigrationsDir is the directory of PostgresMigrations holding the scripts.
const PostgresMigrationsDir = "migrations/postgres"
