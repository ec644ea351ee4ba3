// Package jobstore persists a per-machine ledger of completed fusion runs
// in SQLite, listed by the jobs command.
package jobstore
