// Package database is the local document store behind talentflow.
//
// Every entity lives in its own SQLite table as a JSON document plus a few
// extracted columns that back secondary indexes (status, stage, job_id,
// candidate_id, slug and the candidate+job / candidate+assessment pairs).
//
// Writes only happen inside Store.Update, which wraps one SQLite transaction:
// either every write made by the callback becomes visible or none does. The
// connection pool is capped at one connection, so transactions never
// interleave and readers only ever see committed state.
//
// Interceptors run on every insert and update. The built-in Timestamps
// interceptor is the single place where created/updated times are written.
package database
