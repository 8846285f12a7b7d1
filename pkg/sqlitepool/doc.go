// Package sqlitepool provides the SQLite connection pool used by
// zombiescan's persistence layer.
//
// It wraps zombiezen.com/go/sqlite with production defaults: WAL
// journal mode so scan writes never block report reads, NORMAL
// synchronous for crash-safe-enough durability (assessments can be
// regenerated by rescanning), a busy timeout to absorb write
// contention, and foreign keys enabled because assessment reasons
// reference their parent rows.
//
// The package is intentionally thin. Callers Take a connection, run
// SQL with sqlitex.Execute, and Put the connection back; transactions
// use sqlitex's helpers directly. There is no query builder and no
// ORM-style abstraction on top of SQLite.
package sqlitepool
