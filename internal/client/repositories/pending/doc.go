// Package pending is the client's local durable queue of price entries that
// were recorded while the remote store was unreachable.
//
// Records are appended unsynced, listed in insertion order by the sync
// engine, and flipped to synced exactly once after the remote store accepted
// them. Synced rows are never purged; they double as a local history log.
//
// The SQLite implementation works over a dbx.DBTX. Open the database with
// client.OpenDatabase so the schema exists and the pool is limited to a single
// connection.
//
// Every persistence failure is reported as a *StorageError, which matches
// ErrStorage under errors.Is.
package pending
