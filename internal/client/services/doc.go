// Package services holds the client's price entry workflows.
//
// Submitter is the single entry point for recording a price: it writes
// directly to the remote store when online and falls back to the local
// pending queue when offline. SyncEngine drains that queue, and Scheduler
// runs sync passes on reconnect and on a fixed interval.
package services
