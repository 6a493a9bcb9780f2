// Package cli provides the interactive pricekeeper command-line client.
//
// It wires configuration, the local queue, the gRPC client, the connectivity
// monitor and the sync scheduler, then runs a REPL for recording supplier
// prices. Entries typed while the server is unreachable are queued and pushed
// automatically once it comes back.
//
// Commands:
//   - add       record a price (prompts, or: add <product> <supplier> <price> [qty] [date])
//   - pending   list queued entries not yet synced
//   - history   list every locally recorded entry
//   - status    connectivity and queue counters
//   - sync      push queued entries now
//   - offline   stop talking to the server until "online"
//   - online    resume connectivity checks
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
