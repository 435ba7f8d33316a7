// Package commands contains business operations that modify the station's
// local order set. Implements the Command pattern for write operations in the
// CQRS architecture.
//
// Two families of commands live here:
//   - ApplyTransition: a staff action routed through the stage transition
//     rules, applied optimistically and reconciled against the order store
//   - Ingest*/RefreshSnapshot: reconciler commands merging asynchronously
//     delivered creates, updates and full snapshots into the working set
//
// All commands follow a consistent pattern: constructor validation, local
// application, and store reconciliation. No handler ever mutates a stored
// order in place; aggregates are replaced wholesale.
package commands
