// Package dispatch executes experiment actions: it resolves an action and a
// run through the store, reassembles the run's stored parameter group into a
// command line, resolves the per-group storage path, and runs the child
// process synchronously.
package dispatch
