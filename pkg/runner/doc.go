// Package runner launches expanded runs on the local machine: one child
// process per parameter group, bounded concurrency, per-group output
// capture, and YAML manifests that make a run resumable and inspectable.
package runner
