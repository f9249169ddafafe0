// Package store provides the persistence surface consumed by expansion and
// dispatch: resolving experiments, actions, runs, and a run's stored
// parameter groups.
//
// The Store interface is deliberately narrow so it can be backed by any
// engine. The default FileStore keeps the whole project state in one YAML
// file under .gridrun/ and serves every read from the snapshot taken when
// the store was opened.
package store
