// Package params implements the parameter expansion core: turning a
// declarative parameter document or a raw CLI token stream into the ordered,
// collision-free list of fully resolved argument mappings that a process
// launcher consumes.
//
// # Model
//
// An argument mapping (Mapping) binds keys to values. A key is either a
// positional slot ("pos_<n>") or an option name ("--name"); a value is a
// scalar or, for a repeated option, a list of scalars. Mappings are produced
// only by Tokenize, Expand, and ExpandCLI and are immutable once produced.
//
// # Expansion
//
// Three orthogonal axes combine into the final list:
//
//   - fixed arguments, applied to every generated group
//   - explicit parameter groups, in document order
//   - numeric ranges, each generating the half-open sequence
//     start, start+step, ... < stop and multiplying the running set
//
// Ranges form the outer loop of the Cartesian product and explicit groups
// the inner loop, so the order of the result is deterministic for identical
// input. Validation runs exhaustively before expansion: a document that
// fails any check produces no partial result.
//
// All functions in this package are pure and safe for concurrent use.
package params
