// Package state holds the authoritative in-memory state tree and the
// operations that mutate it.
//
// Every mutation follows the same sequence:
//  1. validate input; on failure return a sentinel error, touching nothing
//  2. apply the change to the in-memory tree
//  3. save the whole tree through the Persister
//
// There is no rollback. If the save fails the in-memory change stands and
// the save error is returned wrapped, so callers may report it.
//
// Deleting an id that does not exist is a successful no-op. Quick field edits
// with a non-finite value are ignored without saving.
package state
