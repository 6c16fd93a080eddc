// Package inmemoryresults provides an ephemeral, thread-safe, in-memory
// implementation of the resultstore.Store interface.
//
// Keys keep their registration order so that ranking ties resolve the same
// way on every query. A single RWMutex guards the store: the engine is the
// only writer and appends one trial at a time, while readers such as the
// view server take the read lock.
package inmemoryresults
