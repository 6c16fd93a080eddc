// Package graph provides the component graph of a killweb: a directed graph
// whose vertices are components keyed by name and whose edge set mirrors each
// component's outgoing adjacency.
//
// # Consistency
//
// Every mutation keeps two views in step: the edge multiplicity map and the
// OutgoingLinks slice of the source component. Adding the same edge twice is
// allowed and appends the target twice; removing it drops one occurrence. The
// edge u→v exists exactly while v appears in u's adjacency. Removing a
// component strips it from every predecessor's adjacency; a predecessor whose
// adjacency does not list the removed component indicates corrupted state and
// panics.
//
// Degree queries treat the graph as a simple digraph: a repeated edge counts
// once.
//
// # Attributes
//
// AddComponent accepts a flat attribute map. The "task" and "task_arguments"
// pair is handed to the TaskFactory and the resulting task assigned to the
// component. Either key on its own is stored as a free-form attribute and the
// component stays without a task. "system_name" sets the group label; every
// other key is stored as a free-form node attribute, readable through
// Attributes and View.
//
// # Thread-Safety
//
// All methods are safe for concurrent use. Simulation runs read the graph
// while a presentation adapter may read it too; mutating the graph during a
// run invalidates the run's path identities and is the caller's concern.
package graph
