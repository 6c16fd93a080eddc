/*
Package component defines the vertex type of a killweb.

A Component owns its outgoing adjacency by name, an optional task and an
optional group label. The adjacency is kept consistent with the edge set by
the graph package; callers outside the graph should treat it as read-only and
use Links for a copy.
*/
package component
