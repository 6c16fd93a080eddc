// internal/pathid/doc.go

/*
Package pathid provides the canonical string identity of a kill chain.

A path is an ordered sequence of component names. Its key joins the names with
Delimiter, e.g. `Sensor, C2, Shooter`. The key is the lookup handle for trial
results, so a path given either as a slice or as an already-joined string must
canonicalize to the same key.

Component names that contain the delimiter would make keys ambiguous; the
graph package rejects such names on insertion.
*/
package pathid
