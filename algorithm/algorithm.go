// Package algorithm defines the shared contract implemented by every
// miss-ratio-curve generator (Kosmo, MiniSim): feed it a trace one Access at
// a time, optionally thin the trace with SHARDS, and pull a Curve out at the
// end.
package algorithm

import (
	"github.com/IvanBrykalov/kosmo/access"
	"github.com/IvanBrykalov/kosmo/curve"
)

// Algorithm is the shared surface of every MRC generator. Handle is the
// single entry point a driver calls per trace record; it filters out
// records that can never populate a cache and records SHARDS wants dropped,
// then forwards the rest to Process.
type Algorithm interface {
	Handle(a access.Access)

	Process(a access.Access)
	Remove(key access.Key)

	Clean()
	Resize(size uint64)

	Curve() *curve.Curve

	VerifyShards(a access.Access) bool
}

// Handle runs the filtering shared by every Algorithm: it checks the access
// with VerifyAccess and impl.VerifyShards, then calls impl.Process if both
// pass. Every
// concrete driver's Handle method is a one-line call to this helper.
func Handle(impl Algorithm, a access.Access) {
	if !VerifyAccess(a) || !impl.VerifyShards(a) {
		return
	}
	impl.Process(a)
}

// VerifyAccess reports whether a can, on its own, populate a cache entry.
func VerifyAccess(a access.Access) bool {
	return a.IsValidSelfPopulating()
}

// Object is the per-key state every algorithm tracks across the trace: the
// timestamp of its most recent access, its key, and its most recently
// observed size.
type Object struct {
	Timestamp access.Timestamp
	Key       access.Key
	Size      access.Size
}

// NewObject builds an Object from the access that first introduced the key.
func NewObject(a access.Access) Object {
	return Object{Timestamp: a.Timestamp, Key: a.Key, Size: a.Size}
}

// Update refreshes the object's timestamp (and, implicitly, its recency)
// after a subsequent access to the same key.
func (o *Object) Update(a access.Access) {
	o.Timestamp = a.Timestamp
}

// Equal reports whether two objects refer to the same key, the only
// identity that matters once an object has been looked up by key.
func (o Object) Equal(other Object) bool {
	return o.Key == other.Key
}
