package kosmo

import "github.com/IvanBrykalov/kosmo/access"

// lruLocalObject is inferred by analogy with its sibling policies: the
// reference implementation's lru_local_object.rs is an empty file, so this
// follows LruEvictionMap's plain boolean residency (no count or CRF is
// tracked per object for LRU) and reuses the object's own last-access
// timestamp as the reconstructed stack's recency order.
type lruLocalObject struct {
	g            *GlobalObject
	objectExists bool
}

func (o *lruLocalObject) key() access.Key   { return o.g.object.Key }
func (o *lruLocalObject) size() access.Size { return o.g.object.Size }
func (o *lruLocalObject) exists() bool      { return o.objectExists }
