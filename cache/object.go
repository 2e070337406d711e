package cache

import "github.com/IvanBrykalov/kosmo/access"

// Object is the unit of residency tracked by every cache policy: a key and
// the size it occupies. Two Objects are equal iff their keys match — size
// is metadata, not part of identity.
type Object struct {
	Key  access.Key
	Size access.Size
}

func objectFromAccess(a access.Access) Object {
	return Object{Key: a.Key, Size: a.Size}
}
