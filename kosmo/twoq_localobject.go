package kosmo

import "github.com/IvanBrykalov/kosmo/access"

type twoQStackKind uint8

const (
	twoQStackA1 twoQStackKind = iota
	twoQStackAm
)

// twoQStackLocation is where a resident object sits in the 2Q stack:
// either the combined Ain+Aout region (with the timestamp it was inserted
// under), or the promoted Am region.
type twoQStackLocation struct {
	kind              twoQStackKind
	insertedTimestamp access.Timestamp // meaningful only when kind == twoQStackA1
}

type twoQLocalObject struct {
	g           *GlobalObject
	location    twoQStackLocation
	hasLocation bool
}

func (o *twoQLocalObject) key() access.Key   { return o.g.object.Key }
func (o *twoQLocalObject) size() access.Size { return o.g.object.Size }
func (o *twoQLocalObject) exists() bool      { return o.hasLocation }
