package kosmo

import "github.com/IvanBrykalov/kosmo/access"

type lfuLocalObject struct {
	g        *GlobalObject
	count    uint64
	hasCount bool
}

func (o *lfuLocalObject) key() access.Key   { return o.g.object.Key }
func (o *lfuLocalObject) size() access.Size { return o.g.object.Size }
func (o *lfuLocalObject) exists() bool      { return o.hasCount }
