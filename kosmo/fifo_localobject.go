package kosmo

import "github.com/IvanBrykalov/kosmo/access"

type fifoLocalObject struct {
	g                *GlobalObject
	insertedTimestamp access.Timestamp
	hasTimestamp      bool
}

func (o *fifoLocalObject) key() access.Key   { return o.g.object.Key }
func (o *fifoLocalObject) size() access.Size { return o.g.object.Size }
func (o *fifoLocalObject) exists() bool      { return o.hasTimestamp }
