package kosmo

import "github.com/IvanBrykalov/kosmo/access"

type lrfuLocalObject struct {
	g      *GlobalObject
	crf    float64
	hasCRF bool
}

func (o *lrfuLocalObject) key() access.Key   { return o.g.object.Key }
func (o *lrfuLocalObject) size() access.Size { return o.g.object.Size }
func (o *lrfuLocalObject) exists() bool      { return o.hasCRF }
