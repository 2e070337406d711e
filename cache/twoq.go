package cache

import (
	"container/list"

	"github.com/IvanBrykalov/kosmo/access"
)

// twoQEngine implements 2Q with three resident queues: Ain (first-time
// admissions), Aout (objects demoted from Ain once it overflows — unlike
// the classic key-only ghost list, Aout here holds real, re-admittable
// objects so its size counts toward capacity), and Am (promoted, "hot"
// objects). kin and kout are fractions of maxSize bounding Ain and Aout.
type twoQEngine struct {
	maxSize uint64

	kin, kout float64

	ain, aout, am stackList
	index         map[access.Key]stackRef
}

// stackList is an intrusive list plus its total resident size, mirroring
// the donor twoq policy's ghost-list bookkeeping generalized to
// variable-sized objects.
type stackList struct {
	list *list.List
	size uint64
}

func (s *stackList) isEmpty() bool { return s.list.Len() == 0 }

func (s *stackList) pushFront(obj Object) *list.Element {
	s.size += uint64(obj.Size)
	return s.list.PushFront(obj)
}

func (s *stackList) remove(el *list.Element) Object {
	obj := el.Value.(Object)
	s.list.Remove(el)
	s.size -= uint64(obj.Size)
	return obj
}

func (s *stackList) popBack() (Object, bool) {
	back := s.list.Back()
	if back == nil {
		return Object{}, false
	}
	return s.remove(back), true
}

type queueKind uint8

const (
	queueAin queueKind = iota
	queueAout
	queueAm
)

type stackRef struct {
	kind queueKind
	el   *list.Element
}

func newTwoQEngine(size uint64, kin, kout float64) *twoQEngine {
	return &twoQEngine{
		maxSize: size,
		kin:     kin,
		kout:    kout,
		ain:     stackList{list: list.New()},
		aout:    stackList{list: list.New()},
		am:      stackList{list: list.New()},
		index:   make(map[access.Key]stackRef),
	}
}

// NewTwoQCache constructs a 2Q-policy cache. kin and kout are the Ain/Aout
// capacity fractions of maxSize; kin+kout must not exceed 1.
func NewTwoQCache(size uint64, kin, kout float64) Cache {
	return newShell(newTwoQEngine(size, kin, kout))
}

func (e *twoQEngine) size() uint64 { return e.maxSize }

func (e *twoQEngine) processGet(a access.Access) bool {
	ref, ok := e.index[a.Key]
	if !ok {
		return false
	}

	switch ref.kind {
	case queueAout:
		obj := e.aout.remove(ref.el)
		el := e.am.pushFront(obj)
		e.index[a.Key] = stackRef{kind: queueAm, el: el}
	case queueAm:
		obj := e.am.remove(ref.el)
		el := e.am.pushFront(obj)
		e.index[a.Key] = stackRef{kind: queueAm, el: el}
	}

	return true
}

func (e *twoQEngine) processSet(a access.Access) {
	if uint64(a.Size) > e.maxSize || e.processHas(a.Key) {
		return
	}

	e.reduce(e.maxSize - uint64(a.Size))

	el := e.ain.pushFront(objectFromAccess(a))
	e.index[a.Key] = stackRef{kind: queueAin, el: el}
}

func (e *twoQEngine) processDel(key access.Key) {
	ref, ok := e.index[key]
	if !ok {
		return
	}
	delete(e.index, key)

	switch ref.kind {
	case queueAin:
		e.ain.remove(ref.el)
	case queueAout:
		e.aout.remove(ref.el)
	case queueAm:
		e.am.remove(ref.el)
	}
}

func (e *twoQEngine) processHas(key access.Key) bool {
	_, ok := e.index[key]
	return ok
}

func (e *twoQEngine) currentSize() uint64 {
	return e.ain.size + e.aout.size + e.am.size
}

func (e *twoQEngine) ainMaxSize() uint64 {
	return uint64(e.kin * float64(e.maxSize))
}

func (e *twoQEngine) isAoutFull() bool {
	return e.aout.size > uint64(e.kout*float64(e.maxSize))
}

func (e *twoQEngine) canAinFit(objSize uint64) bool {
	return e.ain.size+objSize <= e.ainMaxSize()
}

func (e *twoQEngine) evictAout() {
	if obj, ok := e.aout.popBack(); ok {
		delete(e.index, obj.Key)
	}
}

func (e *twoQEngine) evictAm() {
	if obj, ok := e.am.popBack(); ok {
		delete(e.index, obj.Key)
	}
}

func (e *twoQEngine) promoteAinObject() {
	obj, ok := e.ain.popBack()
	if !ok {
		return
	}
	el := e.aout.pushFront(obj)
	e.index[obj.Key] = stackRef{kind: queueAout, el: el}
}

func (e *twoQEngine) reduce(targetSize uint64) {
	objSize := e.maxSize - targetSize

	for !e.ain.isEmpty() && !e.canAinFit(objSize) {
		e.promoteAinObject()
	}

	for e.isAoutFull() || (!e.aout.isEmpty() && e.currentSize() > targetSize) {
		e.evictAout()
	}

	for e.currentSize() > targetSize {
		e.evictAm()
	}
}

func (e *twoQEngine) resize(size uint64) {
	e.reduce(size)
	e.maxSize = size
}
