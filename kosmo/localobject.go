package kosmo

import "github.com/IvanBrykalov/kosmo/access"

// localObject is a GlobalObject's view at one specific reconstructed cache
// size, as produced by evictionMap.asLocalObject. It only exists long
// enough to be pushed onto (or skipped by) a reconstructedStack.
type localObject interface {
	key() access.Key
	size() access.Size

	// exists reports whether the object is resident in the reconstructed
	// stack at the size asLocalObject was called with. A non-existent
	// local object is never inserted into its stack.
	exists() bool
}
