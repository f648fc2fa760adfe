package conf

// temporaryPath is the reserved cache key of the session-only document.
// It is never a valid file path, so the commit step can never select it.
const temporaryPath = ""

// Ref is the common read/write reference to a cached document. It is
// implemented only by Handle and TempHandle; the unexported method
// keeps foreign implementations out so every Ref was issued by a Store.
type Ref interface {
	confPath() string
}

// Handle refers to a persistent cached document backed by a real file
// path. Persistent documents participate in the commit step and can be
// flushed explicitly.
type Handle struct {
	path string
}

// Path returns the absolute file path backing the document.
func (h Handle) Path() string { return h.path }

func (h Handle) confPath() string { return h.path }

// TempHandle refers to the session-only document. It deliberately has
// no path and no flush operation: temporary configuration never reaches
// disk.
type TempHandle struct{}

func (TempHandle) confPath() string { return temporaryPath }
