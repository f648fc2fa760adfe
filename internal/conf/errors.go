package conf

import "errors"

// Store and codec errors. Every failure surfaces through one of these
// sentinels so callers can classify with errors.Is.
var (
	// ErrAlreadyExists indicates CreateConf was called for a path that
	// is already cached in this invocation.
	ErrAlreadyExists = errors.New("config already exists")

	// ErrUnknownHandle indicates a handle whose path is not in the
	// cache. Handles are only issued by the store, so this is a
	// defensive check that should be unreachable in normal use.
	ErrUnknownHandle = errors.New("unknown config handle")

	// ErrNotCached indicates Flush was called for a path no longer in
	// the cache.
	ErrNotCached = errors.New("config not cached")

	// ErrNoOption indicates the requested section/key pair is absent
	// from the document and its default section.
	ErrNoOption = errors.New("no such option")

	// ErrMalformedOption indicates a stored value could not be decoded
	// into the requested domain type.
	ErrMalformedOption = errors.New("malformed option")

	// ErrParse indicates a malformed INI document or an invalid
	// document mutation.
	ErrParse = errors.New("malformed config")

	// ErrIO indicates a file could not be read or written.
	ErrIO = errors.New("config i/o failure")
)
