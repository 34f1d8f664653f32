package storage

import "errors"

// ErrUnavailable wraps genuine backend I/O failures (disk full, permission
// denied, backend unreachable). A delete of a missing path is a no-op and
// never returns it.
var ErrUnavailable = errors.New("asset storage unavailable")

// Store is a flat content namespace for binary assets. Save never overwrites
// an existing object; the returned path is the stable reference to hand out.
type Store interface {
	Save(data []byte, namespace string) (string, error)
	Delete(path string) error
	Exists(path string) (bool, error)
}
