package entities

import "time"

// AccessKey is the single opaque credential kept per content, rotated
// only by callers holding a currently valid grant. Key semantics are
// external to this core; it is stored and rotated, never interpreted.
type AccessKey struct {
	ContentID uint64
	Key       string
	UpdatedAt time.Time
}
