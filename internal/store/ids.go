package store

import "github.com/rs/xid"

const (
	categoryIDPrefix = "cat"
	clipIDPrefix     = "clip"
)

// IDFunc returns a fresh identifier for the given prefix ("cat" or "clip").
type IDFunc func(prefix string) string

// NewID returns prefix_<xid>. xid values are unique across processes, so ids
// minted after a reload never collide with persisted ones.
func NewID(prefix string) string {
	return prefix + "_" + xid.New().String()
}
