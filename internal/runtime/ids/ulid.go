package ids

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newULID() ulid.ULID {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
}

// NewMessageID returns a time-sortable ULID used as the UUID of outgoing messages.
func NewMessageID() string {
	return newULID().String()
}

// NewNodeID returns a lower-case ULID that is safe to embed in a node name.
func NewNodeID() string {
	return strings.ToLower(newULID().String())
}
