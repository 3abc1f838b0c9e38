// Package envelope defines the plain-text message published on the
// destination side and its wire codecs.
package envelope

import (
	"fmt"
	"time"
)

// RootEntityPath is the entity path stamped on every bridged message.
const RootEntityPath = "/"

// Header carries the per-message metadata of an Envelope.
type Header struct {
	Timestamp   time.Time `json:"timestamp"`
	ReferenceID uint64    `json:"reference_id"`
	EntityPath  string    `json:"entity_path"`
}

// Envelope is a plain-text message with a header.
type Envelope struct {
	Header Header `json:"header"`
	Body   string `json:"body"`
}

// New wraps body in an Envelope stamped with now, reference id 0 and the
// root entity path.
func New(body string, now time.Time) Envelope {
	return Envelope{
		Header: Header{
			Timestamp:   now.UTC(),
			ReferenceID: 0,
			EntityPath:  RootEntityPath,
		},
		Body: body,
	}
}

func (e Envelope) String() string {
	return fmt.Sprintf("PlainText{header: {timestamp: %s, reference_id: %d, entity_path: %q}, body: %q}",
		e.Header.Timestamp.Format(time.RFC3339Nano), e.Header.ReferenceID, e.Header.EntityPath, e.Body)
}
