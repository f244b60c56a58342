package domain

import (
	"time"

	"github.com/google/uuid"
)

type ActivityKind string

const (
	ActivityInit  ActivityKind = "init"
	ActivityOtp   ActivityKind = "otp"
	ActivityHello ActivityKind = "hello"
)

// ActivityEvent is one request the gateway observed. Subject is a keyed hash
// of the normalised email; plain addresses are never stored.
type ActivityEvent struct {
	Id        uuid.UUID
	Subject   []byte
	Kind      ActivityKind
	Status    int
	CreatedAt time.Time
}

func (e ActivityEvent) Succeeded() bool {
	return e.Status >= 200 && e.Status < 300
}
