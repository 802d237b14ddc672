package domain

import (
	"strings"

	"stringdesk/internal/errors"
)

// Status is the closed set of states a stringing job moves through.
type Status string

const (
	StatusReceived Status = "RECEIVED"
	StatusWorking  Status = "WORKING"
	StatusDone     Status = "DONE"
	StatusPickedUp Status = "PICKED_UP"
)

// AllStatuses is the ring order used by the staff scan policy.
var AllStatuses = []Status{StatusReceived, StatusWorking, StatusDone, StatusPickedUp}

// ParseStatus decodes a status string. Input is trimmed and upper-cased
// before matching; anything outside the 4 values is an InvalidStatusError.
func ParseStatus(s string) (Status, error) {
	normalized := Status(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range AllStatuses {
		if normalized == st {
			return st, nil
		}
	}
	return "", errors.NewInvalidStatusError("unknown status " + strings.TrimSpace(s))
}

// Next returns the successor in the full 4-state ring:
// RECEIVED -> WORKING -> DONE -> PICKED_UP -> RECEIVED.
// This is the staff scan-toggle policy; admin direct-set bypasses it.
func (s Status) Next() Status {
	for i, st := range AllStatuses {
		if s == st {
			return AllStatuses[(i+1)%len(AllStatuses)]
		}
	}
	return StatusReceived
}

func (s Status) String() string {
	return string(s)
}
