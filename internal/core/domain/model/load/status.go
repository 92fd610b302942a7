package load

import (
	"regexp"
	"strings"
)

// Status is a carrier-reported load status in canonical form: upper-case,
// trimmed, with internal whitespace runs collapsed to single underscores
// (e.g. "picked up" -> "PICKED_UP").
//
// The carrier vocabulary is open-ended; Status therefore carries any
// canonical token, and Partner() maps it into the partner-facing vocabulary.
type Status string

const (
	StatusNew        Status = "NEW"
	StatusPending    Status = "PENDING"
	StatusDispatched Status = "DISPATCHED"
	StatusAssigned   Status = "ASSIGNED"
	StatusAccepted   Status = "ACCEPTED"
	StatusPickedUp   Status = "PICKED_UP"
	StatusInTransit  Status = "IN_TRANSIT"
	StatusDelivered  Status = "DELIVERED"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusCanceled   Status = "CANCELED"
)

// Partner-facing status values.
const (
	PartnerAssigned  = "assigned"
	PartnerPickedUp  = "picked_up"
	PartnerDelivered = "delivered"
	PartnerCancelled = "cancelled"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// NormalizeStatus converts a raw carrier status into canonical form.
// The empty string normalizes to the empty Status.
func NormalizeStatus(raw string) Status {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	canonical := whitespaceRun.ReplaceAllString(strings.ToUpper(trimmed), "_")
	return Status(canonical)
}

// getPartnerStatuses returns the mapping from canonical carrier statuses to
// the partner-facing vocabulary. Both CANCELLED spellings map to the same
// partner value.
func getPartnerStatuses() map[Status]string {
	return map[Status]string{
		StatusNew:        PartnerAssigned,
		StatusPending:    PartnerAssigned,
		StatusDispatched: PartnerAssigned,
		StatusAssigned:   PartnerAssigned,
		StatusAccepted:   PartnerAssigned,
		StatusPickedUp:   PartnerPickedUp,
		StatusDelivered:  PartnerDelivered,
		StatusCompleted:  PartnerDelivered,
		StatusCancelled:  PartnerCancelled,
		StatusCanceled:   PartnerCancelled,
	}
}

// Partner maps the status into the partner-facing vocabulary. Statuses
// outside the known carrier vocabulary are passed through lower-cased, so
// the mapping is total and new carrier statuses degrade gracefully instead
// of being dropped.
func (s Status) Partner() string {
	if mapped, ok := getPartnerStatuses()[s]; ok {
		return mapped
	}
	return strings.ToLower(string(s))
}

// String returns the canonical status token.
func (s Status) String() string {
	return string(s)
}

// IsZero reports whether the status carries no value.
func (s Status) IsZero() bool {
	return s == ""
}

// MarksPickedUp reports whether the status records the vehicle leaving the
// pickup location. Both PICKED_UP and IN_TRANSIT qualify, since some carrier
// feeds skip straight to the in-transit state.
func (s Status) MarksPickedUp() bool {
	return s == StatusPickedUp || s == StatusInTransit
}

// MarksDelivered reports whether the status records completed delivery.
// Only DELIVERED qualifies; COMPLETED is an administrative close-out that
// arrives after the physical delivery timestamp is already set.
func (s Status) MarksDelivered() bool {
	return s == StatusDelivered
}

// IsDelivered reports whether the status maps to "delivered" in the partner
// vocabulary. Used to decide whether a missing proof-of-delivery document is
// worth an extra fetch.
func (s Status) IsDelivered() bool {
	return s.Partner() == PartnerDelivered
}
