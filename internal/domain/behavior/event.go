package behavior

import (
	"fmt"
	"time"
)

// Action is a kind of user interaction with a product.
type Action string

// Interaction kinds, ordered by increasing purchase intent.
const (
	View      Action = "VIEW"
	AddToCart Action = "ADD_TO_CART"
	Purchase  Action = "PURCHASE"
)

// IsValid checks if the action is one of the supported values.
func (a Action) IsValid() bool {
	return a == View || a == AddToCart || a == Purchase
}

// Weight returns the tag-affinity weight of the action.
func (a Action) Weight() int {
	switch a {
	case Purchase:
		return 3
	case AddToCart:
		return 2
	default:
		return 1
	}
}

// ParseAction validates a wire-format action string.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", fmt.Errorf("unknown action %q", s)
	}
	return a, nil
}

// Event is a single append-only interaction record.
type Event struct {
	id         string
	userID     string
	productID  string
	action     Action
	occurredAt time.Time
}

// New validates and creates an Event.
func New(id, userID, productID string, action Action, occurredAt time.Time) (Event, error) {
	if id == "" {
		return Event{}, fmt.Errorf("event ID is required")
	}
	if userID == "" {
		return Event{}, fmt.Errorf("user ID is required")
	}
	if productID == "" {
		return Event{}, fmt.Errorf("product ID is required")
	}
	if !action.IsValid() {
		return Event{}, fmt.Errorf("unknown action %q", action)
	}
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}
	return Event{id: id, userID: userID, productID: productID, action: action, occurredAt: occurredAt}, nil
}

// Reconstruct creates an Event without validation (storage hydration).
func Reconstruct(id, userID, productID string, action Action, occurredAt time.Time) Event {
	return Event{id: id, userID: userID, productID: productID, action: action, occurredAt: occurredAt}
}

// ID returns the event identifier.
func (e *Event) ID() string { return e.id }

// UserID returns the acting user.
func (e *Event) UserID() string { return e.userID }

// ProductID returns the product acted on.
func (e *Event) ProductID() string { return e.productID }

// Action returns the interaction kind.
func (e *Event) Action() Action { return e.action }

// OccurredAt returns the interaction timestamp.
func (e *Event) OccurredAt() time.Time { return e.occurredAt }
