package behavior

import (
	"encoding/json"
	"fmt"
	"time"

	dombehavior "github.com/kailas-cloud/shoprank/internal/domain/behavior"
)

// eventRecord is the wire form of an event in the per-user history list.
type eventRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ProductID  string    `json:"product_id"`
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurred_at"`
}

func marshalEvent(e *dombehavior.Event) (string, error) {
	data, err := json.Marshal(eventRecord{
		ID:         e.ID(),
		UserID:     e.UserID(),
		ProductID:  e.ProductID(),
		Action:     string(e.Action()),
		OccurredAt: e.OccurredAt().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal event %s: %w", e.ID(), err)
	}
	return string(data), nil
}

func unmarshalEvent(raw string) (dombehavior.Event, error) {
	var rec eventRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return dombehavior.Event{}, fmt.Errorf("unmarshal event: %w", err)
	}
	return dombehavior.Reconstruct(
		rec.ID, rec.UserID, rec.ProductID,
		dombehavior.Action(rec.Action), rec.OccurredAt,
	), nil
}
