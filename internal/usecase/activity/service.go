// Package activity records user interactions with products. The
// resulting log feeds the personalization and popularity strategies.
package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kailas-cloud/shoprank/internal/domain"
	"github.com/kailas-cloud/shoprank/internal/domain/behavior"
)

// Service handles behavior event tracking.
type Service struct {
	log Appender
	now func() time.Time
}

// New creates an activity service.
func New(log Appender) *Service {
	return &Service{log: log, now: time.Now}
}

// Track validates and appends an interaction event, stamping it with a
// generated id and the current time.
func (s *Service) Track(ctx context.Context, userID, productID, action string) (behavior.Event, error) {
	a, err := behavior.ParseAction(action)
	if err != nil {
		return behavior.Event{}, fmt.Errorf("parse action: %w: %w", domain.ErrInvalidInput, err)
	}

	e, err := behavior.New(uuid.NewString(), userID, productID, a, s.now().UTC())
	if err != nil {
		return behavior.Event{}, fmt.Errorf("validate event: %w: %w", domain.ErrInvalidInput, err)
	}

	if err := s.log.Append(ctx, &e); err != nil {
		return behavior.Event{}, fmt.Errorf("append event: %w", err)
	}
	return e, nil
}
