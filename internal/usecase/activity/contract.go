package activity

import (
	"context"

	"github.com/kailas-cloud/shoprank/internal/domain/behavior"
)

// Appender defines the interaction-log write contract.
type Appender interface {
	Append(ctx context.Context, e *behavior.Event) error
}
