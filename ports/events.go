package ports

import (
	"context"

	"github.com/farstack/heimdall/core"
)

// EventPublisher publishes events to notify other services
type EventPublisher interface {
	PublishSignIn(ctx context.Context, identity core.Identity, domain string) error
}
