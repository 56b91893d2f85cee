package ports

import (
	"context"

	"github.com/farstack/heimdall/core"
)

// StatusProvider fetches the downstream per-account status resource.
type StatusProvider interface {
	Status(ctx context.Context, fid int64) (core.UserStatus, error)
}
