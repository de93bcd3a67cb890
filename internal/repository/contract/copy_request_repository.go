package contract

import (
	"context"

	"ai-copychat-be/internal/entity"
	"ai-copychat-be/internal/repository/specification"
)

type CopyRequestRepository interface {
	Create(ctx context.Context, request *entity.CopyRequest) error
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type UsageEventRepository interface {
	Create(ctx context.Context, event *entity.UsageEvent) error
}
