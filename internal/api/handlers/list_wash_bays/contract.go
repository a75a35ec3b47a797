package list_wash_bays

import (
	"context"

	"github.com/m04kA/CWP-AllocationService/internal/domain"
)

type ResourceRegistry interface {
	ListWashBays(ctx context.Context) ([]*domain.WashBay, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
