package port

import (
	"context"

	"github.com/bnema/mediaconv/internal/domain"
)

type HistoryStore interface {
	Save(ctx context.Context, r *domain.ConversionRecord) error
	Get(ctx context.Context, id string) (*domain.ConversionRecord, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.ConversionRecord, error)
}
