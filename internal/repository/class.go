package repository

import (
	"context"

	"github.com/mpartaud/school-records/internal/domain"
)

type ClassPatch struct {
	Name *string
}

func (p ClassPatch) Empty() bool { return p.Name == nil }

type ClassRepository interface {
	List(ctx context.Context) ([]*domain.Class, error)
	FindByID(ctx context.Context, id int64) (*domain.Class, error)
	Create(ctx context.Context, name string) (*domain.Class, error)
	Update(ctx context.Context, id int64, patch ClassPatch) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Count(ctx context.Context) (int64, error)
}
