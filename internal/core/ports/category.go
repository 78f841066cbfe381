package ports

import (
	"context"

	"github.com/procuredesk/procurement-api/internal/core/domain"
)

// CategoryRepository persists the operator-managed category registry.
type CategoryRepository interface {
	Insert(ctx context.Context, c *domain.Category) error
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	Update(ctx context.Context, c *domain.Category) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Category, error)
}

// CategoryService is the operator CRUD surface over product categories.
type CategoryService interface {
	Create(ctx context.Context, name string) (*domain.Category, error)
	Rename(ctx context.Context, id, name string) (*domain.Category, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Category, error)
}
