package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/procuredesk/procurement-api/internal/core/domain"
	"github.com/procuredesk/procurement-api/internal/core/ports"
)

// CategoryService is the operator CRUD surface over product categories.
type CategoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name required", domain.ErrPreconditionFailed)
	}

	slug := slugify(name)
	if existing, err := s.repo.FindBySlug(ctx, slug); err == nil && existing != nil {
		return nil, domain.ErrCategoryExists
	}

	now := time.Now().UTC()
	cat := &domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, cat); err != nil {
		return nil, err
	}

	s.log.Info().Str("category_id", cat.ID).Str("slug", cat.Slug).Msg("category created")
	return cat, nil
}

func (s *CategoryService) Rename(ctx context.Context, id, name string) (*domain.Category, error) {
	cat, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name required", domain.ErrPreconditionFailed)
	}

	slug := slugify(name)
	if other, err := s.repo.FindBySlug(ctx, slug); err == nil && other != nil && other.ID != id {
		return nil, domain.ErrCategoryExists
	}

	cat.Name = name
	cat.Slug = slug
	cat.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("category_id", id).Msg("category deleted")
	return nil
}

func (s *CategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.List(ctx)
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.Join(strings.Fields(slug), "-")
	return slug
}
