package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"outlay/internal/core"
	"outlay/internal/store"
)

// CategoryService manages a user's categories. Deleting a category leaves
// expenses that referenced it untouched; aggregation routes them to the
// placeholder group from then on.
type CategoryService struct {
	categories store.CategoryStore
	users      store.UserStore
}

func NewCategoryService(categories store.CategoryStore, users store.UserStore) *CategoryService {
	return &CategoryService{
		categories: categories,
		users:      users,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context, ownerEmail string) ([]core.Category, error) {
	categories, err := s.categories.FindCategoriesByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, ownerEmail, name, description string) (core.Category, error) {
	user, err := resolveOwner(ctx, s.users, ownerEmail)
	if err != nil {
		return core.Category{}, err
	}

	now := time.Now().UTC()
	category := core.Category{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		UserID:      user.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := category.Validate(); err != nil {
		return core.Category{}, fmt.Errorf("validate category: %w", err)
	}
	if err := s.categories.CreateCategory(ctx, category); err != nil {
		return core.Category{}, fmt.Errorf("create category: %w", err)
	}

	slog.InfoContext(ctx, "category created",
		"category_id", category.ID,
		"user_email", ownerEmail,
		"name", name)
	return category, nil
}

func (s *CategoryService) UpdateCategory(ctx context.Context, ownerEmail, categoryID, name, description string) (core.Category, error) {
	user, err := resolveOwner(ctx, s.users, ownerEmail)
	if err != nil {
		return core.Category{}, err
	}
	category, err := s.categories.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	if err := checkOwnership("category", user, category.UserID); err != nil {
		return core.Category{}, err
	}

	category.Name = name
	category.Description = description
	category.UpdatedAt = time.Now().UTC()

	if err := category.Validate(); err != nil {
		return core.Category{}, fmt.Errorf("validate category: %w", err)
	}
	if err := s.categories.UpdateCategory(ctx, category); err != nil {
		return core.Category{}, fmt.Errorf("update category: %w", err)
	}
	return category, nil
}

func (s *CategoryService) DeleteCategory(ctx context.Context, ownerEmail, categoryID string) error {
	user, err := resolveOwner(ctx, s.users, ownerEmail)
	if err != nil {
		return err
	}
	category, err := s.categories.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if err := checkOwnership("category", user, category.UserID); err != nil {
		return err
	}
	if err := s.categories.DeleteCategory(ctx, category.ID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}

	slog.InfoContext(ctx, "category deleted",
		"category_id", category.ID,
		"user_email", ownerEmail)
	return nil
}
