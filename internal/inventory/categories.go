package inventory

import (
	"context"
	"fmt"

	"board-inventory-api-server/internal/models"

	"github.com/google/uuid"
)

// CategoryInput carries the editable category attributes.
type CategoryInput struct {
	Name                 string
	Description          string
	Manufacturer         string
	Version              string
	LeadTimeDays         int
	MinimumStockQuantity int
	PictureURL           string
}

// CreateCategory creates a category with a unique name.
func (s *Service) CreateCategory(ctx context.Context, actor *models.User, in CategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if in.LeadTimeDays < 0 || in.MinimumStockQuantity < 0 {
		return nil, fmt.Errorf("%w: lead_time_days and minimum_stock_quantity must not be negative", ErrValidation)
	}

	existing, err := s.store.CategoryByName(ctx, in.Name)
	if err != nil {
		return nil, fmt.Errorf("checking category name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: category name already exists", ErrValidation)
	}

	category := &models.Category{
		ID:                   uuid.New().String(),
		Name:                 in.Name,
		Description:          in.Description,
		Manufacturer:         in.Manufacturer,
		Version:              in.Version,
		LeadTimeDays:         in.LeadTimeDays,
		MinimumStockQuantity: in.MinimumStockQuantity,
		PictureURL:           in.PictureURL,
		CreatedAt:            s.now(),
		CreatedBy:            actor.Email,
	}
	if err := s.store.InsertCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("inserting category: %w", err)
	}
	return category, nil
}

// UpdateCategory replaces a category's editable attributes. Identity is
// immutable; a rename must not collide with another category.
func (s *Service) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	category, err := s.store.CategoryByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("looking up category: %w", err)
	}
	if category == nil {
		return nil, fmt.Errorf("category: %w", ErrNotFound)
	}
	if in.LeadTimeDays < 0 || in.MinimumStockQuantity < 0 {
		return nil, fmt.Errorf("%w: lead_time_days and minimum_stock_quantity must not be negative", ErrValidation)
	}

	if in.Name != category.Name {
		existing, err := s.store.CategoryByName(ctx, in.Name)
		if err != nil {
			return nil, fmt.Errorf("checking category name: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: category name already exists", ErrValidation)
		}
	}

	category.Name = in.Name
	category.Description = in.Description
	category.Manufacturer = in.Manufacturer
	category.Version = in.Version
	category.LeadTimeDays = in.LeadTimeDays
	category.MinimumStockQuantity = in.MinimumStockQuantity
	category.PictureURL = in.PictureURL
	if _, err := s.store.UpdateCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("updating category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category that no board references.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	boards, err := s.store.BoardsByCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("listing category boards: %w", err)
	}
	if len(boards) > 0 {
		return fmt.Errorf("%w: cannot delete category with existing boards", ErrValidation)
	}

	ok, err := s.store.DeleteCategory(ctx, id)
	if err != nil {
		return fmt.Errorf("deleting category: %w", err)
	}
	if !ok {
		return fmt.Errorf("category: %w", ErrNotFound)
	}
	return nil
}
