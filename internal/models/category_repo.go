package models

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// resolveAttempts bounds the lookup/create loop when concurrent requests
// race to create the same category.
const resolveAttempts = 3

type CategoryRepo interface {
	ResolveCategoryID(ctx context.Context, name string) (*uint, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// ResolveCategoryID finds a category by name, case-insensitively, creating
// it when absent. An empty name resolves to no category. A create that
// loses a race against another request re-reads the winner's row.
func (r *GormRepo) ResolveCategoryID(ctx context.Context, name string) (*uint, error) {
	display := StringTrim(name)
	key := CategoryKey(display)
	if key == "" {
		return nil, nil
	}

	var lastErr error
	for attempt := 0; attempt < resolveAttempts; attempt++ {
		var existing Category
		err := r.db.WithContext(ctx).Where("name_key = ?", key).First(&existing).Error
		if err == nil {
			return &existing.ID, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, StoreError("look up category", err, "")
		}

		created := Category{Name: display, NameKey: key}
		err = r.db.WithContext(ctx).Create(&created).Error
		if err == nil {
			return &created.ID, nil
		}
		if !IsUniqueViolation(err) {
			return nil, StoreError("create category", err, "")
		}
		lastErr = err
	}
	return nil, Internal(fmt.Sprintf("failed to resolve category %q", display), lastErr)
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := r.db.WithContext(ctx).Order("name_key ASC").Find(&categories).Error; err != nil {
		return nil, StoreError("list categories", err, "")
	}
	return categories, nil
}
