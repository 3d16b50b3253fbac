package ledger

import (
	"fmt"
	"time"

	"github.com/Thys1a/WebAccounting/internal/model"
	"github.com/Thys1a/WebAccounting/internal/service"
)

// DefaultCategoryName is the name given to the automatically created
// default category.
const DefaultCategoryName = "General"

// PlanEnsureDefault repairs the "exactly one default category" invariant
// from an observed category snapshot. It returns a create write only when
// the snapshot is empty, which makes it naturally idempotent: running it
// again against the repaired snapshot plans nothing.
func PlanEnsureDefault(categories []model.Category, now time.Time, newID func() string) ([]service.Write, *model.Category) {
	if len(categories) > 0 {
		return nil, nil
	}

	cat := model.Category{
		ID:        newID(),
		Name:      DefaultCategoryName,
		IsDefault: true,
		CreatedAt: now,
	}
	return []service.Write{service.CreateCategory(cat)}, &cat
}

// PlanAddCategory creates an ordinary, non-default category.
func PlanAddCategory(name string, now time.Time, newID func() string) ([]service.Write, model.Category, error) {
	if name == "" {
		return nil, model.Category{}, ErrEmptyName
	}
	cat := model.Category{
		ID:        newID(),
		Name:      name,
		IsDefault: false,
		CreatedAt: now,
	}
	return []service.Write{service.CreateCategory(cat)}, cat, nil
}

// PlanDeleteCategory removes a category and, in the same batch, rewrites
// every board pointing at it to the default category, so no board is ever
// left referencing a nonexistent category. Deleting the default category is
// refused.
func PlanDeleteCategory(categories []model.Category, boards []model.Board, categoryID string) ([]service.Write, error) {
	target := findCategory(categories, categoryID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", ErrCategoryNotFound, categoryID)
	}
	if target.IsDefault {
		return nil, fmt.Errorf("%w: %s", ErrDefaultCategory, target.Name)
	}

	var fallback *model.Category
	for i := range categories {
		if categories[i].IsDefault {
			fallback = &categories[i]
			break
		}
	}
	if fallback == nil {
		return nil, ErrNoDefaultCategory
	}

	var writes []service.Write
	for _, b := range boards {
		if b.CategoryID != categoryID {
			continue
		}
		moved := b
		moved.CategoryID = fallback.ID
		writes = append(writes, service.UpdateBoard(moved))
	}
	writes = append(writes, service.DeleteCategory(categoryID))

	return writes, nil
}
