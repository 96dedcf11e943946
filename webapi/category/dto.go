package category

import (
	"time"

	"github.com/granafacil/financeiro/pkg/domain/category"
)

// CreateCategoryRequest is the request body for POST /category.
type CreateCategoryRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
	Kind        string  `json:"kind" validate:"required,oneof=income expense both"`
}

// UpdateCategoryRequest is the request body for PUT /category/:id. All
// fields are optional.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Color       *string `json:"color" validate:"omitempty,hexcolor"`
	Kind        *string `json:"kind" validate:"omitempty,oneof=income expense both"`
}

// CategoryResponse is the public view of a category.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Color       string    `json:"color"`
	Kind        string    `json:"kind"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToCategoryResponse maps the entity to its public view.
func ToCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		Color:       c.Color,
		Kind:        string(c.Kind),
		CreatedAt:   c.CreatedAt,
	}
}

// ToCategoryResponses maps a list of entities to their public views.
func ToCategoryResponses(list []*category.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToCategoryResponse(c))
	}
	return out
}
