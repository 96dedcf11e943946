package dto

// CategoryUpdate is a DTO for updating one or more fields of a category.
// Nil fields are left untouched.
type CategoryUpdate struct {
	Name        *string
	Description *string
	Color       *string
	Kind        *string
}
