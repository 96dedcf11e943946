package user

import "github.com/granafacil/financeiro/pkg/domain/user"

// RegisterRequest is the request body for POST /user.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// UpdateRequest is the request body for PUT /user/me. All fields are
// optional.
type UpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=255"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=72"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

// UserResponse is the public view of a user.
type UserResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

// ToUserResponse maps the entity to its public view.
func ToUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		AvatarURL: u.AvatarURL,
	}
}
