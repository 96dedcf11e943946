package dto

// UserUpdate is a DTO for updating one or more fields of a user. Nil fields
// are left untouched. Password, when set, must already be hashed.
type UserUpdate struct {
	Name      *string
	Email     *string
	Password  *string
	AvatarURL *string
}
