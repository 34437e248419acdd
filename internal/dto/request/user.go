package request

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,max=150,username"`
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" validate:"omitempty,role"`
}

// UpdateUserRequest is a partial update; nil fields are left alone.
type UpdateUserRequest struct {
	Username  *string `json:"username" validate:"omitnil,max=150,username"`
	Email     *string `json:"email" validate:"omitnil,email,max=254"`
	FirstName *string `json:"first_name" validate:"omitnil,max=150"`
	LastName  *string `json:"last_name" validate:"omitnil,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" validate:"omitnil,role"`
}
