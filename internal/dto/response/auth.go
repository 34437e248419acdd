package response

import "review-api/internal/data/entity"

type SignupResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type TokenResponse struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

type UserResponse struct {
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Bio       string          `json:"bio"`
	Role      entity.UserRole `json:"role"`
}

// Helper converters
func SignupToResponse(user *entity.User) SignupResponse {
	return SignupResponse{Username: user.Username, Email: user.Email}
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}
