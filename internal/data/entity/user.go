package entity

import (
	"regexp"
	"strings"
	"time"
)

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleModerator UserRole = "moderator"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleModerator, RoleAdmin:
		return true
	}
	return false
}

const (
	UsernameMaxLength = 150
	EmailMaxLength    = 254

	// ReservedUsername collides with the /users/me route.
	ReservedUsername = "me"
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

type User struct {
	Base
	Username    string     `db:"username"`
	Email       string     `db:"email"`
	FirstName   string     `db:"first_name"`
	LastName    string     `db:"last_name"`
	Bio         string     `db:"bio"`
	Role        UserRole   `db:"role"`
	IsSuperuser bool       `db:"is_superuser"`
	LastLogin   *time.Time `db:"last_login"`
}

// UsernameProblem returns a human readable reason the username is rejected, or "".
func UsernameProblem(username string) string {
	switch {
	case username == "":
		return "This field is required"
	case strings.EqualFold(username, ReservedUsername):
		return "Username \"me\" is reserved"
	case len([]rune(username)) > UsernameMaxLength:
		return "Maximum length is 150"
	case !usernamePattern.MatchString(username):
		return "Only letters, digits and @/./+/-/_ are allowed"
	}
	return ""
}
