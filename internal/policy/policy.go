// Package policy decides whether an actor may perform an action on a resource.
//
// Allow is a pure function: it performs no I/O and holds no state, so callers load
// whatever ownership information it needs before asking.
package policy

import (
	"review-api/internal/data/entity"

	"github.com/google/uuid"
)

type Action int

const (
	Read Action = iota
	Create
	Update
	Delete
)

func (a Action) String() string {
	switch a {
	case Read:
		return "read"
	case Create:
		return "create"
	case Update:
		return "update"
	case Delete:
		return "delete"
	}
	return "unknown"
}

func (a Action) Safe() bool {
	return a == Read
}

type ResourceKind int

const (
	// Catalog covers categories, genres and titles.
	Catalog ResourceKind = iota
	// Content covers reviews and comments, which have an author.
	Content
	// Account is user management through the admin endpoints.
	Account
	// Profile is the actor's own user record reached through /users/me.
	Profile
)

type Resource struct {
	Kind    ResourceKind
	OwnerID uuid.UUID // author for Content, subject for Profile
}

// Actor is whoever is making the request. The zero value is anonymous.
type Actor struct {
	UserID      uuid.UUID
	Username    string
	Role        entity.UserRole
	IsSuperuser bool
}

// ActorFromUser builds an authenticated actor from a stored user.
func ActorFromUser(u *entity.User) Actor {
	return Actor{
		UserID:      u.ID,
		Username:    u.Username,
		Role:        u.Role,
		IsSuperuser: u.IsSuperuser,
	}
}

func (a Actor) Authenticated() bool {
	return a.UserID != uuid.Nil
}

func (a Actor) IsAdmin() bool {
	return a.Authenticated() && (a.Role == entity.RoleAdmin || a.IsSuperuser)
}

func (a Actor) IsModerator() bool {
	return a.Authenticated() && a.Role == entity.RoleModerator
}

func Allow(actor Actor, action Action, res Resource) bool {
	switch res.Kind {
	case Catalog:
		return action.Safe() || actor.IsAdmin()

	case Content:
		if action.Safe() {
			return true
		}
		if !actor.Authenticated() {
			return false
		}
		if action == Create {
			return true
		}
		return actor.IsAdmin() || actor.IsModerator() || res.OwnerID == actor.UserID

	case Account:
		return actor.IsAdmin()

	case Profile:
		if !actor.Authenticated() || res.OwnerID != actor.UserID {
			return false
		}
		return action == Read || action == Update
	}
	return false
}
