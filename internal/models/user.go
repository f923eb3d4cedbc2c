package models

import "time"

// Role is the coarse permission level attached to a user profile.
type Role string

const (
	RoleUser   Role = "user"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleSeller || r == RoleAdmin
}

// User is a profile record keyed by email. Authentication itself is delegated
// to the external identity provider; this record only carries the marketplace
// profile and role.
type User struct {
	Email     string    `bson:"_id" json:"email"`
	Name      string    `bson:"name" json:"name"`
	Role      Role      `bson:"role" json:"role"`
	PhotoURL  string    `bson:"photoURL,omitempty" json:"photoURL,omitempty"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
