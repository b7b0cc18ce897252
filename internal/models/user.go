package models

import "time"

// Roles a user account can hold. Admin implies every permission.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleUser    = "user"
)

// User matches the document in the users collection.
type User struct {
	ID          string    `bson:"id" json:"id"`
	Email       string    `bson:"email" json:"email"`
	FirstName   string    `bson:"first_name" json:"first_name"`
	LastName    string    `bson:"last_name" json:"last_name"`
	Designation string    `bson:"designation" json:"designation"`
	Password    string    `bson:"password" json:"-"`
	Role        string    `bson:"role" json:"role"`
	Permissions []string  `bson:"permissions" json:"permissions"`
	IsActive    bool      `bson:"is_active" json:"is_active"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// FullName is the display name used when enriching request listings.
func (u *User) FullName() string {
	if u.FirstName == "" && u.LastName == "" {
		return u.Email
	}
	return u.FirstName + " " + u.LastName
}

// UserPatch is a partial update for a user document. Nil fields are left
// untouched. Email and password change through dedicated flows only.
type UserPatch struct {
	FirstName   *string   `json:"first_name"`
	LastName    *string   `json:"last_name"`
	Designation *string   `json:"designation"`
	Role        *string   `json:"role"`
	Permissions *[]string `json:"permissions"`
	IsActive    *bool     `json:"is_active"`
}
