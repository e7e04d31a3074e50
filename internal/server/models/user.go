// Package models defines the records persisted by the server and the
// public shapes returned to callers.
package models

// User is a stored user row. PasswordHash never leaves the service layer.
type User struct {
	Username     string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	GithubLink   string
	LinkedinLink string
	IsAdmin      bool
}

// PublicUser is the subset of User that is safe to return to callers.
type PublicUser struct {
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	GithubLink   string `json:"githubLink,omitempty"`
	LinkedinLink string `json:"linkedinLink,omitempty"`
	IsAdmin      bool   `json:"isAdmin"`
}

// Public strips credential material from u.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		GithubLink:   u.GithubLink,
		LinkedinLink: u.LinkedinLink,
		IsAdmin:      u.IsAdmin,
	}
}
