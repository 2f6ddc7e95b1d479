package models

import "strings"

// User is the logged-in customer as cached for the session.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Token     string `json:"token,omitempty"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Public strips the backend token before the user is sent to the browser.
func (u User) Public() User {
	u.Token = ""
	return u
}
