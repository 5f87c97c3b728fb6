package models

import "strings"

type User struct {
	ID         string `json:"_id,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	UserImg    string `json:"user_img"`
	IsActive   bool   `json:"is_active"`
	IsVerified bool   `json:"is_verified"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

func (u User) RowID() string { return u.ID }

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u User) Validate() error {
	if err := requireID("user", u.ID); err != nil {
		return err
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return shapeErr("user %s has malformed email", u.ID)
	}
	return nil
}
