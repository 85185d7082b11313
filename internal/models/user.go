package models

import "github.com/thewspl/financialfreedommobile/internal/store"

// User is the profile document stored alongside the Firebase Auth account.
type User struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Image string `json:"image,omitempty"`
}

// UserFromDoc maps a stored user document onto the model.
func UserFromDoc(d *store.Document) *User {
	return &User{
		UID:   d.ID,
		Name:  store.String(d.Data["name"]),
		Email: store.String(d.Data["email"]),
		Image: store.String(d.Data["image"]),
	}
}
