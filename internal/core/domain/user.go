package domain

import (
	"errors"
	"time"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid credentials")

// User is a member profile. Mutated only by its owner via profile edit;
// never physically deleted.
type User struct {
	ID           string    `json:"_id" bson:"_id,omitempty"`
	FirstName    string    `json:"firstName" bson:"first_name"`
	LastName     string    `json:"lastName" bson:"last_name"`
	EmailID      string    `json:"emailId" bson:"email_id"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	PhotoURL     string    `json:"photoURL,omitempty" bson:"photo_url,omitempty"`
	Gender       string    `json:"gender,omitempty" bson:"gender,omitempty"`
	Age          int       `json:"age,omitempty" bson:"age,omitempty"`
	About        string    `json:"about,omitempty" bson:"about,omitempty"`
	Skills       []string  `json:"skills,omitempty" bson:"skills,omitempty"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}
