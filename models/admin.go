package models

import "time"

// Admin is an account allowed into the admin sub-flow.
type Admin struct {
	Username     string    `bson:"username" json:"username"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	Email        string    `bson:"email" json:"email"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
