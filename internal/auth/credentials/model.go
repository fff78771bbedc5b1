package credentials

import "time"

// User is the portal identity record. The auth subsystem only ever
// reads it; profile mutation happens elsewhere.
type User struct {
	ID             int64
	Username       string
	Email          string
	PasswordHash   string
	FullName       string
	PhoneNumber    string
	Address        string
	ProfilePicture string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
