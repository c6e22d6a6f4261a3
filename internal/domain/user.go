package domain

import "time"

// User is an identity known to the service. Requesters and professors are both users;
// the Professor and Admin flags drive the role set.
type User struct {
	ID            int64
	Email         string
	GoogleSub     string
	PictureURL    string
	FullName      string
	GivenName     string
	FamilyName    string
	EmailVerified bool
	Locale        string
	HostedDomain  string
	Admin         bool
	Professor     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SameAs compares identities by id.
func (u User) SameAs(other User) bool {
	return u.ID == other.ID
}
