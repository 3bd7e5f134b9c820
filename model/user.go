package model

import "time"

// User is a coach account. Identity comes from the request; there is no
// credential handling here.
type User struct {
	ID       int32
	Username string
	Email    string
	// Lang is the preferred notification language, "en" or "es".
	Lang    string
	IsAdmin bool

	Created time.Time
}
