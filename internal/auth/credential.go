package auth

import "time"

// SafetyMargin is how long before its computed expiry a credential stops
// being handed out.
const SafetyMargin = 600 * time.Second

type Credential struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int
	IssuedAt    time.Time
}

func (c Credential) ExpiresAt() time.Time {
	return c.IssuedAt.Add(time.Duration(c.ExpiresIn) * time.Second)
}

// UsableAt reports whether the credential may still be served at now.
func (c Credential) UsableAt(now time.Time) bool {
	if c.AccessToken == "" {
		return false
	}
	return now.Before(c.ExpiresAt().Add(-SafetyMargin))
}

type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }
