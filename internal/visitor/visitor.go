// Package visitor assigns durable pseudonymous visitor identifiers via a
// long-lived cookie.
package visitor

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the pseudonymous visitor identifier.
const CookieName = "visitor_id"

// MetadataKey marks a huma operation as visitor-tracked: requests without
// a visitor cookie get one issued.
const MetadataKey = "visitorTracking"

const cookieMaxAge = int(365 * 24 * time.Hour / time.Second)

// Identifier mints and recognizes visitor identifiers.
type Identifier struct {
	secure bool
}

// NewIdentifier creates a visitor identifier. secure controls the Secure
// flag on issued cookies and should be true in production.
func NewIdentifier(secure bool) *Identifier {
	return &Identifier{secure: secure}
}

// Identify returns the visitor id for a request given its visitor cookie,
// which may be nil. A present, non-empty cookie is returned unchanged with
// no new cookie to set. Otherwise a fresh UUID is minted and returned along
// with the cookie the response must set. Identify never fails.
func (i *Identifier) Identify(cookie *http.Cookie) (string, *http.Cookie) {
	if cookie != nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	id := uuid.NewString()

	// Not HttpOnly: client-side scripts read the id for frontend analytics.
	return id, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   cookieMaxAge,
		Secure:   i.secure,
		HttpOnly: false,
		SameSite: http.SameSiteLaxMode,
	}
}
