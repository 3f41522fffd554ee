package handlers

import "time"

// SignupRequest is the request body for account registration.
type SignupRequest struct {
	Body struct {
		Firstname string `doc:"First name"          json:"firstname" minLength:"1"`
		Lastname  string `doc:"Last name, optional" json:"lastname,omitempty" required:"false"`
		Email     string `doc:"Email address"       format:"email"   json:"email"`
		Password  string `doc:"Password"            json:"password"  minLength:"3"`
	}
}

// SignupResponse is the response for a successful registration.
type SignupResponse struct {
	Body struct {
		UserID string `doc:"Id of the new account" json:"userId"`
	}
}

// LoginRequest is the request body for logging in.
type LoginRequest struct {
	Body struct {
		Email    string `doc:"Email address" format:"email" json:"email"`
		Password string `doc:"Password"      json:"password" minLength:"3"`
	}
}

// UserPayload is the public shape of an account.
type UserPayload struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname,omitempty"`
	Email     string `json:"email"`
}

// LoginResponse is the response for a successful login.
type LoginResponse struct {
	Body struct {
		Token string      `doc:"Bearer token for authenticated requests" json:"token"`
		User  UserPayload `doc:"The logged-in account"                   json:"user"`
	}
}

// ShortenRequest is the request body for creating a short link.
type ShortenRequest struct {
	Body struct {
		URL  string `doc:"The URL to shorten"                  example:"https://example.com/very/long/path" format:"uri" json:"url"`
		Code string `doc:"Custom short code, generated if omitted" example:"mycode" json:"code,omitempty" required:"false"`
	}
}

// LinkPayload is the public shape of a short link.
type LinkPayload struct {
	ID        string    `json:"id"`
	ShortCode string    `json:"shortCode"`
	TargetURL string    `json:"targetUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ShortenResponse is the response for a successfully created short link.
type ShortenResponse struct {
	Body struct {
		ID        string `doc:"Link id"        json:"id"`
		ShortCode string `doc:"The short code" json:"shortCode"`
		TargetURL string `doc:"The target URL" json:"targetUrl"`
		ShortURL  string `doc:"Full short URL" json:"shortUrl"`
	}
}

// ListLinksResponse is the response listing the caller's links.
type ListLinksResponse struct {
	Body struct {
		Codes []LinkPayload `json:"codes"`
	}
}

// UpdateLinkRequest is the request for changing a link's code or target.
type UpdateLinkRequest struct {
	ID   string `doc:"Link id" path:"id"`
	Body struct {
		URL  string `doc:"New target URL" format:"uri" json:"url,omitempty" required:"false"`
		Code string `doc:"New short code" json:"code,omitempty" required:"false"`
	}
}

// UpdateLinkResponse is the response for a successful update.
type UpdateLinkResponse struct {
	Body LinkPayload
}

// DeleteLinkRequest is the request for deleting a link.
type DeleteLinkRequest struct {
	ID string `doc:"Link id" path:"id"`
}

// RedirectRequest is the request for redirecting a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"abc123" path:"code"`
}

// RedirectResponse redirects the client to the target URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The target URL" header:"Location"`
	}
}
