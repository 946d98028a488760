package httpclient

import "net/http"

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone sends no credentials.
	AuthNone AuthType = iota
	// AuthBearer sends "Authorization: Bearer <token>".
	AuthBearer
	// AuthHeader sends the credential verbatim in a named header.
	AuthHeader
	// AuthCustom calls a request modifier.
	AuthCustom
)

// AuthConfig configures request authentication.
type AuthConfig struct {
	Type AuthType
	// Token is the credential value.
	Token string
	// Header is the header name for AuthHeader.
	Header string
	// Apply modifies the request for AuthCustom.
	Apply func(*http.Request)
}

// BearerAuth creates a bearer token auth config.
func BearerAuth(token string) *AuthConfig {
	return &AuthConfig{Type: AuthBearer, Token: token}
}

// HeaderAuth sends token in the header named name. The storefront backend
// reads its session token from a plain "token" header.
func HeaderAuth(name, token string) *AuthConfig {
	return &AuthConfig{Type: AuthHeader, Header: name, Token: token}
}

// CustomAuth creates an auth config from a request modifier.
func CustomAuth(fn func(*http.Request)) *AuthConfig {
	return &AuthConfig{Type: AuthCustom, Apply: fn}
}

func (a *AuthConfig) apply(req *http.Request) {
	if a == nil {
		return
	}
	switch a.Type {
	case AuthBearer:
		req.Header.Set("Authorization", "Bearer "+a.Token)
	case AuthHeader:
		if a.Header != "" {
			req.Header.Set(a.Header, a.Token)
		}
	case AuthCustom:
		if a.Apply != nil {
			a.Apply(req)
		}
	}
}
