package backend

import (
	"net/http"
)

// AuthEngine decorates outgoing requests with credentials.
type AuthEngine interface {
	Authorize(request *http.Request)
}

// BearerAuth is a fixed credential, used by scripts that pass a token directly.
type BearerAuth struct {
	apiKey string
}

func (b *BearerAuth) Authorize(request *http.Request) {
	request.Header.Set("Authorization", "Bearer "+b.apiKey)
}

func NewBearerAuth(apiKey string) *BearerAuth {
	if apiKey == "" {
		return nil
	}
	return &BearerAuth{apiKey: apiKey}
}
