package transport

import "net/http"

// Authenticator decorates an outgoing request with credentials. A nil
// Authenticator sends the request unchanged.
type Authenticator func(req *http.Request)

// Bearer sends key in the Authorization header. An empty key yields nil.
func Bearer(key string) Authenticator {
	if key == "" {
		return nil
	}
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+key)
	}
}

// Header sends key verbatim in the named header. An empty key yields nil.
func Header(name, key string) Authenticator {
	if key == "" || name == "" {
		return nil
	}
	name = http.CanonicalHeaderKey(name)
	return func(req *http.Request) {
		req.Header.Set(name, key)
	}
}

func (a Authenticator) apply(req *http.Request) {
	if a != nil {
		a(req)
	}
}
