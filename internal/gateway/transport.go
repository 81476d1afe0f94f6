package gateway

import "net/http"

const (
	mediaTypeJSON    = "application/vnd.github+json"
	headerAPIVersion = "X-GitHub-Api-Version"
)

// headerTransport pins the media type and REST API version on every request.
type headerTransport struct {
	base       http.RoundTripper
	apiVersion string
}

func newHeaderTransport(base http.RoundTripper, apiVersion string) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	return &headerTransport{base: base, apiVersion: apiVersion}
}

// RoundTrip implements http.RoundTripper.
func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept", mediaTypeJSON)
	if t.apiVersion != "" {
		req.Header.Set(headerAPIVersion, t.apiVersion)
	}
	return t.base.RoundTrip(req)
}
