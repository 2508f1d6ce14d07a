package provider

import "fmt"

// ProviderError reports a non-success transport outcome for one endpoint.
// It never triggers a retry here; recovery (typically substituting a
// "dataset unavailable" marker) is the caller's decision.
type ProviderError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Provider, e.Endpoint, e.StatusCode, e.Body)
}
