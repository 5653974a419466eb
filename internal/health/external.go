package health

import "context"

// DefaultExternalAPIs is the set of upstream research APIs the deployment
// integrates with.
var DefaultExternalAPIs = []string{"openrouter", "serpapi", "jina", "firecrawl", "tavily", "exa"}

// ExternalChecker reports a placeholder verdict per configured external
// dependency. Validating credentials against the upstream APIs is out of
// scope here, so the checker performs no network I/O at all; each dependency
// stays unknown, annotated with whether a credential is present.
type ExternalChecker struct {
	apis        []string
	credentials map[string]string
}

func NewExternalChecker(credentials map[string]string) *ExternalChecker {
	return &ExternalChecker{apis: DefaultExternalAPIs, credentials: credentials}
}

func (e *ExternalChecker) Name() string { return "services" }

func (e *ExternalChecker) Check(_ context.Context) Report {
	apiServices := make(map[string]any, len(e.apis))
	for _, api := range e.apis {
		note := "API key required for testing"
		if e.credentials[api] != "" {
			note = "API key configured; validation not performed"
		}
		apiServices[api] = map[string]string{
			"status": Unknown.String(),
			"note":   note,
		}
	}
	return newReport(e.Name(), Unknown, map[string]any{"api_services": apiServices})
}
