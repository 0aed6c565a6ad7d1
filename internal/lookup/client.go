// Package lookup provides the backends the suggestion controller queries.
// Every backend answers the same question: which meals match this text.
package lookup

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mealsearch/internal/domain"
	appErrors "mealsearch/internal/errors"
)

// Client looks up candidates for a query. An empty result with a nil error
// means "no matches".
type Client interface {
	Search(ctx context.Context, query string) ([]domain.Candidate, error)
}

// Backend names accepted by New.
const (
	BackendHTTP   = "http"
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	BaseURL string
	// Timeout bounds each HTTP request when HTTPClient is nil. Zero leaves
	// the request to the caller's context.
	Timeout      time.Duration
	DatabasePath string
	FixturePath  string
	HTTPClient   *http.Client
}

// New builds the backend named by opts.Backend.
func New(opts Options) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendHTTP:
		hc := opts.HTTPClient
		if hc == nil && opts.Timeout > 0 {
			hc = &http.Client{Timeout: opts.Timeout}
		}
		return NewHTTPClient(opts.BaseURL, hc), nil
	case BackendSQLite:
		if strings.TrimSpace(opts.DatabasePath) == "" {
			return nil, appErrors.New(appErrors.CodeConfigurationError,
				"sqlite backend requires lookup.database-path", nil)
		}
		return NewSQLiteClient(opts.DatabasePath), nil
	case BackendFile:
		if strings.TrimSpace(opts.FixturePath) == "" {
			return nil, appErrors.New(appErrors.CodeConfigurationError,
				"file backend requires lookup.fixture-path", nil)
		}
		return LoadTrieClient(opts.FixturePath)
	default:
		return nil, appErrors.New(appErrors.CodeUnknownBackend,
			fmt.Sprintf("unknown lookup backend %q (want http, sqlite or file)", opts.Backend), nil)
	}
}
