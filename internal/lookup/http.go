package lookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"mealsearch/internal/domain"
	appErrors "mealsearch/internal/errors"
)

const (
	searchPath = "/search.php"
	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 4 << 20
	userAgent    = "mealsearch"
)

// HTTPClient queries a TheMealDB compatible endpoint.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for baseURL (e.g.
// https://www.themealdb.com/api/json/v1/1). A nil hc uses http.DefaultClient;
// request lifetime is governed by the caller's context.
func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    hc,
	}
}

// Search issues GET {base}/search.php?s={query}.
func (c *HTTPClient) Search(ctx context.Context, query string) ([]domain.Candidate, error) {
	endpoint, err := c.searchURL(query)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeTransport, fmt.Sprintf("build request: %v", err), err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeTransport, fmt.Sprintf("lookup %q: %v", query, err), err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, appErrors.New(appErrors.CodeBadStatus,
			fmt.Sprintf("lookup %q: unexpected status %s", query, resp.Status), nil)
	}
	return DecodeMeals(io.LimitReader(resp.Body, maxBodyBytes))
}

func (c *HTTPClient) searchURL(query string) (string, error) {
	u, err := url.Parse(c.baseURL + searchPath)
	if err != nil {
		return "", appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("invalid lookup base url %q", c.baseURL), err)
	}
	q := u.Query()
	q.Set("s", query)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
