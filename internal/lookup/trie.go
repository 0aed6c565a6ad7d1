package lookup

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/tchap/go-patricia/v2/patricia"

	"mealsearch/internal/domain"
	appErrors "mealsearch/internal/errors"
)

// TrieClient serves lookups from an in-memory fixture. Every suffix of every
// label word is indexed in a patricia trie, so the first query word selects
// all labels containing it and the rest of the query filters by substring.
// Matching is a case-insensitive substring match, as with the sqlite backend.
type TrieClient struct {
	meals []domain.Candidate
	index *patricia.Trie
}

// LoadTrieClient reads a TheMealDB-shaped JSON file.
func LoadTrieClient(path string) (*TrieClient, error) {
	//nolint:gosec // G304: fixture path comes from configuration
	f, err := os.Open(path)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeConfigurationError, fmt.Sprintf("open fixture %s: %v", path, err), err)
	}
	defer func() {
		_ = f.Close()
	}()
	meals, err := DecodeMeals(f)
	if err != nil {
		return nil, fmt.Errorf("load fixture %s: %w", path, err)
	}
	return NewTrieClient(meals), nil
}

// NewTrieClient indexes meals. The slice is copied.
func NewTrieClient(meals []domain.Candidate) *TrieClient {
	c := &TrieClient{
		meals: append([]domain.Candidate(nil), meals...),
		index: patricia.NewTrie(),
	}
	for i, m := range c.meals {
		for _, w := range suffixes(m.Label) {
			key := patricia.Prefix(w)
			if existing, ok := c.index.Get(key).([]int); ok {
				if existing[len(existing)-1] != i {
					c.index.Set(key, append(existing, i))
				}
				continue
			}
			c.index.Insert(key, []int{i})
		}
	}
	return c
}

// Search returns matches ordered by label.
func (c *TrieClient) Search(ctx context.Context, query string) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, appErrors.New(appErrors.CodeTransport, "lookup cancelled", err)
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []domain.Candidate{}, nil
	}
	qWords := words(q)
	if len(qWords) == 0 {
		// Punctuation only: nothing to index on, scan instead.
		return c.scan(q), nil
	}

	seen := make(map[int]struct{})
	err := c.index.VisitSubtree(patricia.Prefix(qWords[0]), func(_ patricia.Prefix, item patricia.Item) error {
		for _, idx := range item.([]int) {
			seen[idx] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, appErrors.New(appErrors.CodeUnknown, fmt.Sprintf("visit index: %v", err), err)
	}

	out := make([]domain.Candidate, 0, len(seen))
	for idx := range seen {
		m := c.meals[idx]
		if strings.Contains(strings.ToLower(m.Label), q) {
			out = append(out, m)
		}
	}
	sortByLabel(out)
	return out, nil
}

func (c *TrieClient) scan(q string) []domain.Candidate {
	out := []domain.Candidate{}
	for _, m := range c.meals {
		if strings.Contains(strings.ToLower(m.Label), q) {
			out = append(out, m)
		}
	}
	sortByLabel(out)
	return out
}

func sortByLabel(out []domain.Candidate) {
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].Label), strings.ToLower(out[j].Label)
		if li != lj {
			return li < lj
		}
		return out[i].ID < out[j].ID
	})
}

// Len reports how many meals are indexed.
func (c *TrieClient) Len() int {
	return len(c.meals)
}

// suffixes returns every rune-aligned suffix of every word in s.
func suffixes(s string) []string {
	var out []string
	for _, w := range words(s) {
		for i := range w {
			out = append(out, w[i:])
		}
	}
	return out
}

func words(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
