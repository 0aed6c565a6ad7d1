package suggest

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mealsearch/internal/domain"
)

// Lookup is the query-by-text service the fetcher calls.
type Lookup interface {
	Search(ctx context.Context, query string) ([]domain.Candidate, error)
}

// Reporter receives lookup failures. Implementations must be safe for
// concurrent use; they are called from command goroutines.
type Reporter interface {
	ReportFetchError(query string, seq uint64, err error)
}

// Request identifies one issued lookup.
type Request struct {
	Seq   uint64
	Query string
}

// ResultMsg carries the outcome of a lookup back to the event loop. A failed
// lookup has an empty candidate list and a non-nil Err.
type ResultMsg struct {
	Seq        uint64
	Query      string
	Candidates []domain.Candidate
	Err        error
}

// Fetcher issues sequence-numbered lookups and decides which results may be
// applied. A result is applied only if its sequence number is higher than any
// result observed before it, whatever order results arrive in.
type Fetcher struct {
	lookup   Lookup
	timeout  time.Duration
	reporter Reporter

	issued   atomic.Uint64
	observed atomic.Uint64
}

// NewFetcher builds a fetcher. timeout bounds each lookup (0 means no bound
// beyond the lookup's own); reporter may be nil.
func NewFetcher(lookup Lookup, timeout time.Duration, reporter Reporter) *Fetcher {
	return &Fetcher{lookup: lookup, timeout: timeout, reporter: reporter}
}

// Fetch starts a lookup for query. A blank query issues nothing: it
// supersedes every outstanding request and returns a nil command, meaning the
// result is an empty list right away.
func (f *Fetcher) Fetch(query string) (Request, tea.Cmd) {
	if strings.TrimSpace(query) == "" {
		return Request{Seq: f.Supersede(), Query: query}, nil
	}
	req := Request{Seq: f.issued.Add(1), Query: query}
	return req, f.run(req)
}

func (f *Fetcher) run(req Request) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if f.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, f.timeout)
			defer cancel()
		}

		candidates, err := f.lookup.Search(ctx, req.Query)
		if err != nil {
			if f.reporter != nil {
				f.reporter.ReportFetchError(req.Query, req.Seq, err)
			}
			candidates = nil
		}
		if candidates == nil {
			candidates = []domain.Candidate{}
		}
		return ResultMsg{Seq: req.Seq, Query: req.Query, Candidates: candidates, Err: err}
	}
}

// Supersede marks every request issued so far as stale and returns the
// sequence number it consumed.
func (f *Fetcher) Supersede() uint64 {
	seq := f.issued.Add(1)
	f.observe(seq)
	return seq
}

// Accept reports whether res is newer than every result observed so far,
// recording it as observed if so.
func (f *Fetcher) Accept(res ResultMsg) bool {
	return f.observe(res.Seq)
}

func (f *Fetcher) observe(seq uint64) bool {
	for {
		cur := f.observed.Load()
		if seq <= cur {
			return false
		}
		if f.observed.CompareAndSwap(cur, seq) {
			return true
		}
	}
}

// Outstanding reports whether the most recently issued request has not been
// observed yet.
func (f *Fetcher) Outstanding() bool {
	return f.issued.Load() > f.observed.Load()
}

// Latest returns the sequence number of the most recent request.
func (f *Fetcher) Latest() uint64 {
	return f.issued.Load()
}
