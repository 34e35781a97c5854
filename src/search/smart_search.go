// Package search resolves loose, possibly multi-word queries against the
// catalog by trying progressively simpler search terms.
package search

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/igorls/fontawesome-mcp/src/catalog"
)

// Searcher runs one upstream search. *catalog.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query, version string, first int) ([]catalog.Icon, error)
}

// SuggestionLimit is how many icons a missed exact lookup asks for.
const SuggestionLimit = 5

var nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9\s]`)

// Result is the outcome of one resolution.
type Result struct {
	Icons []catalog.Icon
	// Term is the candidate that produced Icons, empty when nothing matched.
	Term string
	// Attempts counts upstream calls made, failed ones included.
	Attempts int
}

// Resolver implements first-success multi-candidate search.
type Resolver struct {
	searcher Searcher
	logger   *slog.Logger
}

// NewResolver creates a resolver over s.
func NewResolver(s Searcher, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{searcher: s, logger: logger}
}

// Candidates returns the search terms tried for query, in order: the query as
// given, each of its words, then the query with punctuation removed. Blank
// terms are dropped; repeats are kept, so each one is another upstream try.
func Candidates(query string) []string {
	raw := make([]string, 0, 4)
	raw = append(raw, query)
	raw = append(raw, strings.Fields(query)...)
	raw = append(raw, nonAlnum.ReplaceAllString(query, ""))

	out := make([]string, 0, len(raw))
	for _, term := range raw {
		if strings.TrimSpace(term) == "" {
			continue
		}
		out = append(out, term)
	}
	return out
}

// Resolve tries each candidate in order and returns the first non-empty
// result set. Results of different candidates are never merged. Upstream
// failures of a single candidate are logged and skipped; running out of
// candidates yields an empty result and no error.
func (r *Resolver) Resolve(ctx context.Context, query, version string, limit int) (Result, error) {
	var res Result
	for _, term := range Candidates(query) {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Attempts++
		icons, err := r.searcher.Search(ctx, term, version, limit)
		if err != nil {
			r.logger.Warn("search strategy failed", "term", term, "error", err)
			continue
		}
		if len(icons) == 0 {
			continue
		}
		res.Icons = icons
		res.Term = term
		r.logger.Debug("search strategy matched", "query", query, "term", term, "results", len(icons), "attempts", res.Attempts)
		return res, nil
	}
	res.Icons = []catalog.Icon{}
	return res, nil
}

// SmartSearch is Resolve without the bookkeeping.
func (r *Resolver) SmartSearch(ctx context.Context, query, version string, limit int) ([]catalog.Icon, error) {
	res, err := r.Resolve(ctx, query, version, limit)
	return res.Icons, err
}

// Suggest runs SmartSearch with SuggestionLimit for a missed exact lookup.
func (r *Resolver) Suggest(ctx context.Context, name, version string) []catalog.Icon {
	icons, err := r.SmartSearch(ctx, name, version, SuggestionLimit)
	if err != nil {
		return []catalog.Icon{}
	}
	return icons
}
