package search

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorls/fontawesome-mcp/src/catalog"
)

type call struct {
	term    string
	version string
	limit   int
}

type fakeSearcher struct {
	results map[string][]catalog.Icon
	errs    map[string]error
	calls   []call
}

func (f *fakeSearcher) Search(_ context.Context, query, version string, first int) ([]catalog.Icon, error) {
	f.calls = append(f.calls, call{query, version, first})
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.results[query], nil
}

func (f *fakeSearcher) terms() []string {
	out := make([]string, len(f.calls))
	for i, c := range f.calls {
		out[i] = c.term
	}
	return out
}

func icons(ids ...string) []catalog.Icon {
	out := make([]catalog.Icon, len(ids))
	for i, id := range ids {
		out[i] = catalog.Icon{ID: id}
	}
	return out
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"coffee", []string{"coffee", "coffee", "coffee"}},
		{"arrow left", []string{"arrow left", "arrow", "left", "arrow left"}},
		{"user's profile!", []string{"user's profile!", "user's", "profile!", "users profile"}},
		{"zzz-nonexistent", []string{"zzz-nonexistent", "zzz-nonexistent", "zzznonexistent"}},
		{"  ", []string{}},
		{"!!!", []string{"!!!", "!!!"}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Candidates(tt.query))
		})
	}
}

func TestResolve_FirstSuccessWins(t *testing.T) {
	f := &fakeSearcher{results: map[string][]catalog.Icon{
		"coffee": icons("mug-saucer", "mug-hot"),
	}}
	r := NewResolver(f, nil)

	res, err := r.Resolve(context.Background(), "coffee", "7.x", 5)
	require.NoError(t, err)
	assert.Equal(t, "coffee", res.Term)
	assert.Len(t, res.Icons, 2)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, []call{{"coffee", "7.x", 5}}, f.calls)
}

func TestResolve_NeverMergesCandidates(t *testing.T) {
	f := &fakeSearcher{results: map[string][]catalog.Icon{
		"arrow": icons("arrow-up", "arrow-down"),
		"left":  icons("arrow-left"),
	}}
	r := NewResolver(f, nil)

	res, err := r.Resolve(context.Background(), "arrow left", "7.x", 15)
	require.NoError(t, err)
	assert.Equal(t, "arrow", res.Term)
	assert.Equal(t, icons("arrow-up", "arrow-down"), res.Icons)
	assert.Equal(t, []string{"arrow left", "arrow"}, f.terms(), "must stop after the first match")
}

func TestResolve_SkipsFailingCandidates(t *testing.T) {
	f := &fakeSearcher{
		results: map[string][]catalog.Icon{"left": icons("arrow-left")},
		errs:    map[string]error{"arrow left": errors.New("boom"), "arrow": errors.New("boom")},
	}
	r := NewResolver(f, nil)

	got, err := r.SmartSearch(context.Background(), "arrow left", "7.x", 3)
	require.NoError(t, err)
	assert.Equal(t, icons("arrow-left"), got)
}

func TestResolve_ExhaustionIsEmptySuccess(t *testing.T) {
	f := &fakeSearcher{errs: map[string]error{"zzznonexistent": errors.New("down")}}
	r := NewResolver(f, nil)

	res, err := r.Resolve(context.Background(), "zzz-nonexistent", "7.x", 15)
	require.NoError(t, err)
	assert.NotNil(t, res.Icons)
	assert.Empty(t, res.Icons)
	assert.Empty(t, res.Term)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, []string{"zzz-nonexistent", "zzz-nonexistent", "zzznonexistent"}, f.terms())
}

// flakySearcher fails its first call and answers every later one.
type flakySearcher struct {
	calls []string
}

func (f *flakySearcher) Search(_ context.Context, query, _ string, _ int) ([]catalog.Icon, error) {
	f.calls = append(f.calls, query)
	if len(f.calls) == 1 {
		return nil, errors.New("transient")
	}
	return icons("mug-saucer"), nil
}

func TestResolve_RetriesRepeatedTermAfterFailure(t *testing.T) {
	f := &flakySearcher{}
	r := NewResolver(f, nil)

	res, err := r.Resolve(context.Background(), "coffee", "7.x", 5)
	require.NoError(t, err)
	assert.Equal(t, icons("mug-saucer"), res.Icons)
	assert.Equal(t, "coffee", res.Term)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, []string{"coffee", "coffee"}, f.calls)
}

func TestResolve_StopsOnCancelledContext(t *testing.T) {
	f := &fakeSearcher{}
	r := NewResolver(f, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "coffee cup", "7.x", 5)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.calls)
}

func TestSuggest_UsesSuggestionLimit(t *testing.T) {
	f := &fakeSearcher{results: map[string][]catalog.Icon{"not": icons("note-sticky")}}
	r := NewResolver(f, nil)

	got := r.Suggest(context.Background(), "not a-real-icon", "6.x")
	assert.Equal(t, icons("note-sticky"), got)
	for _, c := range f.calls {
		assert.Equal(t, SuggestionLimit, c.limit)
		assert.Equal(t, "6.x", c.version)
	}
}
