package tools

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igorls/fontawesome-mcp/src/auth"
	"github.com/igorls/fontawesome-mcp/src/catalog"
	"github.com/igorls/fontawesome-mcp/src/catalog/catalogtest"
	"github.com/igorls/fontawesome-mcp/src/json"
	"github.com/igorls/fontawesome-mcp/src/usage"
	"github.com/igorls/fontawesome-mcp/src/validation"
)

type harness struct {
	fake  *catalogtest.Server
	clock *atomic.Int64
	d     *Dispatcher
}

func newHarness(t *testing.T, apiToken string, fw usage.Framework) *harness {
	t.Helper()
	fake := catalogtest.New()
	t.Cleanup(fake.Close)

	clock := &atomic.Int64{}
	clock.Store(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Unix())
	tokens := auth.NewTokenCache(apiToken,
		auth.WithTokenURL(fake.TokenURL()),
		auth.WithClock(func() time.Time { return time.Unix(clock.Load(), 0) }),
	)
	client := catalog.NewClient(fake.URL, tokens)
	return &harness{
		fake:  fake,
		clock: clock,
		d:     NewDispatcher(Deps{Catalog: client, Auth: tokens, Framework: fw}),
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	switch c := res.Content[0].(type) {
	case mcp.TextContent:
		return c.Text
	case *mcp.TextContent:
		return c.Text
	}
	t.Fatalf("unexpected content type %T", res.Content[0])
	return ""
}

func (h *harness) ok(t *testing.T, name string, args map[string]any) map[string]any {
	t.Helper()
	res := h.d.Call(context.Background(), name, args)
	text := resultText(t, res)
	require.False(t, res.IsError, text)
	var out map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &out))
	return out
}

func (h *harness) fail(t *testing.T, name string, args map[string]any) string {
	t.Helper()
	res := h.d.Call(context.Background(), name, args)
	text := resultText(t, res)
	require.True(t, res.IsError, text)
	return text
}

func TestSearchIcons_Success(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	h.fake.Search["coffee"] = []catalog.Icon{
		catalogtest.Icon("mug-saucer", []string{"classic/solid"}, nil),
		catalogtest.Icon("mug-hot", []string{"classic/solid"}, []string{"sharp/light"}),
	}

	out := h.ok(t, "search_icons", map[string]any{"query": "coffee", "limit": float64(5)})
	assert.Equal(t, float64(2), out["results"])
	assert.Equal(t, "success", out["searchStrategy"])
	assert.Equal(t, "VANILLA", out["framework"])
	assert.NotContains(t, out, "suggestions")
	assert.NotContains(t, out, "frameworkInfo")
	assert.Equal(t, []string{"coffee"}, h.fake.SearchTerms())

	icons := out["icons"].([]any)
	require.Len(t, icons, 2)
	first := icons[0].(map[string]any)
	assert.Equal(t, "mug-saucer", first["id"])
	usageBlock := first["frameworkUsage"].(map[string]any)
	assert.Equal(t, "faMugSaucer", usageBlock["icon"].(map[string]any)["camelCase"])
}

func TestSearchIcons_NoResults(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)

	out := h.ok(t, "search_icons", map[string]any{"query": "zzz-nonexistent"})
	assert.Equal(t, float64(0), out["results"])
	assert.Equal(t, "no_results", out["searchStrategy"])
	assert.Empty(t, out["icons"])
	suggestions := out["suggestions"].([]any)
	require.NotEmpty(t, suggestions)
	assert.Equal(t, `Try simpler keywords (e.g., "zzz-nonexistent")`, suggestions[0])
	assert.Equal(t, "Consider using pro_only for more icons", suggestions[len(suggestions)-1])
	assert.Equal(t, []string{"zzz-nonexistent", "zzz-nonexistent", "zzznonexistent"}, h.fake.SearchTerms())
}

func TestSearchIcons_FallsBackToWord(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	h.fake.Search["arrow"] = []catalog.Icon{catalogtest.Icon("arrow-up", []string{"classic/solid"}, nil)}
	h.fake.Search["right"] = []catalog.Icon{catalogtest.Icon("arrow-right", []string{"classic/solid"}, nil)}

	out := h.ok(t, "search_icons", map[string]any{"query": "big arrow right"})
	icons := out["icons"].([]any)
	require.Len(t, icons, 1)
	assert.Equal(t, "arrow-up", icons[0].(map[string]any)["id"])
	assert.Equal(t, []string{"big arrow right", "big", "arrow"}, h.fake.SearchTerms())
}

func TestSearchIcons_FamilyStyleFilter(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	h.fake.Search["arrow"] = []catalog.Icon{
		catalogtest.Icon("arrow-right", []string{"classic/solid"}, nil),
		catalogtest.Icon("arrow-sharp", nil, []string{"sharp/solid"}),
		catalogtest.Icon("arrow-left", []string{"classic/regular"}, []string{"classic/solid"}),
	}

	out := h.ok(t, "search_icons", map[string]any{
		"query":         "arrow",
		"family_styles": []any{map[string]any{"family": "classic", "style": "solid"}},
	})
	icons := out["icons"].([]any)
	require.Len(t, icons, 2)
	assert.Equal(t, float64(2), out["results"])
	for _, raw := range icons {
		assert.NotEqual(t, "arrow-sharp", raw.(map[string]any)["id"])
	}
}

func TestSearchIcons_InvalidFamilyStyleMakesNoUpstreamCall(t *testing.T) {
	h := newHarness(t, "secret", usage.Vanilla)

	text := h.fail(t, "search_icons", map[string]any{
		"query":         "arrow",
		"include_svgs":  true,
		"family_styles": []any{map[string]any{"family": "comic", "style": "solid"}},
	})
	assert.True(t, strings.HasPrefix(text, "Error executing search_icons: "), text)
	assert.Contains(t, text, `Invalid family "comic"`)
	assert.Zero(t, h.fake.Calls("search"))
	assert.Zero(t, h.fake.Exchanges())
}

func TestSearchIcons_MissingQuery(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	assert.Equal(t, "Error executing search_icons: query parameter is required",
		h.fail(t, "search_icons", map[string]any{"query": "  "}))
}

func TestSearchIcons_ProWithoutToken(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	h.fake.Search["coffee"] = []catalog.Icon{catalogtest.Icon("mug-saucer", []string{"classic/solid"}, nil)}

	text := h.fail(t, "search_icons", map[string]any{"query": "coffee", "pro_only": true})
	assert.Contains(t, text, "authentication failed")
	assert.Zero(t, h.fake.Calls("search"))
}

func TestSearchIcons_SVGFailureDegradesOneIcon(t *testing.T) {
	h := newHarness(t, "secret", usage.Vanilla)
	withSVG := func(id string) catalog.Icon {
		icon := catalogtest.Icon(id, []string{"classic/solid"}, nil)
		icon.SVGs = []catalog.SVG{{
			FamilyStyle: catalog.FamilyStyle{Family: "classic", Style: "solid"},
			Width:       512,
			Height:      512,
			HTML:        "<svg/>",
		}}
		return icon
	}
	h.fake.Search["house"] = []catalog.Icon{withSVG("house"), withSVG("house-crack")}
	h.fake.Icons["house"] = withSVG("house")
	h.fake.Icons["house-crack"] = withSVG("house-crack")
	h.fake.IconErrors["house-crack"] = "internal error"

	out := h.ok(t, "search_icons", map[string]any{"query": "house", "include_svgs": true})
	icons := out["icons"].([]any)
	require.Len(t, icons, 2)
	assert.Len(t, icons[0].(map[string]any)["svgs"], 1)
	assert.NotContains(t, icons[1].(map[string]any), "svgs")
	assert.Equal(t, 2, h.fake.AuthorizedCalls("icon_svgs"))
	assert.Equal(t, 1, h.fake.Exchanges())
}

func TestCredentialReuseAcrossCalls(t *testing.T) {
	h := newHarness(t, "secret", usage.Vanilla)
	h.fake.TokenLifetime = 3600
	h.fake.Search["coffee"] = []catalog.Icon{catalogtest.Icon("mug-saucer", []string{"classic/solid"}, nil)}

	args := map[string]any{"query": "coffee", "pro_only": true}
	h.ok(t, "search_icons", args)
	h.clock.Add(1000)
	h.ok(t, "search_icons", args)
	assert.Equal(t, 1, h.fake.Exchanges())

	h.clock.Add(2400)
	h.ok(t, "search_icons", args)
	assert.Equal(t, 2, h.fake.Exchanges())
}

func TestIconByName_Found(t *testing.T) {
	h := newHarness(t, "", usage.React)
	h.fake.Icons["house"] = catalogtest.Icon("house", []string{"classic/solid"}, nil)

	out := h.ok(t, "get_icon_by_name", map[string]any{"name": "house"})
	assert.Equal(t, "house", out["name"])
	assert.Equal(t, "7.x", out["version"])
	assert.Equal(t, "REACT", out["framework"])
	assert.Equal(t, "React", out["frameworkInfo"].(map[string]any)["name"])
	icon := out["icon"].(map[string]any)
	assert.Equal(t, "house", icon["id"])
	assert.Equal(t, "React", icon["frameworkUsage"].(map[string]any)["framework"])
}

func TestIconByName_NotFoundWithTips(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)

	out := h.ok(t, "get_icon_by_name", map[string]any{"name": "not-a-real-icon"})
	assert.Equal(t, false, out["found"])
	assert.Equal(t, `Icon "not-a-real-icon" not found in FontAwesome 7.x`, out["message"])
	sugg := out["suggestions"].(map[string]any)
	assert.Equal(t, "Try using the search_icons tool to find similar icons", sugg["message"])
	assert.Len(t, sugg["tips"], 3)
	assert.NotContains(t, sugg, "icons")
}

func TestIconByName_NotFoundReportsResolvedVersion(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	h.fake.Resolved["7.x"] = "7.0.1"

	out := h.ok(t, "get_icon_by_name", map[string]any{"name": "not-a-real-icon"})
	assert.Equal(t, false, out["found"])
	assert.Equal(t, "7.0.1", out["version"])
	assert.Equal(t, `Icon "not-a-real-icon" not found in FontAwesome 7.x`, out["message"])
}

func TestIconByName_NotFoundWithSuggestions(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	h.fake.Search["hous"] = []catalog.Icon{
		catalogtest.Icon("house", []string{"classic/solid"}, nil),
		catalogtest.Icon("igloo", []string{"classic/solid"}, nil),
	}

	out := h.ok(t, "get_icon_by_name", map[string]any{"name": "hous"})
	assert.Equal(t, false, out["found"])
	sugg := out["suggestions"].(map[string]any)
	assert.Equal(t, "Did you mean one of these?", sugg["message"])
	icons := sugg["icons"].([]any)
	require.Len(t, icons, 2)
	house, igloo := icons[0].(map[string]any), icons[1].(map[string]any)
	assert.Equal(t, "house", house["id"])
	assert.Equal(t, []any{}, house["aliases"])
	assert.Greater(t, house["similarity"].(float64), igloo["similarity"].(float64))
}

func TestIconByName_UpstreamErrorSurfaces(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	h.fake.IconErrors["house"] = "service unavailable"

	text := h.fail(t, "get_icon_by_name", map[string]any{"name": "house"})
	assert.Contains(t, text, "Error executing get_icon_by_name: Font Awesome API error")
	assert.Contains(t, text, "service unavailable")
}

func TestReleaseInfo(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	h.fake.Releases = []catalog.Release{
		{Version: "6.7.2", Date: "2024-12-16", IconCount: catalog.IconCount{Free: 2060, Pro: 52663}},
		{Version: "7.x", Date: "2025-07-15", IsLatest: true},
	}

	out := h.ok(t, "get_release_info", nil)
	assert.Equal(t, "7.x", out["release"].(map[string]any)["version"])

	out = h.ok(t, "get_release_info", map[string]any{"list_all": true})
	assert.Len(t, out["releases"], 2)

	text := h.fail(t, "get_release_info", map[string]any{"version": "1.0.0"})
	assert.Contains(t, text, "not found")
}

func TestFamilyStyles_Idempotent(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	h.fake.FamilyStyles = []catalog.FamilyStyle{
		{Family: "classic", Style: "solid", Prefix: "fas"},
		{Family: "sharp", Style: "light", Prefix: "fasl"},
	}

	args := map[string]any{"version": "7.x"}
	first := resultText(t, h.d.Call(context.Background(), "get_family_styles", args))
	second := resultText(t, h.d.Call(context.Background(), "get_family_styles", args))
	assert.Equal(t, first, second)

	out := h.ok(t, "get_family_styles", args)
	assert.Equal(t, "7.x", out["version"])
	assert.Len(t, out["familyStyles"], 2)
}

func TestShowcase(t *testing.T) {
	h := newHarness(t, "secret", usage.Vanilla)
	h.fake.Icons["star"] = catalogtest.Icon("star", []string{"classic/solid"}, []string{"chisel/regular", "etch/solid"})
	h.fake.Icons["heart"] = catalogtest.Icon("heart", nil, []string{"chisel/regular"})
	h.fake.Icons["home"] = catalogtest.Icon("home", nil, []string{"chisel/regular"})
	h.fake.IconErrors["user"] = "boom"

	out := h.ok(t, "get_pro_plus_showcase", map[string]any{"icons_per_family": float64(2)})
	assert.Equal(t, "FontAwesome Pro+ Style Families Showcase", out["message"])
	families := out["families"].([]any)
	require.Len(t, families, len(showcaseFamilies))

	chisel := families[0].(map[string]any)
	assert.Equal(t, "chisel", chisel["family"])
	assert.Equal(t, "facr", chisel["prefix"])
	assert.Equal(t, float64(2), chisel["iconCount"])
	ids := []string{}
	for _, icon := range chisel["icons"].([]any) {
		ids = append(ids, icon.(map[string]any)["id"].(string))
		assert.Equal(t, "facr", icon.(map[string]any)["prefix"])
	}
	assert.Equal(t, []string{"star", "heart"}, ids)

	etch := families[1].(map[string]any)
	assert.Equal(t, float64(1), etch["iconCount"])
	assert.Equal(t, float64(3), out["totalIcons"])
	assert.Equal(t, 1, h.fake.Exchanges())
}

func TestShowcase_RequiresAuth(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	text := h.fail(t, "get_pro_plus_showcase", nil)
	assert.Contains(t, text, "Pro+ showcase requires authentication")
	assert.Zero(t, h.fake.Calls("icon"))
}

func TestDispatcher_UnknownTool(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	assert.Equal(t, "Unknown tool: nope", h.fail(t, "nope", nil))
}

type panicky struct{}

func (panicky) Name() string         { return "panicky" }
func (panicky) Definition() mcp.Tool { return mcp.NewTool("panicky") }
func (panicky) Execute(context.Context, validation.Args) (any, error) {
	panic("kaboom")
}

func TestDispatcher_RecoversPanics(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	require.NoError(t, h.d.registry.Register(panicky{}))
	assert.Equal(t, "Error executing panicky: internal error: kaboom", h.fail(t, "panicky", nil))
}

func TestDispatcher_Tools(t *testing.T) {
	h := newHarness(t, "", usage.Vanilla)
	var names []string
	for _, tool := range h.d.Tools() {
		def := tool.Definition()
		assert.Equal(t, tool.Name(), def.Name)
		names = append(names, def.Name)
	}
	assert.Equal(t, []string{
		"get_family_styles",
		"get_icon_by_name",
		"get_pro_plus_showcase",
		"get_release_info",
		"search_icons",
	}, names)

	assert.Error(t, h.d.registry.Register(&searchIcons{}))
}
