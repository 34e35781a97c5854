package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/igorls/fontawesome-mcp/src/catalog"
	"github.com/igorls/fontawesome-mcp/src/usage"
	"github.com/igorls/fontawesome-mcp/src/validation"
)

// svgFetchLimit bounds concurrent glyph fetches per call.
const svgFetchLimit = 8

const (
	strategySuccess   = "success"
	strategyNoResults = "no_results"
)

type searchIcons struct{ *deps }

type searchResponse struct {
	Query          string                `json:"query"`
	Version        string                `json:"version"`
	Framework      string                `json:"framework"`
	Results        int                   `json:"results"`
	Icons          []annotatedIcon       `json:"icons"`
	SearchStrategy string                `json:"searchStrategy"`
	Suggestions    []string              `json:"suggestions,omitempty"`
	FrameworkInfo  *usage.FrameworkGuide `json:"frameworkInfo,omitempty"`
}

func (t *searchIcons) Name() string { return "search_icons" }

func (t *searchIcons) Definition() mcp.Tool {
	return mcp.NewTool(t.Name(),
		mcp.WithDescription("Search Font Awesome icons by keyword. Multi-word and punctuated queries are retried with simpler terms until one matches."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search keywords, e.g. \"coffee\" or \"arrow right\"")),
		versionProperty(),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (1-50)"),
			mcp.DefaultNumber(validation.DefaultLimit),
			mcp.Min(validation.MinLimit),
			mcp.Max(validation.MaxLimit),
		),
		mcp.WithBoolean("include_svgs", mcp.Description("Include SVG markup (requires FA_TOKEN)"), mcp.DefaultBool(false)),
		mcp.WithBoolean("pro_only", mcp.Description("Search with pro access (requires FA_TOKEN)"), mcp.DefaultBool(false)),
		familyStylesProperty(),
	)
}

func (t *searchIcons) Execute(ctx context.Context, args validation.Args) (any, error) {
	query, err := validation.RequireString(args, "query")
	if err != nil {
		return nil, err
	}
	common, err := validation.ParseCommon(args)
	if err != nil {
		return nil, err
	}
	limit, err := validation.NormalizeLimit(args["limit"])
	if err != nil {
		return nil, err
	}
	if common.RequiresAuth() {
		if err := t.authorize(ctx); err != nil {
			return nil, err
		}
	}

	icons, err := t.resolver.SmartSearch(ctx, query, common.Version, limit)
	if err != nil {
		return nil, err
	}
	if common.IncludeSVGs && len(icons) > 0 {
		t.attachSVGs(ctx, icons, common)
	}
	if len(common.FamilyStyles) > 0 {
		kept := icons[:0]
		for _, icon := range icons {
			if icon.HasAny(common.FamilyStyles) {
				kept = append(kept, icon)
			}
		}
		icons = kept
	}

	resp := searchResponse{
		Query:          query,
		Version:        common.Version,
		Framework:      t.frameworkName(),
		Results:        len(icons),
		Icons:          make([]annotatedIcon, 0, len(icons)),
		SearchStrategy: strategySuccess,
		FrameworkInfo:  t.frameworkInfo(),
	}
	for _, icon := range icons {
		resp.Icons = append(resp.Icons, t.annotate(icon))
	}
	if len(icons) == 0 {
		resp.SearchStrategy = strategyNoResults
		resp.Suggestions = noResultSuggestions(query, common.ProOnly)
	}
	return resp, nil
}

// attachSVGs fetches glyphs for every icon concurrently. An icon whose fetch
// fails is left without glyphs.
func (t *searchIcons) attachSVGs(ctx context.Context, icons []catalog.Icon, common validation.Common) {
	var g errgroup.Group
	g.SetLimit(svgFetchLimit)
	for i := range icons {
		g.Go(func() error {
			svgs, err := t.catalog.IconSVGs(ctx, icons[i].ID, common.Version, common.FamilyStyles)
			if err != nil {
				t.logger.Warn("svg fetch failed", "icon", icons[i].ID, "error", err)
				return nil
			}
			icons[i].SVGs = svgs
			return nil
		})
	}
	_ = g.Wait()
}

func noResultSuggestions(query string, proOnly bool) []string {
	first := query
	if words := strings.Fields(query); len(words) > 0 {
		first = words[0]
	}
	out := []string{
		fmt.Sprintf("Try simpler keywords (e.g., %q)", first),
		"Check if the icon exists in FontAwesome",
		"Try related terms or synonyms",
	}
	if proOnly {
		return append(out, "Try without pro_only filter")
	}
	return append(out, "Consider using pro_only for more icons")
}
