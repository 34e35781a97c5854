package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/igorls/fontawesome-mcp/src/catalog"
	"github.com/igorls/fontawesome-mcp/src/usage"
	"github.com/igorls/fontawesome-mcp/src/validation"
)

type iconByName struct{ *deps }

type iconResponse struct {
	Name          string                `json:"name"`
	Version       string                `json:"version"`
	Framework     string                `json:"framework"`
	Icon          annotatedIcon         `json:"icon"`
	FrameworkInfo *usage.FrameworkGuide `json:"frameworkInfo,omitempty"`
}

type notFoundResponse struct {
	Name        string      `json:"name"`
	Version     string      `json:"version"`
	Found       bool        `json:"found"`
	Message     string      `json:"message"`
	Suggestions suggestions `json:"suggestions"`
}

type suggestions struct {
	Message string       `json:"message"`
	Icons   []suggestion `json:"icons,omitempty"`
	Tips    []string     `json:"tips,omitempty"`
}

type suggestion struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Aliases    []string `json:"aliases"`
	Similarity float32  `json:"similarity"`
}

var notFoundTips = []string{
	"Check for typos in the icon name",
	"Try searching for related keywords",
	"Visit fontawesome.com to browse available icons",
}

func (t *iconByName) Name() string { return "get_icon_by_name" }

func (t *iconByName) Definition() mcp.Tool {
	return mcp.NewTool(t.Name(),
		mcp.WithDescription("Get a Font Awesome icon by its exact name or alias, with usage snippets for the configured framework. Suggests close matches when the name is unknown."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Icon name, e.g. \"house\" or \"arrow-right\"")),
		versionProperty(),
		mcp.WithBoolean("include_svgs", mcp.Description("Include SVG markup (requires FA_TOKEN)"), mcp.DefaultBool(false)),
		mcp.WithBoolean("pro_only", mcp.Description("Look up with pro access (requires FA_TOKEN)"), mcp.DefaultBool(false)),
		familyStylesProperty(),
	)
}

func (t *iconByName) Execute(ctx context.Context, args validation.Args) (any, error) {
	name, err := validation.RequireString(args, "name")
	if err != nil {
		return nil, err
	}
	common, err := validation.ParseCommon(args)
	if err != nil {
		return nil, err
	}
	if common.RequiresAuth() {
		if err := t.authorize(ctx); err != nil {
			return nil, err
		}
	}

	icon, version, err := t.catalog.IconByName(ctx, name, common.Version, catalog.FieldOptions{
		IncludeSVGs:   common.IncludeSVGs,
		FamilyStyles:  common.FamilyStyles,
		ProRestricted: common.ProOnly,
	})
	if errors.Is(err, catalog.ErrNotFound) {
		return t.notFound(ctx, name, common.Version, version), nil
	}
	if err != nil {
		return nil, err
	}

	return iconResponse{
		Name:          name,
		Version:       version,
		Framework:     t.frameworkName(),
		Icon:          t.annotate(icon),
		FrameworkInfo: t.frameworkInfo(),
	}, nil
}

// notFound reports the version upstream resolved to, falling back to the one
// requested; the message and suggestions use the requested one.
func (t *iconByName) notFound(ctx context.Context, name, requested, resolved string) notFoundResponse {
	if resolved == "" {
		resolved = requested
	}
	resp := notFoundResponse{
		Name:    name,
		Version: resolved,
		Message: fmt.Sprintf("Icon %q not found in FontAwesome %s", name, requested),
	}
	similar := t.resolver.Suggest(ctx, name, requested)
	if len(similar) == 0 {
		resp.Suggestions = suggestions{
			Message: "Try using the search_icons tool to find similar icons",
			Tips:    notFoundTips,
		}
		return resp
	}
	resp.Suggestions.Message = "Did you mean one of these?"
	for _, icon := range similar {
		resp.Suggestions.Icons = append(resp.Suggestions.Icons, suggestion{
			ID:         icon.ID,
			Label:      icon.Label,
			Aliases:    icon.AliasNames(),
			Similarity: similarity(name, icon.ID),
		})
	}
	return resp
}

// similarity scores how close a suggested id is to the requested name, in
// [0, 1].
func similarity(name, id string) float32 {
	score, err := edlib.StringsSimilarity(strings.ToLower(name), id, edlib.JaroWinkler)
	if err != nil {
		return 0
	}
	return score
}
