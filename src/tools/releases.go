package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/igorls/fontawesome-mcp/src/catalog"
	"github.com/igorls/fontawesome-mcp/src/validation"
)

type releaseInfo struct{ *deps }

func (t *releaseInfo) Name() string { return "get_release_info" }

func (t *releaseInfo) Definition() mcp.Tool {
	return mcp.NewTool(t.Name(),
		mcp.WithDescription("Get Font Awesome release metadata: date, icon counts and whether it is the latest release."),
		versionProperty(),
		mcp.WithBoolean("list_all", mcp.Description("List every release instead of a single one"), mcp.DefaultBool(false)),
	)
}

func (t *releaseInfo) Execute(ctx context.Context, args validation.Args) (any, error) {
	if validation.Bool(args, "list_all") {
		releases, err := t.catalog.AllReleases(ctx)
		if err != nil {
			return nil, err
		}
		return struct {
			Releases []catalog.Release `json:"releases"`
		}{releases}, nil
	}
	release, err := t.catalog.ReleaseInfo(ctx, validation.Version(args))
	if err != nil {
		return nil, err
	}
	return struct {
		Release catalog.Release `json:"release"`
	}{release}, nil
}

type familyStyles struct{ *deps }

func (t *familyStyles) Name() string { return "get_family_styles" }

func (t *familyStyles) Definition() mcp.Tool {
	return mcp.NewTool(t.Name(),
		mcp.WithDescription("List the family/style combinations available in a Font Awesome release."),
		versionProperty(),
	)
}

func (t *familyStyles) Execute(ctx context.Context, args validation.Args) (any, error) {
	version, fss, err := t.catalog.FamilyStyles(ctx, validation.Version(args))
	if err != nil {
		return nil, err
	}
	return struct {
		Version      string                `json:"version"`
		FamilyStyles []catalog.FamilyStyle `json:"familyStyles"`
	}{version, fss}, nil
}
