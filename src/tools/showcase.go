package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/igorls/fontawesome-mcp/src/catalog"
	"github.com/igorls/fontawesome-mcp/src/validation"
)

type showcaseFamily struct {
	catalog.FamilyStyle
	Description string
}

// showcaseFamilies are the Pro+ style families sampled by the showcase.
var showcaseFamilies = []showcaseFamily{
	{catalog.FamilyStyle{Family: "chisel", Style: "regular", Prefix: "facr"}, "Bold, carved aesthetic with strong geometric lines"},
	{catalog.FamilyStyle{Family: "etch", Style: "solid", Prefix: "faes"}, "Hand-drawn aesthetic with sketchy, artistic lines"},
	{catalog.FamilyStyle{Family: "jelly", Style: "regular", Prefix: "fajr"}, "Soft, rounded forms with playful, bouncy appearance"},
	{catalog.FamilyStyle{Family: "notdog", Style: "solid", Prefix: "fans"}, "Quirky, unconventional style breaking traditional design rules"},
	{catalog.FamilyStyle{Family: "slab", Style: "regular", Prefix: "faslr"}, "Bold, chunky letterforms with strong serifs"},
	{catalog.FamilyStyle{Family: "thumbprint", Style: "light", Prefix: "fatl"}, "Textured, fingerprint-like patterns with security aesthetics"},
	{catalog.FamilyStyle{Family: "whiteboard", Style: "semibold", Prefix: "fawsb"}, "Clean, marker-drawn style perfect for presentations"},
}

// probeNames are tried in order against each family.
var probeNames = []string{
	"star", "heart", "home", "user", "check",
	"times", "plus", "minus", "arrow-right", "envelope",
}

// showcaseProbeLimit bounds how many families are probed at once.
const showcaseProbeLimit = 4

type showcase struct{ *deps }

type showcaseIcon struct {
	ID      string        `json:"id"`
	Label   string        `json:"label"`
	Unicode string        `json:"unicode"`
	Prefix  string        `json:"prefix"`
	SVGs    []catalog.SVG `json:"svgs,omitempty"`
}

type showcaseEntry struct {
	Family      string         `json:"family"`
	Style       string         `json:"style"`
	Prefix      string         `json:"prefix"`
	Description string         `json:"description"`
	IconCount   int            `json:"iconCount"`
	Icons       []showcaseIcon `json:"icons"`
}

type showcaseUsage struct {
	HTML string `json:"html"`
	CSS  string `json:"css"`
	Note string `json:"note"`
}

type showcaseResponse struct {
	Version    string          `json:"version"`
	Message    string          `json:"message"`
	Families   []showcaseEntry `json:"families"`
	Usage      showcaseUsage   `json:"usage"`
	TotalIcons int             `json:"totalIcons"`
}

func (t *showcase) Name() string { return "get_pro_plus_showcase" }

func (t *showcase) Definition() mcp.Tool {
	return mcp.NewTool(t.Name(),
		mcp.WithDescription("Showcase sample icons from the Pro+ style families (Chisel, Etch, Jelly, Notdog, Slab, Thumbprint, Whiteboard). Requires FA_TOKEN with Pro access."),
		versionProperty(),
		mcp.WithNumber("icons_per_family",
			mcp.Description("Sample icons per family (1-10)"),
			mcp.DefaultNumber(validation.DefaultIconsPerFamily),
			mcp.Min(1),
			mcp.Max(validation.MaxIconsPerFamily),
		),
		mcp.WithBoolean("include_svgs", mcp.Description("Include SVG markup for each sample"), mcp.DefaultBool(false)),
	)
}

func (t *showcase) Execute(ctx context.Context, args validation.Args) (any, error) {
	perFamily, err := validation.NormalizeIconsPerFamily(args["icons_per_family"])
	if err != nil {
		return nil, err
	}
	version := validation.Version(args)
	includeSVGs := validation.Bool(args, "include_svgs")
	if err := t.authorize(ctx); err != nil {
		return nil, fmt.Errorf("Pro+ showcase requires authentication: %w", err)
	}

	entries := make([]showcaseEntry, len(showcaseFamilies))
	var g errgroup.Group
	g.SetLimit(showcaseProbeLimit)
	for i, fam := range showcaseFamilies {
		g.Go(func() error {
			icons := t.probe(ctx, fam.FamilyStyle, version, perFamily, includeSVGs)
			entries[i] = showcaseEntry{
				Family:      fam.Family,
				Style:       fam.Style,
				Prefix:      fam.Prefix,
				Description: fam.Description,
				IconCount:   len(icons),
				Icons:       icons,
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp := showcaseResponse{
		Version:  version,
		Message:  "FontAwesome Pro+ Style Families Showcase",
		Families: entries,
		Usage: showcaseUsage{
			HTML: "Use class names like 'facr fa-star' for Chisel Regular star icon",
			CSS:  "Ensure you have FontAwesome Pro v7+ loaded with Pro+ families enabled",
			Note: "Pro+ families require active FontAwesome Pro subscription",
		},
	}
	for _, e := range entries {
		resp.TotalIcons += e.IconCount
	}
	return resp, nil
}

// probe tries probeNames in order until want icons offered in fs are found.
// Lookups that fail are skipped.
func (t *showcase) probe(ctx context.Context, fs catalog.FamilyStyle, version string, want int, includeSVGs bool) []showcaseIcon {
	found := make([]showcaseIcon, 0, want)
	for _, name := range probeNames {
		if len(found) >= want || ctx.Err() != nil {
			break
		}
		icon, _, err := t.catalog.IconByName(ctx, name, version, catalog.FieldOptions{
			IncludeSVGs:   includeSVGs,
			FamilyStyles:  []catalog.FamilyStyle{fs},
			ProRestricted: true,
		})
		if err != nil {
			t.logger.Debug("showcase probe skipped", "family", fs.Family, "style", fs.Style, "icon", name, "error", err)
			continue
		}
		if !icon.HasPro(fs) {
			continue
		}
		found = append(found, showcaseIcon{
			ID:      icon.ID,
			Label:   icon.Label,
			Unicode: icon.Unicode,
			Prefix:  fs.Prefix,
			SVGs:    icon.SVGs,
		})
	}
	return found
}
