// Package tools implements the MCP tools of the server and the dispatcher that
// routes named invocations to them.
package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/igorls/fontawesome-mcp/src/auth"
	"github.com/igorls/fontawesome-mcp/src/catalog"
	"github.com/igorls/fontawesome-mcp/src/search"
	"github.com/igorls/fontawesome-mcp/src/usage"
	"github.com/igorls/fontawesome-mcp/src/validation"
)

// Tool is one named operation exposed to MCP clients.
type Tool interface {
	Name() string
	Definition() mcp.Tool
	Execute(ctx context.Context, args validation.Args) (any, error)
}

// Catalog is the set of upstream lookups the tools use. *catalog.Client
// satisfies it.
type Catalog interface {
	search.Searcher
	IconByName(ctx context.Context, name, version string, opts catalog.FieldOptions) (catalog.Icon, string, error)
	IconSVGs(ctx context.Context, name, version string, filter []catalog.FamilyStyle) ([]catalog.SVG, error)
	ReleaseInfo(ctx context.Context, version string) (catalog.Release, error)
	AllReleases(ctx context.Context) ([]catalog.Release, error)
	FamilyStyles(ctx context.Context, version string) (string, []catalog.FamilyStyle, error)
}

// Authorizer obtains credentials for pro-gated calls. *auth.TokenCache
// satisfies it.
type Authorizer interface {
	Acquire(ctx context.Context) (auth.Credential, error)
}

// Deps are the collaborators shared by every tool.
type Deps struct {
	Catalog   Catalog
	Auth      Authorizer
	Framework usage.Framework
	Logger    *slog.Logger
}

// deps is the resolved form of Deps embedded in each tool.
type deps struct {
	catalog   Catalog
	auth      Authorizer
	resolver  *search.Resolver
	framework usage.Framework
	logger    *slog.Logger
}

func newDeps(d Deps) *deps {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &deps{
		catalog:   d.Catalog,
		auth:      d.Auth,
		resolver:  search.NewResolver(d.Catalog, logger),
		framework: usage.ParseFramework(string(d.Framework)),
		logger:    logger,
	}
}

// authorize fails with catalog.ErrAuthRequired unless a credential can be
// obtained.
func (d *deps) authorize(ctx context.Context) error {
	if d.auth == nil {
		return catalog.ErrAuthRequired
	}
	if _, err := d.auth.Acquire(ctx); err != nil {
		return fmt.Errorf("%w: %v", catalog.ErrAuthRequired, err)
	}
	return nil
}

// frameworkName is the upper-case framework label used in payloads.
func (d *deps) frameworkName() string {
	return strings.ToUpper(string(d.framework))
}

// frameworkInfo returns the static guide, nil for vanilla.
func (d *deps) frameworkInfo() *usage.FrameworkGuide {
	if d.framework == usage.Vanilla {
		return nil
	}
	g := usage.Guide(d.framework)
	return &g
}

// annotatedIcon is an icon with its usage snippets attached.
type annotatedIcon struct {
	catalog.Icon
	FrameworkUsage *usage.Snippet `json:"frameworkUsage,omitempty"`
}

func (d *deps) annotate(icon catalog.Icon) annotatedIcon {
	return annotatedIcon{Icon: icon, FrameworkUsage: usage.Present(icon, d.framework)}
}

// Registry holds tools by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds t. Names must be non-empty and unique.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("tool must have a name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.tools[name]; dup {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.tools[name] = t
	return nil
}

// Get looks a tool up by name.
func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns every tool sorted by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func familyStylesProperty() mcp.ToolOption {
	return mcp.WithArray("family_styles",
		mcp.Description("Restrict results to these family/style combinations"),
		mcp.Items(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"family": map[string]any{"type": "string", "enum": catalog.Families},
				"style":  map[string]any{"type": "string", "enum": catalog.Styles},
			},
			"required": []string{"family", "style"},
		}),
	)
}

func versionProperty() mcp.ToolOption {
	return mcp.WithString("version",
		mcp.Description("Font Awesome release version, e.g. 7.x or 6.5.1"),
		mcp.DefaultString(validation.DefaultVersion),
	)
}
