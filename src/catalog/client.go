// Package catalog issues the fixed set of Font Awesome GraphQL lookups the
// server needs and decodes them into typed records.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/machinebox/graphql"

	"github.com/igorls/fontawesome-mcp/src/auth"
)

// DefaultEndpoint is the Font Awesome GraphQL API.
const DefaultEndpoint = "https://api.fontawesome.com"

// Transport runs one GraphQL request. *graphql.Client satisfies it.
type Transport interface {
	Run(ctx context.Context, req *graphql.Request, resp interface{}) error
}

// Credentials hands out access tokens. *auth.TokenCache satisfies it.
type Credentials interface {
	Acquire(ctx context.Context) (auth.Credential, error)
	Cached() (auth.Credential, bool)
}

// Client exposes typed catalog lookups.
type Client struct {
	transport Transport
	creds     Credentials
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTransport replaces the GraphQL transport.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		if t != nil {
			c.transport = t
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for endpoint. creds may be nil, in which case
// every pro-gated lookup fails with ErrAuthRequired.
func NewClient(endpoint string, creds Credentials, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		creds:  creds,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.transport == nil {
		gc := graphql.NewClient(endpoint, graphql.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}))
		gc.Log = func(s string) { c.logger.Debug(s) }
		c.transport = gc
	}
	return c
}

// run attaches credentials and executes req. With needAuth a credential must be
// obtained first; otherwise a cached fresh one is attached when available.
func (c *Client) run(ctx context.Context, op string, req *graphql.Request, needAuth bool, out any) error {
	switch {
	case needAuth:
		if c.creds == nil {
			return ErrAuthRequired
		}
		cred, err := c.creds.Acquire(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrAuthRequired, err)
		}
		req.Header.Set("Authorization", "Bearer "+cred.Token)
	case c.creds != nil:
		if cred, ok := c.creds.Cached(); ok {
			req.Header.Set("Authorization", "Bearer "+cred.Token)
		}
	}

	start := time.Now()
	err := c.transport.Run(ctx, req, out)
	c.logger.Debug("catalog request", "op", op, "authenticated", req.Header.Get("Authorization") != "", "duration", time.Since(start), "error", err)
	return upstream(op, err)
}

// Search runs the upstream fuzzy search for query.
func (c *Client) Search(ctx context.Context, query, version string, first int) ([]Icon, error) {
	req := graphql.NewRequest(searchQuery)
	req.Var("version", version)
	req.Var("query", query)
	req.Var("first", first)

	var resp struct {
		Search []Icon `json:"search"`
	}
	if err := c.run(ctx, "search", req, false, &resp); err != nil {
		return nil, err
	}
	for i := range resp.Search {
		resp.Search[i].canonicalize()
	}
	return resp.Search, nil
}

// IconByName looks up an icon by exact name or alias. It returns the resolved
// release version alongside, also when the icon is missing (ErrNotFound).
func (c *Client) IconByName(ctx context.Context, name, version string, opts FieldOptions) (Icon, string, error) {
	filterArgs := ""
	if opts.IncludeSVGs {
		var err error
		if filterArgs, err = svgFilterArgs(opts.FamilyStyles); err != nil {
			return Icon{}, version, err
		}
	}
	req := graphql.NewRequest(iconQuery(opts.IncludeSVGs, filterArgs))
	req.Var("version", version)
	req.Var("name", name)

	var resp struct {
		Release *struct {
			Version string `json:"version"`
			Icon    *Icon  `json:"icon"`
		} `json:"release"`
	}
	if err := c.run(ctx, "icon", req, opts.needsAuth(), &resp); err != nil {
		return Icon{}, version, err
	}
	if resp.Release == nil {
		return Icon{}, version, ErrNotFound
	}
	resolved := resp.Release.Version
	if resolved == "" {
		resolved = version
	}
	if resp.Release.Icon == nil {
		return Icon{}, resolved, ErrNotFound
	}
	icon := *resp.Release.Icon
	icon.canonicalize()
	return icon, resolved, nil
}

// IconSVGs fetches only the rendered glyphs of an icon.
func (c *Client) IconSVGs(ctx context.Context, name, version string, filter []FamilyStyle) ([]SVG, error) {
	filterArgs, err := svgFilterArgs(filter)
	if err != nil {
		return nil, err
	}
	req := graphql.NewRequest(iconSVGsQuery(filterArgs))
	req.Var("version", version)
	req.Var("name", name)

	var resp struct {
		Release *struct {
			Icon *struct {
				SVGs []SVG `json:"svgs"`
			} `json:"icon"`
		} `json:"release"`
	}
	if err := c.run(ctx, "icon_svgs", req, true, &resp); err != nil {
		return nil, err
	}
	if resp.Release == nil || resp.Release.Icon == nil {
		return []SVG{}, nil
	}
	svgs := resp.Release.Icon.SVGs
	for i := range svgs {
		svgs[i].FamilyStyle.canonicalize()
	}
	if svgs == nil {
		svgs = []SVG{}
	}
	return svgs, nil
}

// ReleaseInfo returns metadata for one release.
func (c *Client) ReleaseInfo(ctx context.Context, version string) (Release, error) {
	req := graphql.NewRequest(releaseQuery)
	req.Var("version", version)

	var resp struct {
		Release *Release `json:"release"`
	}
	if err := c.run(ctx, "release", req, false, &resp); err != nil {
		return Release{}, err
	}
	if resp.Release == nil {
		return Release{}, fmt.Errorf("release %q: %w", version, ErrNotFound)
	}
	return *resp.Release, nil
}

// AllReleases lists every release.
func (c *Client) AllReleases(ctx context.Context) ([]Release, error) {
	req := graphql.NewRequest(releasesQuery)

	var resp struct {
		Releases []Release `json:"releases"`
	}
	if err := c.run(ctx, "releases", req, false, &resp); err != nil {
		return nil, err
	}
	if resp.Releases == nil {
		return []Release{}, nil
	}
	return resp.Releases, nil
}

// FamilyStyles lists the family/style combinations of a release and returns
// the resolved release version.
func (c *Client) FamilyStyles(ctx context.Context, version string) (string, []FamilyStyle, error) {
	req := graphql.NewRequest(familyStylesQuery)
	req.Var("version", version)

	var resp struct {
		Release *struct {
			Version      string        `json:"version"`
			FamilyStyles []FamilyStyle `json:"familyStyles"`
		} `json:"release"`
	}
	if err := c.run(ctx, "family_styles", req, false, &resp); err != nil {
		return version, nil, err
	}
	if resp.Release == nil {
		return version, nil, fmt.Errorf("release %q: %w", version, ErrNotFound)
	}
	fss := resp.Release.FamilyStyles
	for i := range fss {
		fss[i].canonicalize()
	}
	if fss == nil {
		fss = []FamilyStyle{}
	}
	return resp.Release.Version, fss, nil
}
