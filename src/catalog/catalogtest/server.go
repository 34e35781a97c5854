// Package catalogtest provides an in-process fake of the Font Awesome GraphQL
// and token endpoints for tests.
package catalogtest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"github.com/igorls/fontawesome-mcp/src/catalog"
	"github.com/igorls/fontawesome-mcp/src/json"
)

// TokenPath is where the fake serves token exchanges.
const TokenPath = "/token"

// Server is a scriptable fake upstream. Configure the exported maps before
// issuing requests; counters are safe to read concurrently.
type Server struct {
	*httptest.Server

	Icons         map[string]catalog.Icon   // by name
	Search        map[string][]catalog.Icon // by query string
	SearchErrors  map[string]string         // query -> GraphQL error message
	IconErrors    map[string]string         // name -> GraphQL error message
	Releases      []catalog.Release
	Resolved      map[string]string // requested version -> version reported back
	FamilyStyles  []catalog.FamilyStyle
	TokenStatus   int
	TokenLifetime int
	Scopes        []string

	mu          sync.Mutex
	ops         map[string]int
	searchTerms []string
	exchanges   int
	authorized  map[string]int
	lastQuery   map[string]string
}

// New starts a fake upstream. Close it when done.
func New() *Server {
	s := &Server{
		Icons:         map[string]catalog.Icon{},
		Search:        map[string][]catalog.Icon{},
		SearchErrors:  map[string]string{},
		IconErrors:    map[string]string{},
		Resolved:      map[string]string{},
		TokenStatus:   http.StatusOK,
		TokenLifetime: 3600,
		Scopes:        []string{"svg_icons_pro", "public"},
		ops:           map[string]int{},
		authorized:    map[string]int{},
		lastQuery:     map[string]string{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// TokenURL is the fake token endpoint.
func (s *Server) TokenURL() string {
	return s.URL + TokenPath
}

// Calls returns how many requests of op were served.
func (s *Server) Calls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ops[op]
}

// AuthorizedCalls returns how many requests of op carried a bearer token.
func (s *Server) AuthorizedCalls(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authorized[op]
}

// SearchTerms returns every search query received, in order.
func (s *Server) SearchTerms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.searchTerms...)
}

// Exchanges returns the number of token exchanges served.
func (s *Server) Exchanges() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchanges
}

// LastQuery returns the last GraphQL document received for op.
func (s *Server) LastQuery(op string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastQuery[op]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == TokenPath {
		s.handleToken(w)
		return
	}

	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	op := operation(req.Query)
	s.mu.Lock()
	s.ops[op]++
	s.lastQuery[op] = req.Query
	if strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		s.authorized[op]++
	}
	s.mu.Unlock()

	str := func(k string) string {
		v, _ := req.Variables[k].(string)
		return v
	}

	switch op {
	case "search":
		q := str("query")
		s.mu.Lock()
		s.searchTerms = append(s.searchTerms, q)
		s.mu.Unlock()
		if msg, ok := s.SearchErrors[q]; ok {
			writeError(w, msg)
			return
		}
		icons := make([]catalog.Icon, 0, len(s.Search[q]))
		for _, icon := range s.Search[q] {
			icon.SVGs = nil
			icons = append(icons, icon)
		}
		if first, ok := req.Variables["first"].(float64); ok && int(first) < len(icons) {
			icons = icons[:int(first)]
		}
		writeData(w, map[string]any{"search": icons})
	case "icon", "icon_svgs":
		name := str("name")
		if msg, ok := s.IconErrors[name]; ok {
			writeError(w, msg)
			return
		}
		icon, ok := s.Icons[name]
		version := str("version")
		if v, ok := s.Resolved[version]; ok {
			version = v
		}
		release := map[string]any{"version": version}
		if !ok {
			release["icon"] = nil
		} else {
			if !strings.Contains(req.Query, "svgs") {
				icon.SVGs = nil
			}
			if op == "icon_svgs" {
				release["icon"] = map[string]any{"svgs": icon.SVGs}
			} else {
				release["icon"] = icon
			}
		}
		writeData(w, map[string]any{"release": release})
	case "releases":
		writeData(w, map[string]any{"releases": s.Releases})
	case "release":
		for _, rel := range s.Releases {
			if rel.Version == str("version") {
				writeData(w, map[string]any{"release": rel})
				return
			}
		}
		writeData(w, map[string]any{"release": nil})
	case "family_styles":
		writeData(w, map[string]any{"release": map[string]any{
			"version":      str("version"),
			"familyStyles": s.FamilyStyles,
		}})
	default:
		writeError(w, "unknown operation")
	}
}

func (s *Server) handleToken(w http.ResponseWriter) {
	s.mu.Lock()
	s.exchanges++
	s.mu.Unlock()
	if s.TokenStatus != http.StatusOK {
		http.Error(w, "unauthorized", s.TokenStatus)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"access_token": "access-token",
		"expires_in":   s.TokenLifetime,
		"scopes":       s.Scopes,
		"token_type":   "Bearer",
	})
}

func operation(query string) string {
	switch {
	case strings.Contains(query, "SearchIcons"):
		return "search"
	case strings.Contains(query, "GetIconSvgs"):
		return "icon_svgs"
	case strings.Contains(query, "GetIcon"):
		return "icon"
	case strings.Contains(query, "GetReleases"):
		return "releases"
	case strings.Contains(query, "GetRelease"):
		return "release"
	case strings.Contains(query, "GetFamilyStyles"):
		return "family_styles"
	}
	return "unknown"
}

func writeData(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"data": nil, "errors": []map[string]any{{"message": msg}}})
}

// Icon builds a catalog icon offered in the given free and pro variants,
// each written as "family/style".
func Icon(id string, free []string, pro []string) catalog.Icon {
	parse := func(pairs []string) []catalog.FamilyStyle {
		out := make([]catalog.FamilyStyle, 0, len(pairs))
		for _, pair := range pairs {
			fam, sty, _ := strings.Cut(pair, "/")
			out = append(out, catalog.FamilyStyle{Family: fam, Style: sty, Prefix: "fa" + sty[:1]})
		}
		return out
	}
	return catalog.Icon{
		ID:      id,
		Label:   strings.ReplaceAll(id, "-", " "),
		Unicode: "f000",
		Changes: []string{"7.0.0"},
		FamilyStylesByLicense: catalog.Licenses{
			Free: parse(free),
			Pro:  parse(pro),
		},
		Aliases: &catalog.Aliases{Names: []string{}},
	}
}
