package catalog

import "strings"

// FamilyStyle identifies one renderable variant of an icon, e.g. classic+solid.
// Family and Style are kept in canonical lowercase form.
type FamilyStyle struct {
	Family string `json:"family"`
	Style  string `json:"style"`
	Prefix string `json:"prefix,omitempty"`
}

// Same reports structural equality on (family, style); the prefix is ignored.
func (f FamilyStyle) Same(o FamilyStyle) bool {
	return f.Family == o.Family && f.Style == o.Style
}

// Key is the "family-style" form used for set lookups.
func (f FamilyStyle) Key() string {
	return f.Family + "-" + f.Style
}

func (f *FamilyStyle) canonicalize() {
	f.Family = strings.ToLower(f.Family)
	f.Style = strings.ToLower(f.Style)
}

// Licenses splits the available variants by license.
type Licenses struct {
	Free []FamilyStyle `json:"free"`
	Pro  []FamilyStyle `json:"pro"`
}

type AliasUnicodes struct {
	Composite []string `json:"composite"`
	Primary   []string `json:"primary"`
	Secondary []string `json:"secondary"`
}

type Aliases struct {
	Names    []string       `json:"names"`
	Unicodes *AliasUnicodes `json:"unicodes,omitempty"`
}

// SVG is the rendered glyph of one family/style variant.
type SVG struct {
	FamilyStyle    FamilyStyle `json:"familyStyle"`
	Width          int         `json:"width"`
	Height         int         `json:"height"`
	HTML           string      `json:"html"`
	PathData       []string    `json:"pathData"`
	IconDefinition any         `json:"iconDefinition,omitempty"`
}

// Icon is a snapshot of one catalog icon as returned per lookup.
type Icon struct {
	ID                    string   `json:"id"`
	Label                 string   `json:"label"`
	Unicode               string   `json:"unicode"`
	Changes               []string `json:"changes"`
	FamilyStylesByLicense Licenses `json:"familyStylesByLicense"`
	Aliases               *Aliases `json:"aliases,omitempty"`
	SVGs                  []SVG    `json:"svgs,omitempty"`
}

// FamilyStyles returns free variants followed by pro variants.
func (i Icon) FamilyStyles() []FamilyStyle {
	out := make([]FamilyStyle, 0, len(i.FamilyStylesByLicense.Free)+len(i.FamilyStylesByLicense.Pro))
	out = append(out, i.FamilyStylesByLicense.Free...)
	return append(out, i.FamilyStylesByLicense.Pro...)
}

// HasAny reports whether any licensed variant matches any of want.
func (i Icon) HasAny(want []FamilyStyle) bool {
	for _, have := range i.FamilyStyles() {
		for _, w := range want {
			if have.Same(w) {
				return true
			}
		}
	}
	return false
}

// HasPro reports whether the icon is offered in fs under the pro license.
func (i Icon) HasPro(fs FamilyStyle) bool {
	for _, have := range i.FamilyStylesByLicense.Pro {
		if have.Same(fs) {
			return true
		}
	}
	return false
}

// AliasNames returns alias names or an empty slice.
func (i Icon) AliasNames() []string {
	if i.Aliases == nil || i.Aliases.Names == nil {
		return []string{}
	}
	return i.Aliases.Names
}

func (i *Icon) canonicalize() {
	for k := range i.FamilyStylesByLicense.Free {
		i.FamilyStylesByLicense.Free[k].canonicalize()
	}
	for k := range i.FamilyStylesByLicense.Pro {
		i.FamilyStylesByLicense.Pro[k].canonicalize()
	}
	for k := range i.SVGs {
		i.SVGs[k].FamilyStyle.canonicalize()
	}
}

type IconCount struct {
	Free int `json:"free"`
	Pro  int `json:"pro"`
}

type Download struct {
	SeparatesWebDesktop bool `json:"separatesWebDesktop"`
}

// Release describes one Font Awesome release.
type Release struct {
	Version   string    `json:"version"`
	Date      string    `json:"date"`
	IsLatest  bool      `json:"isLatest"`
	IconCount IconCount `json:"iconCount"`
	Download  *Download `json:"download,omitempty"`
}

// FieldOptions controls what an icon lookup requests.
type FieldOptions struct {
	IncludeSVGs bool
	// FamilyStyles restricts returned SVGs to these variants.
	FamilyStyles []FamilyStyle
	// ProRestricted forces authentication even without SVGs.
	ProRestricted bool
}

func (o FieldOptions) needsAuth() bool {
	return o.IncludeSVGs || o.ProRestricted
}
