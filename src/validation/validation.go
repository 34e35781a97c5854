// Package validation checks and normalizes raw tool arguments. Everything here
// is a pure function of its input.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"

	"github.com/igorls/fontawesome-mcp/src/catalog"
)

const (
	DefaultVersion = "7.x"

	DefaultLimit = 15
	MinLimit     = 1
	MaxLimit     = 50

	DefaultIconsPerFamily = 4
	MaxIconsPerFamily     = 10
)

// ErrInvalidArgument matches every *InvalidArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// InvalidArgumentError describes a rejected tool argument.
type InvalidArgumentError struct {
	Field string
	Msg   string
}

func (e *InvalidArgumentError) Error() string {
	return e.Msg
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

func invalid(field, format string, args ...any) error {
	return &InvalidArgumentError{Field: field, Msg: fmt.Sprintf(format, args...)}
}

// Args is the decoded argument object of one tool call.
type Args map[string]any

// Clamp bounds n to [lo, hi].
func Clamp(n, lo, hi int) int {
	return max(lo, min(n, hi))
}

// NormalizeLimit clamps a result limit to [1, 50], defaulting to 15 when raw
// is absent.
func NormalizeLimit(raw any) (int, error) {
	return boundedInt("limit", raw, DefaultLimit, MinLimit, MaxLimit)
}

// NormalizeIconsPerFamily clamps the showcase sample size to [1, 10],
// defaulting to 4.
func NormalizeIconsPerFamily(raw any) (int, error) {
	return boundedInt("icons_per_family", raw, DefaultIconsPerFamily, 1, MaxIconsPerFamily)
}

func boundedInt(field string, raw any, def, lo, hi int) (int, error) {
	if raw == nil {
		return def, nil
	}
	n, err := cast.ToIntE(raw)
	if err != nil {
		return 0, invalid(field, "%s must be a number, got %v", field, raw)
	}
	return Clamp(n, lo, hi), nil
}

// RequireString returns a non-blank string argument.
func RequireString(args Args, key string) (string, error) {
	v, err := cast.ToStringE(args[key])
	if err != nil || strings.TrimSpace(v) == "" {
		return "", invalid(key, "%s parameter is required", key)
	}
	return v, nil
}

// Version returns the requested release version or DefaultVersion.
func Version(args Args) string {
	if v := strings.TrimSpace(cast.ToString(args["version"])); v != "" {
		return v
	}
	return DefaultVersion
}

// Bool reads a boolean flag; anything unparsable is false.
func Bool(args Args, key string) bool {
	return cast.ToBool(args[key])
}

// RequiresAuth reports whether the call asks for pro-gated data.
func RequiresAuth(args Args) bool {
	return Bool(args, "include_svgs") || Bool(args, "pro_only")
}

// ValidateFamilyStyles checks every entry against the known families and
// styles and returns the list in canonical lowercase form.
func ValidateFamilyStyles(list []catalog.FamilyStyle) ([]catalog.FamilyStyle, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make([]catalog.FamilyStyle, 0, len(list))
	for _, fs := range list {
		family := strings.ToLower(strings.TrimSpace(fs.Family))
		style := strings.ToLower(strings.TrimSpace(fs.Style))
		if !catalog.IsFamily(family) {
			return nil, invalid("family_styles", "Invalid family %q. Valid families: %s", fs.Family, strings.Join(catalog.Families, ", "))
		}
		if !catalog.IsStyle(style) {
			return nil, invalid("family_styles", "Invalid style %q. Valid styles: %s", fs.Style, strings.Join(catalog.Styles, ", "))
		}
		out = append(out, catalog.FamilyStyle{Family: family, Style: style})
	}
	return out, nil
}

// ParseFamilyStyles decodes a family_styles argument (a list of
// {family, style} objects) and validates it.
func ParseFamilyStyles(raw any) ([]catalog.FamilyStyle, error) {
	if raw == nil {
		return nil, nil
	}
	items, err := cast.ToSliceE(raw)
	if err != nil {
		return nil, invalid("family_styles", "family_styles must be a list of {family, style} objects")
	}
	list := make([]catalog.FamilyStyle, 0, len(items))
	for i, item := range items {
		m, err := cast.ToStringMapE(item)
		if err != nil {
			return nil, invalid("family_styles", "family_styles[%d] must be an object with family and style", i)
		}
		family, _ := m["family"].(string)
		style, _ := m["style"].(string)
		if family == "" || style == "" {
			return nil, invalid("family_styles", "family_styles[%d] requires both family and style", i)
		}
		list = append(list, catalog.FamilyStyle{Family: family, Style: style})
	}
	return ValidateFamilyStyles(list)
}

// Common holds the arguments shared by the icon tools.
type Common struct {
	Version      string
	IncludeSVGs  bool
	ProOnly      bool
	FamilyStyles []catalog.FamilyStyle
}

// RequiresAuth mirrors the package-level RequiresAuth.
func (c Common) RequiresAuth() bool {
	return c.IncludeSVGs || c.ProOnly
}

// ParseCommon extracts and validates the shared icon-tool arguments.
func ParseCommon(args Args) (Common, error) {
	fss, err := ParseFamilyStyles(args["family_styles"])
	if err != nil {
		return Common{}, err
	}
	return Common{
		Version:      Version(args),
		IncludeSVGs:  Bool(args, "include_svgs"),
		ProOnly:      Bool(args, "pro_only"),
		FamilyStyles: fss,
	}, nil
}
