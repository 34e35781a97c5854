// Package usage renders framework-specific snippets showing how to use an icon.
package usage

import (
	"fmt"
	"strings"

	"github.com/igorls/fontawesome-mcp/src/catalog"
)

// Framework is a supported front-end integration.
type Framework string

const (
	Angular Framework = "angular"
	React   Framework = "react"
	Vue     Framework = "vue"
	Vanilla Framework = "vanilla"
)

// Frameworks lists every supported framework.
var Frameworks = []Framework{Angular, React, Vue, Vanilla}

// ParseFramework maps a preference value to a Framework. Unknown values fall
// back to Vanilla.
func ParseFramework(s string) Framework {
	f := Framework(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Frameworks {
		if f == known {
			return f
		}
	}
	return Vanilla
}

// Block is one way of using an icon; unused fields stay empty.
type Block struct {
	Description string `json:"description"`
	Import      string `json:"import,omitempty"`
	Register    string `json:"register,omitempty"`
	Template    string `json:"template,omitempty"`
	Component   string `json:"component,omitempty"`
	HTML        string `json:"html,omitempty"`
}

// IconRef names the icon and the variant the snippets are written for.
type IconRef struct {
	Name      string `json:"name"`
	CamelCase string `json:"camelCase"`
	Prefix    string `json:"prefix"`
	Family    string `json:"family"`
	Style     string `json:"style"`
}

// Snippet is the usage annotation attached to an icon.
type Snippet struct {
	Framework         string                `json:"framework"`
	Icon              IconRef               `json:"icon"`
	AvailableFamilies []catalog.FamilyStyle `json:"availableFamilies"`
	Usage             map[string]Block      `json:"usage"`
}

// CamelCase turns an icon id such as "arrow-right" into "faArrowRight".
func CamelCase(id string) string {
	var b strings.Builder
	b.WriteString("fa")
	for _, seg := range strings.Split(id, "-") {
		if seg == "" {
			continue
		}
		b.WriteString(strings.ToUpper(seg[:1]))
		b.WriteString(seg[1:])
	}
	return b.String()
}

// Primary picks the variant snippets are written for: solid, then regular,
// then whatever comes first.
func Primary(all []catalog.FamilyStyle) (catalog.FamilyStyle, bool) {
	for _, want := range []string{"solid", "regular"} {
		for _, fs := range all {
			if fs.Style == want {
				return fs, true
			}
		}
	}
	if len(all) == 0 {
		return catalog.FamilyStyle{}, false
	}
	return all[0], true
}

// Package returns the npm package an icon variant is imported from.
func Package(fs catalog.FamilyStyle) string {
	switch fs.Family {
	case "brands":
		return "@fortawesome/free-brands-svg-icons"
	case "classic", "":
		if fs.Style == "solid" || fs.Style == "regular" {
			return "@fortawesome/free-" + fs.Style + "-svg-icons"
		}
		return "@fortawesome/pro-" + fs.Style + "-svg-icons"
	}
	return "@fortawesome/" + fs.Family + "-" + fs.Style + "-svg-icons"
}

// Present builds the snippet set for icon. It returns nil when the icon has no
// family/style at all.
func Present(icon catalog.Icon, fw Framework) *Snippet {
	all := icon.FamilyStyles()
	primary, ok := Primary(all)
	if !ok {
		return nil
	}

	fw = ParseFramework(string(fw))
	name := icon.ID
	camel := CamelCase(name)
	pkg := Package(primary)
	guide := Guide(fw)

	s := &Snippet{
		Framework: guide.Name,
		Icon: IconRef{
			Name:      name,
			CamelCase: camel,
			Prefix:    primary.Prefix,
			Family:    primary.Family,
			Style:     primary.Style,
		},
		AvailableFamilies: all,
	}

	switch fw {
	case Angular:
		s.Usage = map[string]Block{
			"iconLibrary": {
				Description: guide.IconLibrary.Description,
				Import:      fmt.Sprintf("import { %s } from '%s';", camel, pkg),
				Register: fmt.Sprintf(`// In your component or module
constructor(library: FaIconLibrary) {
  library.addIcons(%s);
}`, camel),
				Template: fmt.Sprintf(`<fa-icon icon="%s"></fa-icon>
<!-- Or with explicit family/style -->
<fa-icon [icon]="['%s', '%s']"></fa-icon>`, name, primary.Prefix, name),
			},
			"explicitReference": {
				Description: guide.Explicit.Description,
				Import:      fmt.Sprintf("import { %s } from '%s';", camel, pkg),
				Component: fmt.Sprintf(`export class MyComponent {
  %s = %s;
}`, camel, camel),
				Template: fmt.Sprintf(`<fa-icon [icon]="%s"></fa-icon>`, camel),
			},
		}
	case React:
		s.Usage = map[string]Block{
			"iconLibrary": {
				Description: guide.IconLibrary.Description,
				Import:      guide.IconLibrary.Import,
				Register: fmt.Sprintf(`import { %s } from '%s';
library.add(%s);`, camel, pkg, camel),
				Component: fmt.Sprintf(`<FontAwesomeIcon icon="%s" />
{/* Or with explicit family/style */}
<FontAwesomeIcon icon={["%s", "%s"]} />`, name, primary.Prefix, name),
			},
			"explicitReference": {
				Description: guide.Explicit.Description,
				Import: fmt.Sprintf(`import { %s } from '%s';
import { FontAwesomeIcon } from '@fortawesome/react-fontawesome';`, camel, pkg),
				Component: fmt.Sprintf(`function MyComponent() {
  return <FontAwesomeIcon icon={%s} />;
}`, camel),
			},
		}
	case Vue:
		s.Usage = map[string]Block{
			"iconLibrary": {
				Description: guide.IconLibrary.Description,
				Import:      guide.IconLibrary.Import,
				Register: fmt.Sprintf(`import { %s } from '%s';
library.add(%s);`, camel, pkg, camel),
				Template: fmt.Sprintf(`<font-awesome-icon icon="%s" />
<!-- Or with explicit family/style -->
<font-awesome-icon :icon="['%s', '%s']" />`, name, primary.Prefix, name),
			},
			"explicitReference": {
				Description: guide.Explicit.Description,
				Import:      fmt.Sprintf("import { %s } from '%s';", camel, pkg),
				Component: fmt.Sprintf(`export default {
  data() {
    return { %s };
  }
};`, camel),
				Template: fmt.Sprintf(`<font-awesome-icon :icon="%s" />`, camel),
			},
		}
	default:
		html := fmt.Sprintf(`<i class="%s fa-%s"></i>`, primary.Prefix, name)
		s.Usage = map[string]Block{
			"cssClasses": {
				Description: guide.IconLibrary.Description,
				Import:      guide.IconLibrary.Import,
				HTML:        html,
			},
			"svgMethod": {
				Description: guide.Explicit.Description,
				Import:      guide.Explicit.Import,
				HTML:        html + "\n<!-- Font Awesome Kit will convert to SVG -->",
			},
		}
	}
	return s
}
