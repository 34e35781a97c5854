package usage

// Method describes one integration approach of a framework.
type Method struct {
	Description string `json:"description"`
	Import      string `json:"import"`
	Register    string `json:"register,omitempty"`
	Usage       string `json:"usage"`
}

// FrameworkGuide is the static setup information for a framework.
type FrameworkGuide struct {
	Name        string `json:"name"`
	IconLibrary Method `json:"iconLibraryMethod"`
	Explicit    Method `json:"explicitMethod"`
}

var guides = map[Framework]FrameworkGuide{
	Angular: {
		Name: "Angular",
		IconLibrary: Method{
			Description: "Icon Library method - Register icons once and use by name (recommended)",
			Import: `import { fas } from '@fortawesome/free-solid-svg-icons';
import { far } from '@fortawesome/free-regular-svg-icons';
import { fab } from '@fortawesome/free-brands-svg-icons';
import { FaIconLibrary } from '@fortawesome/angular-fontawesome';`,
			Register: `constructor(library: FaIconLibrary) {
  library.addIconPacks(fas, far, fab);
}`,
			Usage: `<fa-icon icon="coffee"></fa-icon>`,
		},
		Explicit: Method{
			Description: "Explicit Reference method - Import and reference icons directly",
			Import:      `import { faCoffee } from '@fortawesome/free-solid-svg-icons';`,
			Usage:       `<fa-icon [icon]="faCoffee"></fa-icon>`,
		},
	},
	React: {
		Name: "React",
		IconLibrary: Method{
			Description: "Icon Library method - Build a library and reference by name",
			Import: `import { library } from '@fortawesome/fontawesome-svg-core';
import { fas } from '@fortawesome/free-solid-svg-icons';
import { FontAwesomeIcon } from '@fortawesome/react-fontawesome';`,
			Register: `library.add(fas);`,
			Usage:    `<FontAwesomeIcon icon="coffee" />`,
		},
		Explicit: Method{
			Description: "Explicit Reference method - Import and use icons directly",
			Import: `import { faCoffee } from '@fortawesome/free-solid-svg-icons';
import { FontAwesomeIcon } from '@fortawesome/react-fontawesome';`,
			Usage: `<FontAwesomeIcon icon={faCoffee} />`,
		},
	},
	Vue: {
		Name: "Vue.js",
		IconLibrary: Method{
			Description: "Icon Library method - Register icons globally",
			Import: `import { library } from '@fortawesome/fontawesome-svg-core';
import { fas } from '@fortawesome/free-solid-svg-icons';
import { FontAwesomeIcon } from '@fortawesome/vue-fontawesome';`,
			Register: `library.add(fas);
app.component('font-awesome-icon', FontAwesomeIcon);`,
			Usage: `<font-awesome-icon icon="coffee" />`,
		},
		Explicit: Method{
			Description: "Explicit Reference method - Import and use icons directly",
			Import:      `import { faCoffee } from '@fortawesome/free-solid-svg-icons';`,
			Usage:       `<font-awesome-icon :icon="faCoffee" />`,
		},
	},
	Vanilla: {
		Name: "Vanilla HTML/CSS",
		IconLibrary: Method{
			Description: "CSS Classes method - Use Font Awesome CSS classes directly",
			Import:      `<link rel="stylesheet" href="https://cdnjs.cloudflare.com/ajax/libs/font-awesome/7.0.0/css/all.min.css">`,
			Register:    `<!-- No registration needed -->`,
			Usage:       `<i class="fas fa-coffee"></i>`,
		},
		Explicit: Method{
			Description: "SVG method - Use Font Awesome SVG JavaScript",
			Import:      `<script src="https://kit.fontawesome.com/your-kit-id.js" crossorigin="anonymous"></script>`,
			Usage:       `<i class="fas fa-coffee"></i>`,
		},
	},
}

// Guide returns the setup information for fw, Vanilla for unknown values.
func Guide(fw Framework) FrameworkGuide {
	if g, ok := guides[fw]; ok {
		return g
	}
	return guides[Vanilla]
}
