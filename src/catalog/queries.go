package catalog

import "strings"

const iconFields = `
      id
      label
      unicode
      changes
      familyStylesByLicense {
        free { family style prefix }
        pro { family style prefix }
      }
      aliases {
        names
        unicodes { composite primary secondary }
      }`

const svgFields = `
        familyStyle { family style prefix }
        width
        height
        html
        pathData
        iconDefinition`

const searchQuery = `
query SearchIcons($version: String!, $query: String!, $first: Int!) {
  search(version: $version, query: $query, first: $first) {` + iconFields + `
  }
}`

const releasesQuery = `
query GetReleases {
  releases {
    version
    date
    isLatest
    iconCount { free pro }
  }
}`

const releaseQuery = `
query GetRelease($version: String!) {
  release(version: $version) {
    version
    date
    isLatest
    iconCount { free pro }
    download { separatesWebDesktop }
  }
}`

const familyStylesQuery = `
query GetFamilyStyles($version: String!) {
  release(version: $version) {
    version
    familyStyles { family style prefix }
  }
}`

// iconQuery builds the icon-by-name document. filterArgs comes from
// svgFilterArgs and is only used when SVGs are requested.
func iconQuery(includeSVGs bool, filterArgs string) string {
	var b strings.Builder
	b.WriteString(`
query GetIcon($version: String!, $name: String!) {
  release(version: $version) {
    version
    icon(name: $name) {`)
	b.WriteString(iconFields)
	if includeSVGs {
		b.WriteString("\n      svgs" + filterArgs + " {" + svgFields + "\n      }")
	}
	b.WriteString(`
    }
  }
}`)
	return b.String()
}

func iconSVGsQuery(filterArgs string) string {
	return `
query GetIconSvgs($version: String!, $name: String!) {
  release(version: $version) {
    icon(name: $name) {
      svgs` + filterArgs + ` {` + svgFields + `
      }
    }
  }
}`
}
