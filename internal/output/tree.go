package output

import (
	"strings"

	"github.com/eventblocks/cli/internal/assets"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	resourceColumn = 34
)

// RenderDependencyTree renders the dependency tree of each root module.
// A module already shown earlier in the tree is marked "(see above)"
// instead of being expanded again; unknown names are marked "(unknown)".
func RenderDependencyTree(reg *assets.Registry, roots ...string) string {
	var sb strings.Builder
	seen := make(map[string]bool)
	for _, root := range roots {
		renderModule(&sb, reg, root, "", "", seen)
	}
	return sb.String()
}

func renderModule(sb *strings.Builder, reg *assets.Registry, name, prefix, connector string, seen map[string]bool) {
	styles := GetStyles()

	line := prefix + connector + name
	m, ok := reg.Module(name)
	switch {
	case !ok:
		line = prefix + connector + styles.Error.Render(name) + "  " + styles.Muted.Render("(unknown)")
	case seen[name]:
		line += "  " + styles.Muted.Render("(see above)")
	default:
		padding := resourceColumn - len([]rune(prefix+connector+name))
		if padding < 2 {
			padding = 2
		}
		line = prefix + connector + styles.Bold.Render(name) + strings.Repeat(" ", padding) + styles.Muted.Render(m.Resource)
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	if !ok || seen[name] {
		return
	}
	seen[name] = true

	childPrefix := prefix
	switch connector {
	case treeEdge:
		childPrefix += treeVert
	case treeLast:
		childPrefix += treeSpace
	}
	for i, dep := range m.Dependencies {
		c := treeEdge
		if i == len(m.Dependencies)-1 {
			c = treeLast
		}
		renderModule(sb, reg, dep, childPrefix, c, seen)
	}
}
