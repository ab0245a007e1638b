package graph

import (
	"fmt"
	"strings"

	"github.com/b5strbal/probability-models/pkg/layout"
)

// Overlay marks nodes to emphasise, e.g. the path to one outcome.
type Overlay struct {
	Highlighted []string
}

// GenerateMermaid produces a Mermaid flowchart from a tree layout.
// It applies semantic styling:
// - Root: ((Circle))
// - Happening: [Rectangle], edge labelled with its probability
// - Leaf total: ([Stadium]), joined by a dotted arrow
// It also applies overlay styles if provided.
func GenerateMermaid(tree *layout.TreeLayout, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	sb.WriteString(fmt.Sprintf("    %s((\" \"))\n", nodeID(layout.RootID)))

	for _, node := range tree.Nodes {
		safeID := nodeID(node.ID)
		sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", safeID, escapeLabel(node.Name)))

		arrow := "-->"
		if node.ShowLabel {
			arrow = fmt.Sprintf("-- \"%s\" -->", node.Probability.String())
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", nodeID(node.ParentID), arrow, safeID))

		if node.Leaf {
			total := safeID + "_total"
			sb.WriteString(fmt.Sprintf("    %s([\"%s\"])\n", total, node.Cumulative.String()))
			sb.WriteString(fmt.Sprintf("    %s -.-> %s\n", safeID, total))
		}
	}

	if overlay != nil && len(overlay.Highlighted) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef highlighted fill:#ffeb3b,stroke:#fbc02d,stroke-width:2px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Highlighted {
			safeID := nodeID(id)
			if !seen[safeID] && id != "" {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s highlighted;\n", safeID))
			}
		}
	}

	return sb.String()
}

// PathTo returns the IDs from the root down to the node with the given ID,
// for use as an Overlay.
func PathTo(tree *layout.TreeLayout, id string) []string {
	var path []string
	for id != "" && id != layout.RootID {
		node, ok := tree.Node(id)
		if !ok {
			return nil
		}
		path = append([]string{id}, path...)
		id = node.ParentID
	}
	return append([]string{layout.RootID}, path...)
}

// nodeID prefixes path IDs so they never start with a digit.
func nodeID(id string) string {
	if id == layout.RootID {
		return id
	}
	return "n" + sanitizeMermaidID(id)
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}

// escapeLabel replaces double quotes, which would end a Mermaid label.
func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
