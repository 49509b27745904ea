package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/modux"
	"github.com/aretw0/modux/internal/naming"
	"github.com/aretw0/modux/pkg/domain"
)

// Overlay contains dispatch history to highlight on the graph.
type Overlay struct {
	DispatchedTypes []string
	LastType        string
}

// GenerateMermaid produces a Mermaid flowchart of the units' actions and routing.
// It applies semantic styling:
// - Unit: ((Circle))
// - Business action: [[Subroutine]]
// - Action type: [Rectangle]
// - Reducer: [/Parallelogram/]
// Async phases use dotted arrows. Types that no reducer handles have no outgoing edge.
func GenerateMermaid(units []*modux.Unit, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, u := range units {
		unitID := sanitizeMermaidID(u.Name())
		fmt.Fprintf(&sb, "    subgraph %s_unit[\"%s\"]\n", unitID, u.Name())
		fmt.Fprintf(&sb, "    %s((\"%s\"))\n", unitID, u.Name())

		routed := make(map[string]bool)
		for _, spec := range u.Specs() {
			base, _ := u.ActionType(spec.Name())
			if spec.Kind() == domain.KindSimple {
				fmt.Fprintf(&sb, "    %s --> %s[\"%s\"]\n", unitID, sanitizeMermaidID(base), base)
				writeRoute(&sb, u, base, routed)
				continue
			}

			actionID := sanitizeMermaidID(u.Name() + "." + spec.Name())
			fmt.Fprintf(&sb, "    %s --> %s[[\"%s\"]]\n", unitID, actionID, spec.Name())
			arrow := "-->"
			if spec.Kind() == domain.KindAsync {
				arrow = "-.->"
			}
			started, success, failed := naming.PhaseTypes(base)
			for _, t := range []string{started, success, failed} {
				fmt.Fprintf(&sb, "    %s %s %s[\"%s\"]\n", actionID, arrow, sanitizeMermaidID(t), t)
				writeRoute(&sb, u, t, routed)
			}
		}
		sb.WriteString("    end\n")
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visitedSet := make(map[string]bool)
		for _, t := range overlay.DispatchedTypes {
			safeID := sanitizeMermaidID(t)
			if !visitedSet[safeID] && safeID != "" {
				visitedSet[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}

		if overlay.LastType != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.LastType))
		}
	}

	return sb.String()
}

// writeRoute draws the edge from an action type to its reducer, declaring each reducer once.
func writeRoute(sb *strings.Builder, u *modux.Unit, actionType string, declared map[string]bool) {
	key, ok := u.Route(actionType)
	if !ok {
		return
	}
	reducerID := sanitizeMermaidID(u.Name() + ".reducer." + key)
	if declared[key] {
		fmt.Fprintf(sb, "    %s --> %s\n", sanitizeMermaidID(actionType), reducerID)
		return
	}
	declared[key] = true
	fmt.Fprintf(sb, "    %s --> %s[/\"%s\"/]\n", sanitizeMermaidID(actionType), reducerID, key)
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
