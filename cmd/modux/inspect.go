package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/modux"
	"github.com/aretw0/modux/internal/logging"
	"github.com/aretw0/modux/internal/naming"
	"github.com/aretw0/modux/internal/presentation/graph"
	"github.com/aretw0/modux/internal/presentation/tui"
	"github.com/aretw0/modux/pkg/domain"
	"github.com/aretw0/modux/pkg/manifest"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <manifest>",
		Short: "List the units, prefixes and generated action types of a manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plain, _ := cmd.Flags().GetBool("plain")
			verbose, _ := cmd.Flags().GetBool("verbose")
			logger := logging.NewWriter(cmd.ErrOrStderr(), logging.Level(verbose))

			f, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			units, err := f.Build(manifest.WithLogger(logger))
			if err != nil {
				return err
			}

			if mermaid, _ := cmd.Flags().GetBool("mermaid"); mermaid {
				_, err = fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(units, nil))
				return err
			}

			md := describeUnits(units)
			if !plain {
				if md, err = tui.NewRenderer(0)(md); err != nil {
					return fmt.Errorf("failed to render: %w", err)
				}
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), md)
			return err
		},
	}
	cmd.Flags().Bool("plain", false, "Print raw markdown instead of rendering it")
	cmd.Flags().Bool("mermaid", false, "Print a Mermaid flowchart of actions and reducers")
	return cmd
}

// describeUnits renders one markdown table per unit.
func describeUnits(units []*modux.Unit) string {
	var b strings.Builder
	for i, u := range units {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "## %s\n\n", u.Name())
		fmt.Fprintf(&b, "Prefix: `%s`\n\n", u.Prefix())
		b.WriteString("| Action | Kind | Types |\n|---|---|---|\n")
		for _, spec := range u.Specs() {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", spec.Name(), spec.Kind(), strings.Join(typesOf(u, spec), ", "))
		}
	}
	return b.String()
}

func typesOf(u *modux.Unit, spec modux.ActionSpec) []string {
	base, _ := u.ActionType(spec.Name())
	if spec.Kind() == domain.KindSimple {
		return []string{"`" + base + "`"}
	}
	started, success, failed := naming.PhaseTypes(base)
	return []string{"`" + started + "`", "`" + success + "`", "`" + failed + "`"}
}
