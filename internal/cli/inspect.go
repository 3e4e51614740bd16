package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/graphite/pkg/recipe"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <recipe.json>",
		Short: "Validate a recipe and print its structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			// Load validates; surface problems as output rather than
			// stopping at the first one.
			r, err := recipe.Load(f)
			if err != nil {
				return err
			}

			cmd.Printf("recipe: %s\n", r.Name)
			cmd.Printf("primitives: %d\n", len(r.Primitives))
			for i := range r.Primitives {
				p := r.Primitives[i]
				cmd.Printf("  %-12s %s\n", p.ID, p.Kind)
			}
			cmd.Printf("operations: %d\n", len(r.Operations))
			for i := range r.Operations {
				op := r.Operations[i]
				cmd.Printf("  %-12s %s(%s, %s)\n", op.ID, op.Op, op.Target, op.Tool)
			}

			b := r.Bounds()
			size := b.Size()
			cmd.Printf("bounds: %.1f x %.1f x %.1f mm\n", size.X, size.Y, size.Z)

			if feats := r.Features(); len(feats) > 0 {
				cmd.Printf("features:\n")
				for _, p := range feats {
					axis, _ := p.FeatureAxis()
					cmd.Printf("  %-12s dia %.1f axis %s\n", p.ID, p.Diameter(), axis)
				}
			}

			res := recipe.Validate(r)
			for _, w := range res.Warnings {
				cmd.Printf("warning: %s\n", w.Error())
			}
			return nil
		},
	}
}
