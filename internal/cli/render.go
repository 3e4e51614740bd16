package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/graphite/pkg/compose"
	"github.com/chazu/graphite/pkg/export/dxf"
	"github.com/chazu/graphite/pkg/export/svg"
	"github.com/chazu/graphite/pkg/geom"
	"github.com/chazu/graphite/pkg/kernel/sdfx"
	"github.com/chazu/graphite/pkg/project"
	"github.com/chazu/graphite/pkg/recipe"
	"github.com/chazu/graphite/pkg/section"
	"github.com/chazu/graphite/pkg/tessellate"
)

func newRenderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "render <recipe.json>",
		Short: "Generate a drawing from a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := recipe.LoadFile(args[0])
			if err != nil {
				return err
			}
			for _, warn := range recipe.Validate(r).Warnings {
				logger.Warn("recipe warning", "node", warn.NodeID, "msg", warn.Message)
			}

			k := sdfx.NewWithCells(cfg.Cells)
			mesh, err := tessellate.Mesh(r, k)
			if err != nil {
				return fmt.Errorf("tessellate %s: %w", r.Name, err)
			}
			logger.Debug("tessellated", "name", r.Name,
				"vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())

			opts := compose.DefaultOptions()
			opts.Logger = logger
			if cfg.Section != "" {
				plane, err := parseSectionSpec(cfg.Section, r)
				if err != nil {
					return err
				}
				opts.Sections = []section.Plane{plane}
			}

			d, err := compose.New(opts).Compose(cmd.Context(), r, mesh)
			if err != nil {
				return err
			}
			reportDiagnostics(d)

			base := r.Name
			if base == "" {
				base = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			base = filepath.Join(cfg.OutDir, base)

			if cfg.Format == "svg" || cfg.Format == "both" {
				if err := writeSVG(base+".svg", d); err != nil {
					return err
				}
				cmd.Printf("wrote %s.svg\n", base)
			}
			if cfg.Format == "dxf" || cfg.Format == "both" {
				if err := dxf.Save(d, base+".dxf"); err != nil {
					return err
				}
				cmd.Printf("wrote %s.dxf\n", base)
			}
			return nil
		},
	}
}

func writeSVG(path string, d *compose.Drawing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := svg.Write(f, d); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// parseSectionSpec reads "axis[:position]" into a full cutting plane
// through the part. Position is a model coordinate along the axis and
// defaults to the bounding box center.
func parseSectionSpec(spec string, r *recipe.Recipe) (section.Plane, error) {
	axisPart, posPart, hasPos := strings.Cut(spec, ":")

	var normal geom.Vec3
	var parent project.ViewKind
	switch strings.ToLower(axisPart) {
	case "x":
		normal = geom.Vec3{X: 1}
		parent = project.Front
	case "y":
		normal = geom.Vec3{Y: 1}
		parent = project.Front
	case "z":
		normal = geom.Vec3{Z: 1}
		parent = project.Top
	default:
		return section.Plane{}, fmt.Errorf("unknown section axis %q (want x, y or z)", axisPart)
	}

	pos := r.Bounds().Center()
	if hasPos {
		v, err := strconv.ParseFloat(posPart, 64)
		if err != nil {
			return section.Plane{}, fmt.Errorf("bad section position %q: %w", posPart, err)
		}
		switch strings.ToLower(axisPart) {
		case "x":
			pos.X = v
		case "y":
			pos.Y = v
		case "z":
			pos.Z = v
		}
	}

	return section.Plane{
		Label:      "A",
		Position:   pos,
		Normal:     normal,
		Type:       section.Full,
		ParentView: parent,
	}, nil
}

func reportDiagnostics(d *compose.Drawing) {
	diag := d.Diag
	if diag.NonManifoldEdges > 0 {
		logger.Warn("mesh has non-manifold edges", "count", diag.NonManifoldEdges)
	}
	if diag.OpenLoops > 0 {
		logger.Warn("section produced open loops", "count", diag.OpenLoops)
	}
	if diag.FallbackSections > 0 {
		logger.Warn("section used bounding box fallback", "count", diag.FallbackSections)
	}
	if diag.ExhaustedDimensions > 0 {
		logger.Warn("dimension placement gave up after max attempts", "count", diag.ExhaustedDimensions)
	}
}
