package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/churnlab/churnlab/internal/config"
	"github.com/churnlab/churnlab/internal/gallery"
	"github.com/churnlab/churnlab/internal/tui"
)

// ErrCategoryNotFound is returned for a category that is not configured.
var ErrCategoryNotFound = errors.New("category not found")

// defaultRenderCols is the render width when stdout is not a terminal.
const defaultRenderCols = 80

func newGalleryCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "gallery", Short: "Browse the plots written by the notebook"}
	cmd.AddCommand(NewGalleryListCmd(), NewGalleryShowCmd())
	return cmd
}

// loadCatalog lists the configured visuals folders.
func loadCatalog(cmd *cobra.Command, cfg *config.Config) ([]gallery.Category, error) {
	dirs := make([]string, len(cfg.Workspace.Visuals))
	for i, v := range cfg.Workspace.Visuals {
		dirs[i] = cfg.Path(v)
	}
	categories, err := gallery.Catalog(cmd.Context(), dirs)
	if err != nil {
		return nil, fmt.Errorf("listing visuals: %w", err)
	}
	return categories, nil
}

func findCategory(categories []gallery.Category, name string) (gallery.Category, error) {
	c, ok := gallery.Find(categories, name)
	if !ok {
		return gallery.Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	return c, nil
}

// NewGalleryListCmd creates the command that lists categories, or the images
// of one category.
func NewGalleryListCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "list [category]",
		Short: "List plot categories or the images in one category",
		Example: `  # Count images per category
  churnlab gallery list

  # List the SHAP plots
  churnlab gallery list shap`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateOutput(output); err != nil {
				return err
			}
			categories, err := loadCatalog(cmd, config.GetGlobalConfig())
			if err != nil {
				return err
			}

			if len(args) == 1 {
				c, findErr := findCategory(categories, args[0])
				if findErr != nil {
					return findErr
				}
				categories = []gallery.Category{c}
			}

			if output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), categories)
			}
			if len(args) == 1 {
				return renderImageList(cmd, categories[0])
			}
			return renderCategoryTable(cmd, categories)
		},
	}

	cmd.Flags().StringVar(&output, "output", outputTable, "Output format: table or json")
	return cmd
}

func renderCategoryTable(cmd *cobra.Command, categories []gallery.Category) error {
	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "Category\tImages\tFolder")
	fmt.Fprintln(w, "--------\t------\t------")
	for _, c := range categories {
		fmt.Fprintf(w, "%s\t%d\t%s\n", c.Name, len(c.Images), c.Dir)
	}
	return w.Flush()
}

func renderImageList(cmd *cobra.Command, c gallery.Category) error {
	if len(c.Images) == 0 {
		cmd.Printf("No images in %s.\n", c.Dir)
		return nil
	}
	for _, img := range c.Images {
		cmd.Println(img)
	}
	return nil
}

// NewGalleryShowCmd creates the command that renders one image in the
// terminal, scaled to the configured thumbnail bound.
func NewGalleryShowCmd() *cobra.Command {
	var (
		cols int
		out  string
	)

	cmd := &cobra.Command{
		Use:   "show <category> <image>",
		Short: "Render a plot in the terminal",
		Example: `  # Render a plot at terminal width
  churnlab gallery show shap summary.png

  # Save the scaled thumbnail instead
  churnlab gallery show shap summary.png --out summary_thumb.png`,
		Args: cobra.ExactArgs(2), //nolint:mnd // category and image.
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetGlobalConfig()
			categories, err := loadCatalog(cmd, cfg)
			if err != nil {
				return err
			}
			c, err := findCategory(categories, args[0])
			if err != nil {
				return err
			}

			thumb, err := gallery.Thumbnail(c.Path(args[1]), cfg.Thumbnail.MaxWidth, cfg.Thumbnail.MaxHeight)
			if err != nil {
				return err
			}
			logger.Debug().
				Ctx(cmd.Context()).
				Str("image", args[1]).
				Str("format", thumb.Format).
				Int("width", thumb.Width).
				Int("height", thumb.Height).
				Msg("thumbnail ready")

			if out != "" {
				return writeThumbnail(cmd, thumb, out)
			}

			if cols <= 0 {
				cols = tui.TerminalWidth(defaultRenderCols)
			}
			cmd.Printf("%s (%dx%d, source %dx%d)\n",
				args[1], thumb.Width, thumb.Height, thumb.Source.X, thumb.Source.Y)
			cmd.Println(gallery.RenderANSI(thumb.Image, cols))
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 0, "render width in terminal cells (default: terminal width)")
	cmd.Flags().StringVar(&out, "out", "", "write the scaled image as PNG to this file instead of rendering it")
	return cmd
}

func writeThumbnail(cmd *cobra.Command, thumb *gallery.Thumb, path string) error {
	data, err := thumb.PNG()
	if err != nil {
		return err
	}
	//nolint:gosec // thumbnails are ordinary user files.
	if writeErr := os.WriteFile(path, data, 0o644); writeErr != nil {
		return fmt.Errorf("writing thumbnail: %w", writeErr)
	}
	cmd.Printf("Thumbnail written to %s (%dx%d)\n", path, thumb.Width, thumb.Height)
	return nil
}
