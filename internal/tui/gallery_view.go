package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/churnlab/churnlab/internal/gallery"
	listview "github.com/churnlab/churnlab/internal/tui/list"
)

// imageMargin is the horizontal space kept around a rendered image.
const imageMargin = 2

type galleryView struct {
	categories []gallery.Category
	active     int
	list       *listview.Model[string]

	image     *gallery.Thumb
	imageName string
}

func newGalleryView(height int) *galleryView {
	return &galleryView{
		list: listview.New([]string{}, height, renderItem),
	}
}

func (g *galleryView) setHeight(height int) {
	g.list.SetHeight(height - 2) //nolint:mnd // tab bar and its margin.
}

// setCatalog replaces the categories, keeping the active tab when it still exists.
func (g *galleryView) setCatalog(categories []gallery.Category) {
	g.categories = categories
	if g.active >= len(categories) {
		g.active = 0
	}
	g.syncList()
}

func (g *galleryView) syncList() {
	cat, ok := g.current()
	if !ok {
		g.list.SetItems([]string{})
		return
	}
	g.list.SetItems(cat.Images)
}

func (g *galleryView) current() (gallery.Category, bool) {
	if len(g.categories) == 0 {
		return gallery.Category{}, false
	}
	return g.categories[g.active], true
}

func (g *galleryView) nextCategory() {
	if len(g.categories) == 0 {
		return
	}
	g.active = (g.active + 1) % len(g.categories)
	g.list.SetCursor(0)
	g.syncList()
}

func (g *galleryView) tabs() string {
	tabs := make([]string, len(g.categories))
	for i, c := range g.categories {
		label := fmt.Sprintf("%s (%d)", c.Name, len(c.Images))
		if i == g.active {
			tabs[i] = ActiveTabStyle.Render(label)
		} else {
			tabs[i] = TabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (g *galleryView) view() string {
	cat, ok := g.current()
	if !ok {
		return SubtleStyle.Render("No visual categories configured.")
	}
	body := g.list.View()
	if g.list.Len() == 0 {
		body = SubtleStyle.Render("No images in " + cat.Dir + ". Run the notebook, then press r.")
	}
	return g.tabs() + "\n\n" + body
}

func (g *galleryView) imageView(width int) string {
	if g.image == nil {
		return ""
	}
	cols := min(max(width-imageMargin, 1), g.image.Width)
	var sb strings.Builder
	sb.WriteString(gallery.RenderANSI(g.image.Image, cols))
	sb.WriteString("\n")
	sb.WriteString(LabelStyle.Render(g.imageName))
	sb.WriteString(SubtleStyle.Render(fmt.Sprintf("  %dx%d (original %dx%d, %s)",
		g.image.Width, g.image.Height, g.image.Source.X, g.image.Source.Y, g.image.Format)))
	return sb.String()
}
