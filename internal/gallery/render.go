package gallery

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// upperHalfBlock draws the top pixel in the foreground colour and the bottom
// pixel in the background colour.
const upperHalfBlock = "▀"

// RenderSize returns the cell grid an image of w x h pixels occupies when
// rendered cols wide. Each cell covers two pixel rows.
//
//nolint:nonamedreturns // Named returns document the result order.
func RenderSize(w, h, cols int) (width, rows int) {
	if w <= 0 || h <= 0 || cols <= 0 {
		return 0, 0
	}
	width = cols
	if w < cols {
		width = w
	}
	pixelRows := (h*width + w - 1) / w
	if pixelRows < 1 {
		pixelRows = 1
	}
	return width, (pixelRows + 1) / 2
}

// RenderANSI draws img as terminal cells, cols cells wide.
func RenderANSI(img image.Image, cols int) string {
	b := img.Bounds()
	width, rows := RenderSize(b.Dx(), b.Dy(), cols)
	if width == 0 {
		return ""
	}
	scaled := Scale(img, width, rows*2)
	origin := scaled.Bounds().Min

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < width; x++ {
			top := hexColor(scaled.At(origin.X+x, origin.Y+2*y))
			bottom := hexColor(scaled.At(origin.X+x, origin.Y+2*y+1))
			sb.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render(upperHalfBlock))
		}
		if y < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexColor(c color.Color) string {
	rgba := color.RGBAModel.Convert(c).(color.RGBA) //nolint:errcheck,forcetypeassert // RGBAModel always returns color.RGBA.
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
