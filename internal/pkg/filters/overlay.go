package filters

import (
	"image"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/imgfilter/internal/entity"
	"github.com/pkg/errors"
)

type overlay struct {
	loader Loader
}

// apply composites a transparent foreground read from args[0] onto img at
// the optional "x,y" position in args[1]. The result has no alpha.
func (o *overlay) apply(img image.Image, args []string) (image.Image, error) {
	path := args[0]
	if !o.loader.IsFile(path) {
		return nil, errors.Wrapf(entity.ErrFileNotFound, "overlay path %q", path)
	}
	fg, err := o.loader.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "no proper overlay image was given, provide a png image file with transparency")
	}
	if !hasTransparency(fg) {
		return nil, errors.Wrapf(entity.ErrImageWithoutTransparency, "overlay %q", path)
	}

	bg := img.Bounds()
	pos := image.Point{}
	if raw := arg(args, 1, ""); raw != "" {
		if pos, err = parseCoordinates(raw); err != nil {
			return nil, err
		}
		pos.X = snapToEdge(pos.X, bg.Dx(), fg.Bounds().Dx())
		pos.Y = snapToEdge(pos.Y, bg.Dy(), fg.Bounds().Dy())
	}

	out := imaging.Overlay(img, fg, pos, 1.0)
	discardAlpha(out)
	return out, nil
}

func parseCoordinates(raw string) (image.Point, error) {
	if !strings.Contains(raw, ",") {
		return image.Point{}, errors.Wrapf(entity.ErrInvalidOverlayCoordinates, "%q", raw)
	}
	parts := strings.Split(raw, ",")
	x, errX := strconv.Atoi(strings.TrimSpace(parts[0]))
	y, errY := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errX != nil || errY != nil {
		return image.Point{}, errors.Wrapf(entity.ErrInvalidOverlayCoordinates, "%q", raw)
	}
	return image.Pt(x, y), nil
}

// snapToEdge pulls a position that would leave more than half of the
// foreground outside the background back to the far edge.
func snapToEdge(coord, bgSize, fgSize int) int {
	if float64(coord) >= float64(bgSize)-float64(fgSize)*0.5 {
		return bgSize - fgSize
	}
	return coord
}

// hasTransparency reports whether img carries an alpha channel or a palette
// with a transparent entry. Pixel values do not matter: a fully opaque RGBA
// png still qualifies, a plain RGB png (decoded as *image.RGBA) does not.
func hasTransparency(img image.Image) bool {
	switch m := img.(type) {
	case *image.NRGBA, *image.NRGBA64, *image.RGBA64, *image.NYCbCrA, *image.Alpha, *image.Alpha16:
		return true
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return true
			}
		}
		return false
	case *image.RGBA:
		// tiff with associated alpha decodes here too
		return !m.Opaque()
	}
	return false
}

func discardAlpha(img *image.NRGBA) {
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xff
	}
}
