package filters

import (
	"image"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/imgfilter/internal/entity"
	"github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// rotate turns the image counter-clockwise by angle degrees.
// Arguments: angle (default 45), expand (true|1|yes), center ("x,y").
func rotate(img image.Image, args []string) (image.Image, error) {
	rawAngle := arg(args, 0, "45")
	angle, err := parseFloat(rawAngle)
	if err != nil {
		return nil, errors.Wrapf(entity.ErrInvalidParameter, "invalid angle provided for filter rotate: %q", rawAngle)
	}
	expand := isTruthy(arg(args, 1, "false"))

	var center *[2]float64
	if rawCenter := arg(args, 2, ""); rawCenter != "" && strings.Contains(rawCenter, ",") {
		parts := strings.Split(rawCenter, ",")
		var c [2]float64
		for i := range c {
			if c[i], err = parseFloat(parts[i]); err != nil {
				return nil, errors.Wrapf(entity.ErrInvalidParameter,
					"invalid center coordinate values given for filter rotate: %q, please provide two numbers", rawCenter)
			}
		}
		center = &c
	}

	src := imaging.Clone(img)
	if center == nil && expand {
		return imaging.Rotate(src, angle, color.Transparent), nil
	}
	return rotateAbout(src, angle, center, expand), nil
}

// rotateAbout rotates src around center (the image center when nil) with an
// affine transform. Without expand the canvas keeps the source size.
func rotateAbout(src *image.NRGBA, angle float64, center *[2]float64, expand bool) *image.NRGBA {
	w, h := float64(src.Bounds().Dx()), float64(src.Bounds().Dy())
	cx, cy := w/2, h/2
	if center != nil {
		cx, cy = center[0], center[1]
	}

	sin, cos := math.Sincos(angle * math.Pi / 180)
	forward := func(x, y float64) (float64, float64) {
		dx, dy := x-cx, y-cy
		return cx + dx*cos + dy*sin, cy - dx*sin + dy*cos
	}

	outW, outH := src.Bounds().Dx(), src.Bounds().Dy()
	var offX, offY float64
	if expand {
		minX, minY := math.Inf(1), math.Inf(1)
		maxX, maxY := math.Inf(-1), math.Inf(-1)
		for _, p := range [][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
			x, y := forward(p[0], p[1])
			minX, maxX = math.Min(minX, x), math.Max(maxX, x)
			minY, maxY = math.Min(minY, y), math.Max(maxY, y)
		}
		// float noise must not add a pixel row for right angles
		outW = int(math.Ceil(maxX - minX - 1e-9))
		outH = int(math.Ceil(maxY - minY - 1e-9))
		offX, offY = -minX, -minY
	}

	s2d := f64.Aff3{
		cos, sin, cx - cx*cos - cy*sin + offX,
		-sin, cos, cy + cx*sin - cy*cos + offY,
	}
	dst := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	xdraw.BiLinear.Transform(dst, s2d, src, src.Bounds(), xdraw.Over, nil)
	return dst
}

// flip mirrors the image. "v"/"vertical" swaps top and bottom,
// "h"/"horizontal" swaps left and right.
func flip(img image.Image, args []string) (image.Image, error) {
	direction := arg(args, 0, "horizontal")
	switch strings.ToLower(direction) {
	case "v", "vertical":
		return imaging.FlipV(img), nil
	case "h", "horizontal":
		return imaging.FlipH(img), nil
	}
	return nil, errors.Wrapf(entity.ErrInvalidFlipDirection, "invalid direction provided for flip method: %q", direction)
}

func grayScale(img image.Image, _ []string) (image.Image, error) {
	return toGray(img), nil
}

// blackAndWhite maps luminance >= threshold to 255 and everything else to 0.
func blackAndWhite(img image.Image, args []string) (image.Image, error) {
	raw := arg(args, 0, "150")
	th, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return nil, errors.Wrapf(entity.ErrInvalidParameter,
			"invalid threshold provided for filter black_and_white: %q, please provide an int number", raw)
	}
	th = clampInt(th, 0, 255)

	gray := toGray(img)
	for i, v := range gray.Pix {
		if int(v) >= th {
			gray.Pix[i] = 255
		} else {
			gray.Pix[i] = 0
		}
	}
	return gray, nil
}

// resize scales to width x height with Lanczos resampling. A missing height
// keeps the aspect ratio.
func resize(img image.Image, args []string) (image.Image, error) {
	width, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return nil, errors.Wrapf(entity.ErrInvalidParameter,
			"invalid new width provided for filter resize: %q, please provide an int number", args[0])
	}

	var height int
	if raw := arg(args, 1, ""); raw == "" {
		b := img.Bounds()
		height = int(math.Round(float64(width) * float64(b.Dy()) / float64(b.Dx())))
	} else if height, err = strconv.Atoi(strings.TrimSpace(raw)); err != nil {
		return nil, errors.Wrapf(entity.ErrInvalidParameter,
			"invalid new height provided for filter resize: %q, please provide an int number", raw)
	}

	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(entity.ErrInvalidParameter, "resize target must be positive, got %dx%d", width, height)
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

// sepia blends every pixel towards sepia tone. ratio 1 is full sepia,
// ratio 0 leaves colors as they are.
func sepia(img image.Image, args []string) (image.Image, error) {
	ratio := 1.0
	if raw := arg(args, 0, ""); raw != "" {
		var err error
		if ratio, err = parseFloat(raw); err != nil {
			return nil, errors.Wrapf(entity.ErrInvalidParameter, "invalid ratio provided for filter sepia: %q", raw)
		}
	}
	ratio = math.Max(0, math.Min(1, ratio))

	m := sepiaMatrix(ratio)
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		r, g, b := float64(c.R), float64(c.G), float64(c.B)
		return color.NRGBA{
			R: clampChannel(m[0][0]*r + m[0][1]*g + m[0][2]*b),
			G: clampChannel(m[1][0]*r + m[1][1]*g + m[1][2]*b),
			B: clampChannel(m[2][0]*r + m[2][1]*g + m[2][2]*b),
			A: c.A,
		}
	}), nil
}

func sepiaMatrix(ratio float64) [3][3]float64 {
	k := 1 - ratio
	return [3][3]float64{
		{0.393 + 0.607*k, 0.769 - 0.769*k, 0.189 - 0.189*k},
		{0.349 - 0.349*k, 0.686 + 0.314*k, 0.168 - 0.168*k},
		{0.272 - 0.272*k, 0.534 - 0.534*k, 0.131 + 0.869*k},
	}
}

// toGray converts img to 8-bit luminance anchored at the origin. Alpha is
// ignored: luminance comes from the straight (non-premultiplied) RGB values.
func toGray(img image.Image) *image.Gray {
	src := imaging.Clone(img)
	gray := image.NewGray(src.Bounds())
	for i, j := 0, 0; i < len(src.Pix); i, j = i+4, j+1 {
		r, g, b := uint32(src.Pix[i]), uint32(src.Pix[i+1]), uint32(src.Pix[i+2])
		gray.Pix[j] = uint8((19595*r + 38470*g + 7471*b + 1<<15) >> 16)
	}
	return gray
}

func parseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("%q is not a finite number", raw)
	}
	return v, nil
}

func isTruthy(raw string) bool {
	switch strings.ToLower(raw) {
	case "true", "1", "yes":
		return true
	}
	return false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampChannel(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
