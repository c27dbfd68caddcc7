package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterSpec(t *testing.T) {
	tests := []struct {
		raw  string
		want FilterSpec
	}{
		{raw: "gray_scale", want: FilterSpec{Name: "gray_scale", Args: []string{}}},
		{raw: "rotate:30", want: FilterSpec{Name: "rotate", Args: []string{"30"}}},
		{raw: "overlay:logo.png:10,20", want: FilterSpec{Name: "overlay", Args: []string{"logo.png", "10,20"}}},
		{raw: "rotate::true", want: FilterSpec{Name: "rotate", Args: []string{"", "true"}}},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			spec := ParseFilterSpec(tt.raw)
			assert.Equal(t, tt.want, spec)
			assert.Equal(t, tt.raw, spec.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	for ext, want := range map[string]Format{"png": FormatPNG, "PNG": FormatPNG, "jpg": FormatJPEG, "JPEG": FormatJPEG} {
		got, ok := ParseFormat(ext)
		assert.True(t, ok, ext)
		assert.Equal(t, want, got, ext)
	}

	_, ok := ParseFormat("gif")
	assert.False(t, ok)
}

func TestImageSource(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))

	got, ok := Decoded(img, "a.png").Image()
	assert.True(t, ok)
	assert.Same(t, img, got)

	got, ok = Unresolved("missing.png").Image()
	assert.False(t, ok)
	assert.Nil(t, got)
	assert.Equal(t, "missing.png", Unresolved("missing.png").Path())

	_, ok = ImageSource{}.Image()
	assert.False(t, ok)
}

func TestOutputFileName(t *testing.T) {
	assert.Equal(t, "photo.jpeg", OutputSpec{Name: "photo", Ext: "jpeg", Format: FormatJPEG}.FileName())
}
