package storage

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/imgfilter/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveCreatesDirectory(t *testing.T) {
	tests := []struct {
		name   string
		file   string
		format entity.Format
	}{
		{name: "png", file: "out.png", format: entity.FormatPNG},
		{name: "jpeg", file: "out.jpg", format: entity.FormatJPEG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := filepath.Join(t.TempDir(), "results")
			s := NewFileStorage(base, WithJPEGQuality(90))

			img := imaging.New(12, 8, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
			path, err := s.Save(tt.file, img, tt.format)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(base, tt.file), path)

			loaded, err := s.Load(path)
			require.NoError(t, err)
			assert.Equal(t, image.Rect(0, 0, 12, 8), loaded.Bounds())
		})
	}
}

func TestSaveIntoExistingDirectory(t *testing.T) {
	base := t.TempDir()
	s := NewFileStorage(base)
	img := imaging.New(2, 2, color.White)

	_, err := s.Save("a.png", img, entity.FormatPNG)
	require.NoError(t, err)
	_, err = s.Save("b.png", img, entity.FormatPNG)
	require.NoError(t, err)
}

func TestLoadInvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0600))

	_, err := NewFileStorage(t.TempDir()).Load(path)
	assert.ErrorIs(t, err, entity.ErrInvalidImage)
}

func TestIsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))

	s := NewFileStorage(dir)
	assert.True(t, s.IsFile(path))
	assert.False(t, s.IsFile(dir))
	assert.False(t, s.IsFile(filepath.Join(dir, "missing.png")))
	assert.False(t, s.IsFile(""))
}

// Неудачная запись не должна оставлять файл на диске
func TestSaveEncodeFailureRemovesFile(t *testing.T) {
	base := t.TempDir()
	s := NewFileStorage(base)

	path, err := s.Save("empty.png", image.NewNRGBA(image.Rect(0, 0, 0, 0)), entity.FormatPNG)
	require.Error(t, err)
	assert.Empty(t, path)

	_, statErr := os.Stat(filepath.Join(base, "empty.png"))
	assert.True(t, os.IsNotExist(statErr), "partial output must be removed")
}
