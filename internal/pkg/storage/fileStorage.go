package storage

import (
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/imgfilter/internal/entity"
	"github.com/pkg/errors"

	// extra input decoders registered with image.Decode
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FileStorage is the codec and filesystem boundary of the tool.
type FileStorage interface {
	// Load decodes the image at path.
	Load(path string) (image.Image, error)
	// Save encodes img under the base directory and returns the written path.
	Save(name string, img image.Image, format entity.Format) (string, error)
	// IsFile reports whether path names an existing regular file.
	IsFile(path string) bool
}

type Option func(*fileStorage)

func WithJPEGQuality(quality int) Option {
	return func(s *fileStorage) {
		s.jpegQuality = quality
	}
}

func WithAutoOrientation(enabled bool) Option {
	return func(s *fileStorage) {
		s.autoOrient = enabled
	}
}

type fileStorage struct {
	basePath    string
	jpegQuality int
	autoOrient  bool
}

func NewFileStorage(basePath string, opts ...Option) FileStorage {
	s := &fileStorage{basePath: basePath, jpegQuality: 75}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *fileStorage) Load(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(s.autoOrient))
	if err != nil {
		return nil, errors.Wrapf(entity.ErrInvalidImage, "%s: %v", path, err)
	}
	return img, nil
}

// Save encodes img into basePath/name. A failed write leaves no file behind.
func (s *fileStorage) Save(name string, img image.Image, format entity.Format) (path string, err error) {
	fullPath := filepath.Join(s.basePath, name)

	// Создаем директорию если нужно
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", errors.Wrap(err, "create output directory")
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", errors.Wrap(err, "create output file")
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", fullPath)
		}
		if err != nil {
			os.Remove(fullPath)
			path = ""
		}
	}()

	switch format {
	case entity.FormatPNG:
		err = imaging.Encode(file, img, imaging.PNG)
	default:
		err = imaging.Encode(file, img, imaging.JPEG, imaging.JPEGQuality(s.jpegQuality))
	}
	if err != nil {
		return "", errors.Wrapf(err, "encode %s", fullPath)
	}
	return fullPath, nil
}

func (s *fileStorage) IsFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
