package processor

import (
	"fmt"
	"image"

	"github.com/ds124wfegd/imgfilter/internal/entity"
	"github.com/ds124wfegd/imgfilter/internal/pkg/filters"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type ImageProcessor interface {
	// Process applies the filter chain of op and writes the result,
	// returning the written path.
	Process(op entity.Operation) (string, error)
}

// Saver persists the final image.
type Saver interface {
	Save(name string, img image.Image, format entity.Format) (string, error)
}

type imageProcessor struct {
	registry *filters.Registry
	saver    Saver
	log      logrus.FieldLogger
}

func NewImageProcessor(registry *filters.Registry, saver Saver, log logrus.FieldLogger) ImageProcessor {
	return &imageProcessor{registry: registry, saver: saver, log: log}
}

func (p *imageProcessor) Process(op entity.Operation) (string, error) {
	img, ok := op.Input.Image()
	if !ok {
		return "", errors.Wrapf(entity.ErrInvalidImage, "%q", op.Input.Path())
	}

	result, stats, err := p.applyFilters(img, op.Filters)
	if err != nil {
		return "", err
	}

	p.present(result, stats)

	path, err := p.saver.Save(op.Output.FileName(), result, op.Output.Format)
	if err != nil {
		return "", errors.Wrap(err, "failed to save result")
	}

	p.log.WithField("path", path).Info("Result saved")
	return path, nil
}

type chainStats struct {
	applied int
	skipped int
}

// applyFilters runs specs in order. Unknown filters and wrong argument
// counts are skipped, any other filter error stops the chain.
func (p *imageProcessor) applyFilters(img image.Image, specs []entity.FilterSpec) (image.Image, chainStats, error) {
	var stats chainStats

	for _, spec := range specs {
		entry := p.log.WithFields(logrus.Fields{
			"filter": spec.Name,
			"args":   spec.Args,
		})

		f, ok := p.registry.Lookup(spec.Name)
		if !ok {
			entry.Warnf("%s is not implemented (yet!)", spec.Name)
			stats.skipped++
			continue
		}

		processed, err := f.Invoke(img, spec.Args)
		if errors.Is(err, entity.ErrWrongArity) {
			entry.WithError(err).Warnf("Invalid number of arguments passed to filter %q, skipping it", spec.Name)
			stats.skipped++
			continue
		}
		if err != nil {
			return nil, stats, errors.Wrapf(err, "filter %s", spec)
		}

		entry.Debug("Filter applied")
		img = processed
		stats.applied++
	}

	return img, stats, nil
}

// present reports the final image in place of an interactive preview.
func (p *imageProcessor) present(img image.Image, stats chainStats) {
	b := img.Bounds()
	p.log.WithFields(logrus.Fields{
		"size":    fmt.Sprintf("%dx%d", b.Dx(), b.Dy()),
		"model":   colorModelName(img),
		"applied": stats.applied,
		"skipped": stats.skipped,
	}).Info("Filter chain completed")
}

func colorModelName(img image.Image) string {
	switch img.(type) {
	case *image.Gray, *image.Gray16:
		return "gray"
	case *image.Paletted:
		return "paletted"
	case *image.YCbCr:
		return "ycbcr"
	case *image.CMYK:
		return "cmyk"
	default:
		return "rgba"
	}
}
