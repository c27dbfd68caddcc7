package service

import (
	"github.com/ds124wfegd/imgfilter/internal/entity"
	"github.com/ds124wfegd/imgfilter/internal/pkg/processor"
	"github.com/sirupsen/logrus"
)

type ImageService interface {
	// Run translates the command line tokens and executes the resulting
	// operation, returning the written file path.
	Run(tokens []string) (string, error)
}

type Translator interface {
	Translate(tokens []string) (entity.Operation, error)
}

type imageService struct {
	translator Translator
	processor  processor.ImageProcessor
	log        logrus.FieldLogger
}

func NewImageService(translator Translator, processor processor.ImageProcessor, log logrus.FieldLogger) ImageService {
	return &imageService{
		translator: translator,
		processor:  processor,
		log:        log,
	}
}
