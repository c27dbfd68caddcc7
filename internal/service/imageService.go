package service

import (
	"github.com/sirupsen/logrus"
)

func (s *imageService) Run(tokens []string) (string, error) {
	op, err := s.translator.Translate(tokens)
	if err != nil {
		return "", err
	}

	filters := make([]string, len(op.Filters))
	for i, f := range op.Filters {
		filters[i] = f.String()
	}
	s.log.WithFields(logrus.Fields{
		"input":   op.Input.Path(),
		"filters": filters,
		"output":  op.Output.FileName(),
	}).Info("Operation translated")

	return s.processor.Process(op)
}
