package service

import (
	"image"
	"testing"

	"github.com/ds124wfegd/imgfilter/internal/entity"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTranslator struct {
	op  entity.Operation
	err error
}

func (s stubTranslator) Translate([]string) (entity.Operation, error) {
	return s.op, s.err
}

type recordingProcessor struct {
	calls []entity.Operation
}

func (p *recordingProcessor) Process(op entity.Operation) (string, error) {
	p.calls = append(p.calls, op)
	return "results/" + op.Output.FileName(), nil
}

func TestRunPassesOperationToProcessor(t *testing.T) {
	logger, hook := test.NewNullLogger()
	op := entity.Operation{
		Input:   entity.Decoded(image.NewGray(image.Rect(0, 0, 1, 1)), "in.png"),
		Filters: []entity.FilterSpec{entity.ParseFilterSpec("rotate:30:true")},
		Output:  entity.OutputSpec{Name: "out", Ext: "png", Format: entity.FormatPNG},
	}
	proc := &recordingProcessor{}

	path, err := NewImageService(stubTranslator{op: op}, proc, logger).Run([]string{"in.png"})
	require.NoError(t, err)
	assert.Equal(t, "results/out.png", path)
	require.Len(t, proc.calls, 1)
	assert.Equal(t, op, proc.calls[0])

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, []string{"rotate:30:true"}, entry.Data["filters"])
}

func TestRunStopsOnTranslationError(t *testing.T) {
	logger, _ := test.NewNullLogger()
	proc := &recordingProcessor{}
	translateErr := errors.Wrap(entity.ErrDuplicateFlag, "-i")

	_, err := NewImageService(stubTranslator{err: translateErr}, proc, logger).Run([]string{"-i", "a", "-i", "b"})
	assert.ErrorIs(t, err, entity.ErrDuplicateFlag)
	assert.Empty(t, proc.calls)
}
