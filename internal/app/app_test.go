package app

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/ds124wfegd/imgfilter/config"
	"github.com/ds124wfegd/imgfilter/internal/transport"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEndToEnd(t *testing.T) {
	dir := t.TempDir()
	resultsDir := filepath.Join(dir, "results")
	t.Setenv("IMGFILTER_OUTPUT_DIR", resultsDir)

	input := filepath.Join(dir, "input.jpg")
	require.NoError(t, imaging.Save(imaging.New(120, 60, color.NRGBA{R: 90, G: 140, B: 200, A: 255}), input))

	var out, errOut bytes.Buffer
	code := Run([]string{
		"--input", input,
		"-f", "resize:60",
		"-f", "nonexistent",
		"-f", "gray_scale:extra",
		"-f", "black_and_white:120",
		"--output", "final.photo:PNG",
	}, &out, &errOut)
	require.Equal(t, transport.ExitSuccess, code, errOut.String())

	saved, err := imaging.Open(filepath.Join(resultsDir, "final_photo.png"))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 60, 30), saved.Bounds())

	assert.Contains(t, errOut.String(), "nonexistent is not implemented")
	assert.Contains(t, errOut.String(), "run_id=")
	assert.Contains(t, out.String(), "final_photo.png")
}

func TestRunFailures(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("IMGFILTER_OUTPUT_DIR", filepath.Join(dir, "results"))

	input := filepath.Join(dir, "input.png")
	require.NoError(t, imaging.Save(imaging.New(10, 10, color.White), input))

	tests := []struct {
		name string
		args []string
		code int
	}{
		{name: "no arguments", args: nil, code: transport.ExitFailure},
		{name: "help", args: []string{input, "--help"}, code: transport.ExitHelp},
		{name: "missing input", args: []string{"-i", filepath.Join(dir, "missing.png")}, code: transport.ExitFailure},
		{name: "invalid filter value", args: []string{input, "-f", "flip:nowhere", "-o", "x.png"}, code: transport.ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			assert.Equal(t, tt.code, Run(tt.args, &out, &errOut))
		})
	}

	_, err := os.Stat(filepath.Join(dir, "results"))
	assert.True(t, os.IsNotExist(err), "failed runs must not write output")
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer

	logger, err := NewLogger(config.LogConfig{Level: "warn", Format: "json"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	_, err = NewLogger(config.LogConfig{Level: "loud", Format: "text"}, &buf)
	assert.Error(t, err)

	_, err = NewLogger(config.LogConfig{Level: "info", Format: "xml"}, &buf)
	assert.Error(t, err)
}
