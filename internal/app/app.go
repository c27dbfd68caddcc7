// wiring the logger, storage, filters and command line handler
package app

import (
	"io"

	"github.com/ds124wfegd/imgfilter/config"
	"github.com/ds124wfegd/imgfilter/internal/pkg/filters"
	"github.com/ds124wfegd/imgfilter/internal/pkg/processor"
	"github.com/ds124wfegd/imgfilter/internal/pkg/storage"
	"github.com/ds124wfegd/imgfilter/internal/service"
	"github.com/ds124wfegd/imgfilter/internal/translator"
	"github.com/ds124wfegd/imgfilter/internal/transport"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Run executes a single invocation and returns the process exit code.
func Run(args []string, out, errOut io.Writer) int {
	cfg, err := config.ParseConfig(config.LoadConfig())
	if err != nil {
		logrus.Errorf("error occurred while loading config: %s", err.Error())
		return transport.ExitFailure
	}

	handler, err := NewApp(cfg, out, errOut)
	if err != nil {
		logrus.Errorf("error occurred while initializing app: %s", err.Error())
		return transport.ExitFailure
	}

	return handler.Execute(args)
}

func NewApp(cfg *config.Config, out, errOut io.Writer) (*transport.ImageHandler, error) {
	logger, err := NewLogger(cfg.Log, errOut)
	if err != nil {
		return nil, err
	}
	log := logger.WithField("run_id", uuid.New().String())

	fileStorage := storage.NewFileStorage(cfg.Output.Dir,
		storage.WithJPEGQuality(cfg.Output.JPEGQuality),
		storage.WithAutoOrientation(cfg.Input.AutoOrient),
	)
	registry := filters.NewRegistry(fileStorage)
	imgProcessor := processor.NewImageProcessor(registry, fileStorage, log)
	imgService := service.NewImageService(translator.New(fileStorage), imgProcessor, log)

	return transport.NewImageHandler(imgService, out, errOut), nil
}

func NewLogger(cfg config.LogConfig, w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Wrap(err, "log.level")
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(new(logrus.JSONFormatter))
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return nil, errors.Errorf("log.format must be text or json, got %q", cfg.Format)
	}
	return logger, nil
}
