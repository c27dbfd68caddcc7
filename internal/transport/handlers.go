package transport

import (
	"io"

	"github.com/ds124wfegd/imgfilter/internal/service"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitHelp    = 2
)

type ImageHandler struct {
	service service.ImageService
	out     io.Writer
	errOut  io.Writer
}

func NewImageHandler(service service.ImageService, out, errOut io.Writer) *ImageHandler {
	return &ImageHandler{service: service, out: out, errOut: errOut}
}
