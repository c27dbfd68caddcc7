package entity

import "errors"

var (
	// Command line errors
	ErrInvalidArguments   = errors.New("invalid number of arguments")
	ErrInvalidCommand     = errors.New("invalid command")
	ErrDuplicateFlag      = errors.New("flag invoked more than once")
	ErrMissingOutputValue = errors.New("output flag invoked without a value")
	ErrInvalidExtension   = errors.New("invalid output file extension, provide jpg or png")
	ErrEmptyOutputName    = errors.New("output file name is empty")
	ErrHelpRequested      = errors.New("help requested")

	// Image errors
	ErrInvalidImage             = errors.New("image does not exist or is invalid")
	ErrFileNotFound             = errors.New("path does not represent an existing file")
	ErrImageWithoutTransparency = errors.New("image does not have transparency")

	// Filter errors
	ErrWrongArity                = errors.New("invalid number of arguments passed to filter")
	ErrInvalidParameter          = errors.New("invalid filter parameter")
	ErrInvalidFlipDirection      = errors.New("invalid flip direction")
	ErrInvalidOverlayCoordinates = errors.New("invalid overlay coordinates, write 2 numbers separated by comma, like \"100,200\"")
)
