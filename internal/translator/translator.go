// Package translator turns raw command line tokens into an entity.Operation.
package translator

import (
	"image"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ds124wfegd/imgfilter/internal/entity"
	"github.com/pkg/errors"
)

const (
	flagHelp   = "-h"
	flagInput  = "-i"
	flagFilter = "-f"
	flagOutput = "-o"
)

var aliases = map[string]string{
	"--help":   flagHelp,
	"--input":  flagInput,
	"--filter": flagFilter,
	"--output": flagOutput,
}

var acceptedFormats = []string{"png", "jpg", "jpeg"}

// HelpMessage is printed for -h/--help and when no arguments are given.
const HelpMessage = `-i or --input (required), arguments <path_to_original_image>. Example, -i input.jpg. If this flag is not specified, first argument will be looked at as a possible path.
-f or --filter (optional), arguments <name_of_filter>, additional parameters possible separated by :, example --filter rotate:30 will rotate the input image 30 degrees
-h or --help, will show this message with the available commands
-o or --output (optional), arguments <path_to_output_image>, additional parameters possible separated by ':'. Example, -o ola:PNG will save the result in a PNG file called ola.png. If this flag is omitted result will be saved in result_<timestamp>.jpg`

// ImageLoader resolves the input candidate into a decoded image.
type ImageLoader interface {
	Load(path string) (image.Image, error)
	IsFile(path string) bool
}

// Translator parses command line tokens into an operation.
type Translator struct {
	loader ImageLoader
	now    func() time.Time
}

// New returns a Translator that resolves input paths through loader.
func New(loader ImageLoader) *Translator {
	return &Translator{loader: loader, now: time.Now}
}

// Translate builds the operation for tokens. It returns
// entity.ErrHelpRequested when -h or --help is present.
func (t *Translator) Translate(tokens []string) (entity.Operation, error) {
	if len(tokens) == 0 {
		return entity.Operation{}, entity.ErrInvalidArguments
	}

	args := normalize(tokens)

	if slices.Contains(args, flagHelp) {
		return entity.Operation{}, entity.ErrHelpRequested
	}

	for _, flag := range []string{flagInput, flagOutput} {
		if count(args, flag) > 1 {
			return entity.Operation{}, errors.Wrapf(entity.ErrDuplicateFlag, "%s", flag)
		}
	}

	for _, arg := range args {
		if strings.HasPrefix(arg, "-") && !isKnownFlag(arg) {
			return entity.Operation{}, errors.Wrapf(entity.ErrInvalidCommand, "%s", arg)
		}
	}

	input, err := t.inputSource(args)
	if err != nil {
		return entity.Operation{}, err
	}

	output, err := t.outputSpec(args)
	if err != nil {
		return entity.Operation{}, err
	}

	return entity.Operation{
		Input:   input,
		Filters: filterSpecs(args),
		Output:  output,
	}, nil
}

// normalize replaces long aliases with their short flag on a copy of tokens.
func normalize(tokens []string) []string {
	args := make([]string, len(tokens))
	for i, tok := range tokens {
		if short, ok := aliases[tok]; ok {
			tok = short
		}
		args[i] = tok
	}
	return args
}

// inputSource resolves the value after -i, or the first token when -i is
// absent. Paths that are not regular files stay unresolved.
func (t *Translator) inputSource(args []string) (entity.ImageSource, error) {
	candidate := args[0]
	if idx := slices.Index(args, flagInput); idx >= 0 {
		candidate = valueAt(args, idx+1)
	}

	if !t.loader.IsFile(candidate) {
		return entity.Unresolved(candidate), nil
	}
	img, err := t.loader.Load(candidate)
	if err != nil {
		return entity.ImageSource{}, errors.Wrap(err, "no proper input image was given")
	}
	return entity.Decoded(img, candidate), nil
}

// filterSpecs collects the value after every -f. A missing value or one that
// looks like a flag drops that -f.
func filterSpecs(args []string) []entity.FilterSpec {
	var specs []entity.FilterSpec
	for i, arg := range args {
		if arg != flagFilter {
			continue
		}
		value := valueAt(args, i+1)
		if value == "" || strings.HasPrefix(value, "-") {
			continue
		}
		specs = append(specs, entity.ParseFilterSpec(value))
	}
	return specs
}

func (t *Translator) outputSpec(args []string) (entity.OutputSpec, error) {
	idx := slices.Index(args, flagOutput)
	if idx < 0 {
		return entity.OutputSpec{
			Name:   "result_" + strconv.FormatInt(t.now().Unix(), 10),
			Ext:    "jpg",
			Format: entity.FormatJPEG,
		}, nil
	}
	if idx+1 >= len(args) {
		return entity.OutputSpec{}, entity.ErrMissingOutputValue
	}
	return ParseOutput(args[idx+1])
}

// ParseOutput derives the output name and format from "name:FMT" or
// "name.ext".
func ParseOutput(raw string) (entity.OutputSpec, error) {
	var name, ext string

	if strings.Contains(raw, ":") {
		parts := strings.Split(raw, ":")
		ext = strings.ToLower(strings.TrimSpace(parts[1]))
		name = parts[0]
		if strings.Contains(name, ".") {
			segments := strings.Split(name, ".")
			if slices.Contains(acceptedFormats, segments[len(segments)-1]) {
				segments = segments[:len(segments)-1]
			}
			name = joinSegments(segments)
		}
	} else {
		if !strings.Contains(raw, ".") {
			return entity.OutputSpec{}, errors.Wrap(entity.ErrInvalidExtension, "no extension provided")
		}
		segments := strings.Split(raw, ".")
		ext = strings.ToLower(strings.TrimSpace(segments[len(segments)-1]))
		name = joinSegments(segments[:len(segments)-1])
	}

	format, ok := entity.ParseFormat(ext)
	if !ok {
		return entity.OutputSpec{}, errors.Wrapf(entity.ErrInvalidExtension, "%q", ext)
	}
	if strings.TrimSpace(name) == "" {
		return entity.OutputSpec{}, errors.Wrapf(entity.ErrEmptyOutputName, "%q", raw)
	}
	return entity.OutputSpec{Name: name, Ext: ext, Format: format}, nil
}

func joinSegments(segments []string) string {
	trimmed := make([]string, len(segments))
	for i, s := range segments {
		trimmed[i] = strings.TrimSpace(s)
	}
	return strings.Join(trimmed, "_")
}

func isKnownFlag(arg string) bool {
	switch arg {
	case flagHelp, flagInput, flagFilter, flagOutput:
		return true
	}
	return false
}

func valueAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func count(args []string, flag string) int {
	n := 0
	for _, arg := range args {
		if arg == flag {
			n++
		}
	}
	return n
}
