package filters

import (
	"image"
	"sort"

	"github.com/ds124wfegd/imgfilter/internal/entity"
	"github.com/pkg/errors"
)

// ApplyFunc transforms img using the raw string arguments of a filter spec.
// The argument count is already checked against the filter's arity.
type ApplyFunc func(img image.Image, args []string) (image.Image, error)

type Filter struct {
	Name    string
	MinArgs int
	MaxArgs int
	Apply   ApplyFunc
}

// Loader is the part of the storage layer filters need to read extra images.
type Loader interface {
	Load(path string) (image.Image, error)
	IsFile(path string) bool
}

// Registry is the closed set of filters known to the tool. It is read only
// once built.
type Registry struct {
	filters map[string]Filter
}

func NewRegistry(loader Loader) *Registry {
	o := &overlay{loader: loader}

	list := []Filter{
		{Name: "rotate", MinArgs: 0, MaxArgs: 3, Apply: rotate},
		{Name: "flip", MinArgs: 0, MaxArgs: 1, Apply: flip},
		{Name: "gray_scale", MinArgs: 0, MaxArgs: 0, Apply: grayScale},
		{Name: "black_and_white", MinArgs: 0, MaxArgs: 1, Apply: blackAndWhite},
		{Name: "resize", MinArgs: 1, MaxArgs: 2, Apply: resize},
		{Name: "sepia", MinArgs: 0, MaxArgs: 1, Apply: sepia},
		{Name: "overlay", MinArgs: 1, MaxArgs: 2, Apply: o.apply},
	}

	r := &Registry{filters: make(map[string]Filter, len(list))}
	for _, f := range list {
		r.filters[f.Name] = f
	}
	return r
}

func (r *Registry) Lookup(name string) (Filter, bool) {
	f, ok := r.filters[name]
	return f, ok
}

// Names returns the registered filter names in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs the filter after checking the argument count. A count outside
// [MinArgs, MaxArgs] yields entity.ErrWrongArity and leaves img untouched.
func (f Filter) Invoke(img image.Image, args []string) (image.Image, error) {
	if len(args) < f.MinArgs || len(args) > f.MaxArgs {
		return nil, errors.Wrapf(entity.ErrWrongArity, "%q takes %d to %d arguments, got %d",
			f.Name, f.MinArgs, f.MaxArgs, len(args))
	}
	return f.Apply(img, args)
}

// arg returns args[i], or def when the argument was not given.
func arg(args []string, i int, def string) string {
	if i < len(args) {
		return args[i]
	}
	return def
}
