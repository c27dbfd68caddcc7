package entity

import (
	"image"
	"strings"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
)

// ParseFormat maps an accepted output extension to its encoding.
func ParseFormat(ext string) (Format, bool) {
	switch strings.ToLower(ext) {
	case "png":
		return FormatPNG, true
	case "jpg", "jpeg":
		return FormatJPEG, true
	}
	return "", false
}

// ImageSource is either a decoded image or the path that could not be
// resolved to one. The zero value is unresolved with an empty path.
type ImageSource struct {
	img  image.Image
	path string
}

func Decoded(img image.Image, path string) ImageSource {
	return ImageSource{img: img, path: path}
}

func Unresolved(path string) ImageSource {
	return ImageSource{path: path}
}

// Image returns the decoded image and true, or nil and false when the
// source is unresolved.
func (s ImageSource) Image() (image.Image, bool) {
	return s.img, s.img != nil
}

func (s ImageSource) Path() string {
	return s.path
}

type FilterSpec struct {
	Name string
	Args []string
}

// ParseFilterSpec splits a "name:arg1:arg2" token. Empty segments are kept.
func ParseFilterSpec(raw string) FilterSpec {
	fields := strings.Split(raw, ":")
	return FilterSpec{Name: fields[0], Args: fields[1:]}
}

func (f FilterSpec) String() string {
	return strings.Join(append([]string{f.Name}, f.Args...), ":")
}

type OutputSpec struct {
	Name   string
	Ext    string
	Format Format
}

func (o OutputSpec) FileName() string {
	return o.Name + "." + o.Ext
}

// Operation is the resolved plan for a single run.
type Operation struct {
	Input   ImageSource
	Filters []FilterSpec
	Output  OutputSpec
}
