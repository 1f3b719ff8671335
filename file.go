package davkit

import "errors"

var (
	ErrInvalidFileContents = errors.New("invalid file contents")
	ErrNoUID               = errors.New("no UID set")
	ErrUIDUnsupported      = errors.New("UIDs not supported for this format")
)

// File is a typed handle on a resource's contents. Implementations are
// content type specific; PlainFile is the fallback for unknown types.
type File interface {
	ContentType() string
	Content() []byte

	// Validate verifies that the contents are well formed for the
	// content type, returning an error wrapping ErrInvalidFileContents
	// otherwise.
	Validate() error

	// Normalized returns a canonical byte form of the contents, suitable
	// for entity tag computation.
	Normalized() []byte

	// Describe returns a short human-readable description of the
	// contents, for use in e.g. change logs. name is the fallback.
	Describe(name string) string

	// UID returns the stable identifier embedded in the contents.
	// Returns ErrUIDUnsupported if the format has no UID concept and
	// ErrNoUID if the contents don't carry one.
	UID() (string, error)
}

type DeltaDescriber interface {
	DescribeDelta(name string, previous File) []string
}

// DescribeDelta describes the change from previous to f. Files may implement
// DeltaDescriber for a format-aware description; otherwise the change is
// summarized as added or modified.
func DescribeDelta(f File, name string, previous File) []string {
	if dd, ok := f.(DeltaDescriber); ok {
		return dd.DescribeDelta(name, previous)
	}

	if previous == nil {
		return []string{"Added " + f.Describe(name)}
	}

	return []string{"Modified " + f.Describe(name)}
}

// FileHandler opens content of a specific type as a File.
type FileHandler func(content []byte) File

type PlainFile struct {
	contentType string
	content     []byte
}

var _ File = &PlainFile{}

func NewPlainFile(content []byte, contentType string) *PlainFile {
	return &PlainFile{
		contentType: contentType,
		content:     content,
	}
}

func (f *PlainFile) ContentType() string {
	return f.contentType
}

func (f *PlainFile) Content() []byte {
	return f.content
}

func (f *PlainFile) Validate() error {
	return nil
}

func (f *PlainFile) Normalized() []byte {
	return f.content
}

func (f *PlainFile) Describe(name string) string {
	return name
}

func (f *PlainFile) UID() (string, error) {
	return "", ErrUIDUnsupported
}
