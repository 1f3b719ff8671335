package davkit

import (
	"fmt"
	"strings"
)

const VCardType = "text/vcard"

// VCardFile handles text/vcard contents. Properties are parsed leniently:
// folded lines are unfolded, parameters after ";" are ignored for lookup,
// and property names are case insensitive.
type VCardFile struct {
	content []byte
}

var _ File = &VCardFile{}
var _ Indexed = &VCardFile{}

func NewVCardFile(content []byte) *VCardFile {
	return &VCardFile{
		content: content,
	}
}

func (f *VCardFile) ContentType() string {
	return VCardType
}

func (f *VCardFile) Content() []byte {
	return f.content
}

func (f *VCardFile) Validate() error {
	lines := f.lines()

	if len(lines) == 0 || lines[0] != "BEGIN:VCARD" || lines[len(lines)-1] != "END:VCARD" {
		return fmt.Errorf("%s: missing BEGIN:VCARD/END:VCARD envelope (%w)", VCardType, ErrInvalidFileContents)
	}

	return nil
}

func (f *VCardFile) Normalized() []byte {
	return []byte(strings.Join(f.lines(), "\r\n") + "\r\n")
}

func (f *VCardFile) Describe(name string) string {
	if fn := f.prop("FN"); len(fn) > 0 {
		return fn[0]
	}

	return name
}

func (f *VCardFile) UID() (string, error) {
	uid := f.prop("UID")
	if len(uid) == 0 {
		return "", ErrNoUID
	}

	return uid[0], nil
}

func (f *VCardFile) Index(key IndexKey) []IndexValue {
	if !strings.HasPrefix(key, propIndexPrefix) {
		return nil
	}

	return f.prop(strings.TrimPrefix(key, propIndexPrefix))
}

func (f *VCardFile) lines() []string {
	return unfoldLines(f.content)
}

func (f *VCardFile) prop(name string) []string {
	return propValues(f.lines(), name)
}

// PropertyFilter matches vCard resources whose named property has an exact
// value.
type PropertyFilter struct {
	Name  string
	Value string
}

var _ Filter = &PropertyFilter{}

func (pf *PropertyFilter) ContentType() string {
	return VCardType
}

func (pf *PropertyFilter) Check(name string, f File) (bool, error) {
	card, ok := f.(*VCardFile)
	if !ok {
		card = NewVCardFile(f.Content())
	}

	err := card.Validate()
	if err != nil {
		return false, err
	}

	for _, val := range card.prop(pf.Name) {
		if val == pf.Value {
			return true, nil
		}
	}

	return false, nil
}

func (pf *PropertyFilter) IndexKeys() [][]IndexKey {
	return [][]IndexKey{{propIndexPrefix + pf.Name}}
}

func (pf *PropertyFilter) CheckFromIndexes(_ string, indexes IndexMap) (bool, error) {
	for _, val := range indexes[propIndexPrefix+pf.Name] {
		if val == pf.Value {
			return true, nil
		}
	}

	return false, nil
}
