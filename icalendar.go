package davkit

import (
	"fmt"
	"strings"
)

const CalendarType = "text/calendar"

// ICalendarFile handles text/calendar contents, with the same lenient
// content-line parsing as VCardFile.
type ICalendarFile struct {
	content []byte
}

var _ File = &ICalendarFile{}
var _ Indexed = &ICalendarFile{}

func NewICalendarFile(content []byte) *ICalendarFile {
	return &ICalendarFile{
		content: content,
	}
}

func (f *ICalendarFile) ContentType() string {
	return CalendarType
}

func (f *ICalendarFile) Content() []byte {
	return f.content
}

func (f *ICalendarFile) Validate() error {
	lines := f.lines()

	if len(lines) == 0 || lines[0] != "BEGIN:VCALENDAR" || lines[len(lines)-1] != "END:VCALENDAR" {
		return fmt.Errorf("%s: missing BEGIN:VCALENDAR/END:VCALENDAR envelope (%w)", CalendarType, ErrInvalidFileContents)
	}

	return nil
}

func (f *ICalendarFile) Normalized() []byte {
	return []byte(strings.Join(f.lines(), "\r\n") + "\r\n")
}

func (f *ICalendarFile) Describe(name string) string {
	if summary := f.prop("SUMMARY"); len(summary) > 0 {
		return summary[0]
	}

	return name
}

func (f *ICalendarFile) UID() (string, error) {
	uid := f.prop("UID")
	if len(uid) == 0 {
		return "", ErrNoUID
	}

	return uid[0], nil
}

func (f *ICalendarFile) Index(key IndexKey) []IndexValue {
	if !strings.HasPrefix(key, propIndexPrefix) {
		return nil
	}

	return f.prop(strings.TrimPrefix(key, propIndexPrefix))
}

func (f *ICalendarFile) lines() []string {
	return unfoldLines(f.content)
}

func (f *ICalendarFile) prop(name string) []string {
	return propValues(f.lines(), name)
}
