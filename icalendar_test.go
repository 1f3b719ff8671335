package davkit_test

import (
	"testing"

	"github.com/davkit/davkit"
	"github.com/stretchr/testify/require"
)

const testEvent = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nBEGIN:VEVENT\r\nUID:evt-1\r\nSUMMARY:Team sync\r\nDTSTART:20260823T100000Z\r\nEND:VEVENT\r\nEND:VCALENDAR\r\n"

func TestICalendarValidate(t *testing.T) {
	t.Parallel()

	f := davkit.NewICalendarFile([]byte(testEvent))
	require.NoError(t, f.Validate())

	f = davkit.NewICalendarFile([]byte("BEGIN:VEVENT\r\nEND:VEVENT\r\n"))
	require.ErrorIs(t, f.Validate(), davkit.ErrInvalidFileContents)

	f = davkit.NewICalendarFile([]byte{})
	require.ErrorIs(t, f.Validate(), davkit.ErrInvalidFileContents)
}

func TestICalendarNormalized(t *testing.T) {
	t.Parallel()

	f := davkit.NewICalendarFile([]byte("BEGIN:VCALENDAR\nEND:VCALENDAR\n\n"))
	require.Equal(t, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n", string(f.Normalized()))
}

func TestICalendarDescribe(t *testing.T) {
	t.Parallel()

	f := davkit.NewICalendarFile([]byte(testEvent))
	require.Equal(t, "Team sync", f.Describe("sync.ics"))

	f = davkit.NewICalendarFile([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))
	require.Equal(t, "sync.ics", f.Describe("sync.ics"))
}

func TestICalendarUID(t *testing.T) {
	t.Parallel()

	f := davkit.NewICalendarFile([]byte(testEvent))

	uid, err := f.UID()
	require.NoError(t, err)
	require.Equal(t, "evt-1", uid)

	f = davkit.NewICalendarFile([]byte("BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"))

	_, err = f.UID()
	require.ErrorIs(t, err, davkit.ErrNoUID)
}

func TestICalendarIndex(t *testing.T) {
	t.Parallel()

	f := davkit.NewICalendarFile([]byte(testEvent))

	require.Equal(t, []davkit.IndexValue{"Team sync"}, f.Index("P=SUMMARY"))
	require.Empty(t, f.Index("P=LOCATION"))
	require.Nil(t, f.Index("other"))
}

func TestCollectionCalendarHandler(t *testing.T) {
	t.Parallel()

	c := davkit.NewCollection("calendars")

	_, _, err := c.Put("bad.ics", "text/calendar", []byte("SUMMARY:nope\r\n"), "")
	require.ErrorIs(t, err, davkit.ErrInvalidFileContents)

	member, created, err := c.Put("sync.ics", "text/calendar", []byte(testEvent), "")
	require.NoError(t, err)
	require.True(t, created)
	require.Equal(t, "text/calendar", member.ContentType)

	uid, err := member.File.UID()
	require.NoError(t, err)
	require.Equal(t, "evt-1", uid)
}
