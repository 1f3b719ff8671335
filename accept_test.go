package davkit_test

import (
	"testing"

	"github.com/davkit/davkit"
	"github.com/stretchr/testify/require"
)

func TestParseMediaRange(t *testing.T) {
	t.Parallel()

	mr := davkit.ParseMediaRange("text/html; q=0.7; level=1")
	require.Equal(t, "text/html", mr.Type)
	require.Equal(t, "0.7", mr.Params["q"])
	require.Equal(t, "1", mr.Params["level"])

	mr = davkit.ParseMediaRange("  text/plain  ")
	require.Equal(t, "text/plain", mr.Type)
	require.Empty(t, mr.Params)
}

func TestParseMediaRangeValuelessParam(t *testing.T) {
	t.Parallel()

	mr := davkit.ParseMediaRange("text/plain; charset")
	require.Equal(t, "text/plain", mr.Type)
	require.Equal(t, "", mr.Params["charset"])
}

func TestParseMediaRangeRepeatedParam(t *testing.T) {
	t.Parallel()

	mr := davkit.ParseMediaRange("text/plain; q=0.5; q=0.8")
	require.Equal(t, "0.8", mr.Params["q"])
}

func TestParseAccept(t *testing.T) {
	t.Parallel()

	mrs := davkit.ParseAccept("text/*;q=0.3, text/html;q=0.7, text/html;level=1, */*;q=0.5")
	require.Len(t, mrs, 4)

	require.Equal(t, "text/*", mrs[0].Type)
	require.Equal(t, "0.3", mrs[0].Params["q"])

	require.Equal(t, "text/html", mrs[1].Type)
	require.Equal(t, "0.7", mrs[1].Params["q"])

	require.Equal(t, "text/html", mrs[2].Type)
	require.Equal(t, "1", mrs[2].Params["level"])

	require.Equal(t, "*/*", mrs[3].Type)
	require.Equal(t, "0.5", mrs[3].Params["q"])
}

func TestParseAcceptEmptySegments(t *testing.T) {
	t.Parallel()

	mrs := davkit.ParseAccept("text/html,,text/plain")
	require.Len(t, mrs, 2)
	require.Equal(t, "text/html", mrs[0].Type)
	require.Equal(t, "text/plain", mrs[1].Type)
}
