package davkit_test

import (
	"testing"

	"github.com/davkit/davkit"
	"github.com/stretchr/testify/require"
)

func negotiate(t *testing.T, accept string, available []string) []string {
	neg, err := davkit.NegotiateContentTypes(davkit.ParseAccept(accept), available)
	require.NoError(t, err)

	return neg.All()
}

func TestNegotiatePreferenceOrder(t *testing.T) {
	t.Parallel()

	got := negotiate(t,
		"text/*;q=0.3, text/html;q=0.7, text/html;level=1, */*;q=0.5",
		[]string{"text/plain", "text/html", "text/x-dvi", "text/x-c"},
	)

	require.Equal(t, []string{"text/html", "text/plain", "text/x-c", "text/x-dvi"}, got)
}

func TestNegotiateExact(t *testing.T) {
	t.Parallel()

	got := negotiate(t, "text/plain", []string{"text/plain", "text/html"})
	require.Equal(t, []string{"text/plain"}, got)
}

func TestNegotiateEqualQualityReversed(t *testing.T) {
	t.Parallel()

	// Equal quality ranges are processed in reverse declaration order.
	got := negotiate(t, "a/x, a/y", []string{"a/x", "a/y"})
	require.Equal(t, []string{"a/y", "a/x"}, got)
}

func TestNegotiateNoDuplicates(t *testing.T) {
	t.Parallel()

	got := negotiate(t, "text/*, */*", []string{"text/plain", "text/html"})
	require.Equal(t, []string{"text/html", "text/plain"}, got)
}

func TestNegotiateZeroQualityDropped(t *testing.T) {
	t.Parallel()

	got := negotiate(t, "text/html;q=0, text/plain", []string{"text/plain", "text/html"})
	require.Equal(t, []string{"text/plain"}, got)
}

func TestNegotiateInvalidQuality(t *testing.T) {
	t.Parallel()

	_, err := davkit.NegotiateContentTypes(
		davkit.ParseAccept("text/html;q=foo"),
		[]string{"text/html"},
	)
	require.ErrorIs(t, err, davkit.ErrInvalidQValue)
}

func TestNegotiateLazy(t *testing.T) {
	t.Parallel()

	neg, err := davkit.NegotiateContentTypes(
		davkit.ParseAccept("text/html, */*;q=0.5"),
		[]string{"text/plain", "text/html", "image/png"},
	)
	require.NoError(t, err)

	ct, ok := neg.Next()
	require.True(t, ok)
	require.Equal(t, "text/html", ct)

	ct, ok = neg.Next()
	require.True(t, ok)
	require.Equal(t, "image/png", ct)

	ct, ok = neg.Next()
	require.True(t, ok)
	require.Equal(t, "text/plain", ct)

	_, ok = neg.Next()
	require.False(t, ok)

	// Exhausted sequences stay exhausted.
	_, ok = neg.Next()
	require.False(t, ok)
}

func TestNegotiateBareWildcard(t *testing.T) {
	t.Parallel()

	// "*" spans the "/" separator and matches every candidate.
	got := negotiate(t, "*", []string{"text/plain", "text/html"})
	require.Equal(t, []string{"text/html", "text/plain"}, got)
}

func TestNegotiatePrefixWildcard(t *testing.T) {
	t.Parallel()

	got := negotiate(t, "text*", []string{"text/plain", "image/png"})
	require.Equal(t, []string{"text/plain"}, got)
}

func TestNegotiateQualityOverWildcard(t *testing.T) {
	t.Parallel()

	got := negotiate(t,
		"text/*;q=0.5, text/plain;q=0.8",
		[]string{"text/plain", "text/html", "text/x-dvi", "text/x-c"},
	)

	require.Equal(t, []string{"text/plain", "text/html", "text/x-c", "text/x-dvi"}, got)
}

func TestNegotiateCharClass(t *testing.T) {
	t.Parallel()

	got := negotiate(t, "text/[ph]*", []string{"text/plain", "text/html", "image/png"})
	require.Equal(t, []string{"text/html", "text/plain"}, got)
}

func TestNegotiateSingleCharWildcard(t *testing.T) {
	t.Parallel()

	got := negotiate(t, "text/pla?n", []string{"text/plain", "text/html"})
	require.Equal(t, []string{"text/plain"}, got)
}

func TestNegotiateMalformedPattern(t *testing.T) {
	t.Parallel()

	got := negotiate(t, "text/[a", []string{"text/a", "text/plain"})
	require.Empty(t, got)
}

func TestNegotiateNoMatch(t *testing.T) {
	t.Parallel()

	got := negotiate(t, "application/json", []string{"text/plain"})
	require.Empty(t, got)
}
