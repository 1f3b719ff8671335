package davkit

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidQValue = errors.New("invalid q value")

type rankedRange struct {
	pattern string
	quality float64
}

// Negotiation is the result of a content type negotiation: a lazy, finite
// sequence of acceptable content types in order of client preference.
//
// The sequence consumes its candidate pool as it goes, so a Negotiation is
// single-use; build a fresh one per request with NegotiateContentTypes.
type Negotiation struct {
	ranked []rankedRange
	pool   map[string]struct{}
	batch  []string
}

// NegotiateContentTypes ranks the accepted media ranges against the content
// types the server can offer. Ranges carry a q parameter (default 1); ranges
// with q <= 0 never match. A q value that does not parse as a decimal number
// is a fatal input error.
func NegotiateContentTypes(accepted []MediaRange, available []string) (*Negotiation, error) {
	ranked := []rankedRange{}

	for _, mr := range accepted {
		qs, ok := mr.Params["q"]
		if !ok {
			qs = "1"
		}

		quality, err := strconv.ParseFloat(qs, 64)
		if err != nil {
			return nil, fmt.Errorf("%s (%w)", qs, ErrInvalidQValue)
		}

		if quality <= 0 {
			continue
		}

		ranked = append(ranked, rankedRange{
			pattern: mr.Type,
			quality: quality,
		})
	}

	// Stable ascending sort followed by a full reversal. This is not the
	// same as a single descending stable sort: ranges with equal quality
	// come out in the reverse of their declaration order.
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].quality < ranked[j].quality })

	for i, j := 0, len(ranked)-1; i < j; i, j = i+1, j-1 {
		ranked[i], ranked[j] = ranked[j], ranked[i]
	}

	pool := map[string]struct{}{}
	for _, ct := range available {
		pool[ct] = struct{}{}
	}

	return &Negotiation{
		ranked: ranked,
		pool:   pool,
	}, nil
}

// Next returns the next acceptable content type, or false when the sequence
// is exhausted. Each range's matches are emitted in lexicographic order, and
// a matched content type is removed from the pool so no type is offered
// twice.
func (neg *Negotiation) Next() (string, bool) {
	for {
		if len(neg.batch) > 0 {
			ct := neg.batch[0]
			neg.batch = neg.batch[1:]

			return ct, true
		}

		if len(neg.ranked) == 0 {
			return "", false
		}

		rr := neg.ranked[0]
		neg.ranked = neg.ranked[1:]

		batch := []string{}

		// A malformed pattern matches nothing.
		re, err := compilePattern(rr.pattern)
		if err == nil {
			for ct := range neg.pool {
				if re.MatchString(ct) {
					batch = append(batch, ct)
				}
			}
		}

		sort.Strings(batch)

		for _, ct := range batch {
			delete(neg.pool, ct)
		}

		neg.batch = batch
	}
}

// compilePattern translates a glob pattern into an anchored regexp. "*"
// matches any run of characters, "/" included; "?" matches any single
// character; "[...]" is a character class, negated by a leading "!".
func compilePattern(pattern string) (*regexp.Regexp, error) {
	b := strings.Builder{}
	b.WriteString("^")

	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; c {
		case '*':
			b.WriteString(".*")

		case '?':
			b.WriteString(".")

		case '[':
			j := i + 1

			if j < len(pattern) && (pattern[j] == '!' || pattern[j] == '^') {
				j++
			}

			// A "]" immediately after the opener is a literal member.
			if j < len(pattern) && pattern[j] == ']' {
				j++
			}

			for j < len(pattern) && pattern[j] != ']' {
				j++
			}

			if j >= len(pattern) {
				return nil, fmt.Errorf("unterminated character class: %s", pattern)
			}

			b.WriteString("[")

			if pattern[i+1] == '!' {
				b.WriteString("^")
				b.WriteString(pattern[i+2 : j])
			} else {
				b.WriteString(pattern[i+1 : j])
			}

			b.WriteString("]")

			i = j

		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString("$")

	return regexp.Compile(b.String())
}

// All drains the rest of the sequence.
func (neg *Negotiation) All() []string {
	ret := []string{}

	for {
		ct, ok := neg.Next()
		if !ok {
			return ret
		}

		ret = append(ret, ct)
	}
}
