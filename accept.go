package davkit

import "strings"

// MediaRange is a single element of an Accept-style header: a content type
// pattern plus its parameters (e.g. "text/*; q=0.5").
type MediaRange struct {
	Type   string
	Params map[string]string
}

// ParseMediaRange parses a content-type style value into its base type and
// parameters. Parsing is total: a missing "=" yields an empty parameter
// value, a missing ";" yields no parameters, and a repeated key keeps the
// last occurrence.
func ParseMediaRange(s string) MediaRange {
	ret := MediaRange{
		Params: map[string]string{},
	}

	s = strings.TrimSpace(s)

	base, rest, found := strings.Cut(s, ";")

	ret.Type = strings.TrimSpace(base)

	if !found {
		return ret
	}

	for _, param := range strings.Split(rest, ";") {
		key, val, _ := strings.Cut(param, "=")
		ret.Params[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}

	return ret
}

// ParseAccept parses an Accept-style header into its media ranges, in
// declaration order. Empty segments (consecutive commas) are skipped.
func ParseAccept(s string) []MediaRange {
	ret := []MediaRange{}

	for _, part := range strings.Split(s, ",") {
		if part == "" {
			continue
		}

		ret = append(ret, ParseMediaRange(part))
	}

	return ret
}
