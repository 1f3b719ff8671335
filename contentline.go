package davkit

import "strings"

const propIndexPrefix = "P="

// unfoldLines returns the logical content lines of a text/vcard or
// text/calendar body: folded lines are joined (dropping the line break plus
// exactly one leading whitespace character), trailing whitespace is trimmed,
// and blank lines are skipped.
func unfoldLines(content []byte) []string {
	ret := []string{}

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimRight(line, "\r \t")

		if line == "" {
			continue
		}

		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(ret) > 0 {
			ret[len(ret)-1] += line[1:]
			continue
		}

		ret = append(ret, line)
	}

	return ret
}

// propValues returns the values of the named property. Property parameters
// (e.g. "TEL;TYPE=home") are ignored for lookup; names are case insensitive.
func propValues(lines []string, name string) []string {
	ret := []string{}

	for _, line := range lines {
		key, val, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		key, _, _ = strings.Cut(key, ";")

		if strings.EqualFold(key, name) {
			ret = append(ret, val)
		}
	}

	return ret
}
