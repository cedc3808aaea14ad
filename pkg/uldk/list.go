package uldk

import "strings"

// ParseUnitList parses the pipe-delimited unit list format: the first line
// is a header and is discarded, each remaining non-empty line is
// "label|value". Lines without a pipe are dropped. Order follows the
// response.
func ParseUnitList(raw string) []Option {
	lines := strings.Split(raw, "\n")

	opts := make([]Option, 0, len(lines))
	for i, line := range lines {
		if i == 0 {
			continue // header
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		label, value, ok := strings.Cut(line, "|")
		if !ok {
			continue
		}
		opts = append(opts, Option{Label: label, Value: value})
	}
	return opts
}
