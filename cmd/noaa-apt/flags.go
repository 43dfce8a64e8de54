package main

import (
	"strings"
)

/*
 * quotePairs are the opening/closing quote characters sanitizeFlagPath
 * will strip a single matching layer of.
 */
const quotePairs = `"'`

/*
 * sanitizeFlagPath trims surrounding whitespace from a path-valued flag
 * and, if what remains is wrapped in one matching pair of quotes, strips
 * that pair too. Paths pasted into a terminal from a file manager or a
 * shell history entry often arrive with the quoting still attached.
 */
func sanitizeFlagPath(raw string) string {
	trimmed := strings.TrimSpace(raw)
	last := len(trimmed) - 1

	if last < 1 {
		return trimmed
	}

	open := trimmed[0]
	shut := trimmed[last]

	if open == shut && strings.IndexByte(quotePairs, open) >= 0 {
		return trimmed[1:last]
	}

	return trimmed
}
