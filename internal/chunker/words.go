package chunker

import "strings"

// WordCount counts whitespace-separated words. Word counts, not tokens,
// bound subsections — the downstream classifier's capacity is advisory
// and exact tokenization is not required.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
