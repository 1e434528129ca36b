// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import "strings"

// DefaultSummaryWords is the word count summaries are truncated to when the
// configuration does not set one.
const DefaultSummaryWords = 50

// TruncateSummary bounds text to maxWords whitespace-separated words. Text at
// or under the limit is returned unchanged, original spacing included; longer
// text becomes the first maxWords words rejoined with single spaces plus an
// ellipsis. Non-positive maxWords falls back to DefaultSummaryWords.
func TruncateSummary(text string, maxWords int) string {
	if maxWords <= 0 {
		maxWords = DefaultSummaryWords
	}
	words := strings.Fields(text)
	if len(words) <= maxWords {
		return text
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
