package sentiment

import (
	"regexp"
	"strings"
)

var (
	urlPattern     = regexp.MustCompile(`(?m)(http\S+|www\S+|https\S+)`)
	mentionPattern = regexp.MustCompile(`@\w+|#`)
)

// CleanText strips URLs, @mentions and hash markers, trims whitespace and
// truncates to maxLength runes. This is the normalization applied before the
// learned-model scorer; the lexicon scorer always sees the raw text.
func CleanText(text string, maxLength int) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = mentionPattern.ReplaceAllString(text, "")
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) > maxLength {
		return string(runes[:maxLength])
	}
	return text
}

// ExtractKeywords returns up to topN distinct lowercase tokens longer than
// three characters, ranked by frequency within the text. Frequency ties keep
// the order in which tokens first appeared, so repeated runs on the same
// input always produce the same list.
func ExtractKeywords(text string, topN int) []string {
	counts := map[string]int{}
	order := []string{}
	for _, word := range strings.Fields(text) {
		if len(word) <= 3 {
			continue
		}
		w := strings.ToLower(word)
		if _, seen := counts[w]; !seen {
			order = append(order, w)
		}
		counts[w]++
	}

	// Stable selection sort over the first-seen order: descending frequency,
	// first-seen wins ties.
	keywords := make([]string, len(order))
	copy(keywords, order)
	for i := 1; i < len(keywords); i++ {
		for j := i; j > 0 && counts[keywords[j]] > counts[keywords[j-1]]; j-- {
			keywords[j], keywords[j-1] = keywords[j-1], keywords[j]
		}
	}

	if len(keywords) > topN {
		keywords = keywords[:topN]
	}
	return keywords
}
