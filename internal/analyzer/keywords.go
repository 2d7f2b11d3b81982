// Relevance - Content Recommendation and Similarity Engine
// Copyright 2026 The Unipub Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/unipub/relevance

package analyzer

import (
	"regexp"
	"sort"
	"strings"
)

// Keyword is one stemmed word with its raw frequency in a document.
type Keyword struct {
	Stem  string
	Count int
}

// KeywordSet is an ordered sequence of keywords, sorted descending by
// frequency with ties kept in first-encountered order.
type KeywordSet []Keyword

// Counts returns the set as a stem to frequency map.
func (ks KeywordSet) Counts() map[string]int {
	m := make(map[string]int, len(ks))
	for _, kw := range ks {
		m[kw.Stem] = kw.Count
	}
	return m
}

// tagPattern matches markup tags so HTML-bearing document bodies reduce
// to their visible text.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stopWords are common function words excluded from keyword extraction.
// Words of three characters or fewer are already dropped by the length
// filter, so only longer ones appear here.
var stopWords = map[string]struct{}{
	"that": {}, "with": {}, "have": {}, "this": {}, "will": {},
	"your": {}, "from": {}, "they": {}, "been": {}, "good": {},
	"much": {}, "some": {}, "time": {}, "very": {}, "when": {},
	"come": {}, "here": {}, "just": {}, "like": {}, "long": {},
	"make": {}, "many": {}, "more": {}, "most": {}, "over": {},
	"such": {}, "take": {}, "than": {}, "them": {}, "then": {},
	"well": {}, "were": {}, "what": {}, "want": {}, "know": {},
	"about": {}, "after": {}, "again": {}, "also": {}, "because": {},
	"before": {}, "being": {}, "between": {}, "both": {}, "could": {},
	"does": {}, "each": {}, "even": {}, "into": {}, "only": {},
	"other": {}, "should": {}, "since": {}, "their": {}, "there": {},
	"these": {}, "those": {}, "through": {}, "under": {}, "until": {},
	"where": {}, "which": {}, "while": {}, "would": {},
}

// suffixes is the fixed stemming priority list. The first matching
// suffix is stripped; order matters and is part of the scoring
// behavior, so do not reorder or "fix" it.
var suffixes = []string{
	"ing", "tion", "ness", "ment", "ity", "ies",
	"es", "ed", "er", "est", "ly", "s",
}

// minTokenLen is the length below which tokens and stems are discarded.
const minTokenLen = 4

// stem strips the first applicable suffix from word, but only when the
// remaining stem stays longer than three characters. Words with no
// applicable suffix pass through unchanged.
func stem(word string) string {
	for _, suffix := range suffixes {
		if strings.HasSuffix(word, suffix) {
			remaining := word[:len(word)-len(suffix)]
			if len(remaining) > 3 {
				return remaining
			}
		}
	}
	return word
}

// normalize lowercases text, strips markup tags, and replaces every
// character that is not a lowercase letter or whitespace with a space.
func normalize(text string) string {
	text = tagPattern.ReplaceAllString(text, " ")
	text = strings.ToLower(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune(' ')
		default:
			b.WriteRune(' ')
		}
	}
	return b.String()
}

// ExtractKeywords extracts the limit most frequent stemmed keywords
// from text. Tokens of length three or fewer and stop words are
// dropped before stemming. The result is sorted descending by
// frequency; ties keep first-encountered order. A pure function:
// identical input always yields identical output.
//
// Empty or all-stop-word text yields an empty set, not an error.
func ExtractKeywords(text string, limit int) KeywordSet {
	if limit <= 0 || text == "" {
		return nil
	}

	counts := make(map[string]int)
	var order []string

	for _, token := range strings.Fields(normalize(text)) {
		if len(token) < minTokenLen {
			continue
		}
		if _, isStop := stopWords[token]; isStop {
			continue
		}
		s := stem(token)
		if _, seen := counts[s]; !seen {
			order = append(order, s)
		}
		counts[s]++
	}

	keywords := make(KeywordSet, 0, len(order))
	for _, s := range order {
		keywords = append(keywords, Keyword{Stem: s, Count: counts[s]})
	}

	// Stable sort keeps first-encountered order among equal counts.
	sort.SliceStable(keywords, func(i, j int) bool {
		return keywords[i].Count > keywords[j].Count
	})

	if len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}
