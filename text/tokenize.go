// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package text

import "strings"

// Boilerplate words that carry no discriminating signal in clinical labels.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "with": {}, "without": {}, "of": {}, "in": {},
	"on": {}, "to": {}, "for": {}, "from": {}, "by": {}, "at": {}, "or": {},
	"disease": {}, "disorder": {}, "syndrome": {}, "acute": {}, "chronic": {},
	"unspecified": {}, "other": {}, "site": {}, "due": {}, "type": {},
}

// Tokenize splits normalized text into content tokens. Stopwords and tokens
// shorter than three characters are dropped. The result preserves order and
// may contain duplicates.
func Tokenize(normalized string) []string {
	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, skip := stopwords[f]; skip {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// TokenSet returns the deduplicated token set of normalized text.
func TokenSet(normalized string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range Tokenize(normalized) {
		set[t] = struct{}{}
	}
	return set
}

// TokenOverlap computes |A ∩ B| / max(|A|, |B|) over the token sets of two
// normalized strings. Returns 0 when either side has no tokens.
func TokenOverlap(a, b string) float64 {
	sa, sb := TokenSet(a), TokenSet(b)
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := intersectionSize(sa, sb)
	maxLen := len(sa)
	if len(sb) > maxLen {
		maxLen = len(sb)
	}
	return float64(inter) / float64(maxLen)
}

// Jaccard computes |A ∩ B| / |A ∪ B| over the token sets of two normalized
// strings. Returns 0 when both sides are empty.
func Jaccard(a, b string) float64 {
	sa, sb := TokenSet(a), TokenSet(b)
	inter := intersectionSize(sa, sb)
	union := len(sa) + len(sb) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// IsStrictSubset reports whether the token set of a is a strict subset of the
// token set of b. Empty or equal sets are never strict subsets.
func IsStrictSubset(a, b string) bool {
	sa, sb := TokenSet(a), TokenSet(b)
	if len(sa) == 0 || len(sa) >= len(sb) {
		return false
	}
	for t := range sa {
		if _, ok := sb[t]; !ok {
			return false
		}
	}
	return true
}

func intersectionSize(a, b map[string]struct{}) int {
	if len(b) < len(a) {
		a, b = b, a
	}
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}
