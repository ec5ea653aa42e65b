package generation

import (
	"cmp"
	"encoding/json"
	"regexp"
	"slices"
	"strings"
)

var (
	// fenceMarkerRegex matches an opening or closing code fence, with an
	// optional language tag, so that only the markers are removed.
	fenceMarkerRegex = regexp.MustCompile("```[A-Za-z0-9_-]*")

	// fencedBlockRegex matches a whole fenced block including its body.
	fencedBlockRegex = regexp.MustCompile("(?s)```.*?```")

	// wrappingFenceRegex matches text that is entirely one fenced block and
	// captures the body. Fences inside the body are left alone.
	wrappingFenceRegex = regexp.MustCompile("(?s)^```[A-Za-z0-9_-]*\\s*(.*?)\\s*```$")
)

// candidateExtractor proposes a substring of raw model output that may be a
// JSON object. Extractors run in order; the first candidate that decodes wins.
type candidateExtractor func(raw string) []string

var extractors = []candidateExtractor{
	// 1. unwrap a fence around the whole payload, then cut to the outermost braces
	func(raw string) []string {
		return []string{outermostObject(unwrapFence(raw))}
	},
	// 2. drop fenced blocks altogether; the JSON sits in the surrounding prose
	func(raw string) []string {
		return []string{strings.TrimSpace(fencedBlockRegex.ReplaceAllString(raw, ""))}
	},
	// 3. outermost braces of the untouched text
	func(raw string) []string {
		return []string{outermostObject(raw)}
	},
	// 4. brace-balanced scan from every opening brace
	balancedObjects,
}

// DecodeJSON locates the JSON object embedded in raw model output and decodes
// it into T. Models routinely wrap JSON in prose or markdown fences; DecodeJSON
// only locates the object and never repairs malformed JSON. When nothing
// decodes it returns a *ParseError.
func DecodeJSON[T any](raw string) (T, error) {
	for _, extract := range extractors {
		for _, candidate := range extract(raw) {
			if candidate == "" || candidate[0] != '{' {
				continue
			}
			var out T
			if err := json.Unmarshal([]byte(candidate), &out); err == nil {
				return out, nil
			}
		}
	}

	var zero T
	return zero, newParseError(raw)
}

// CleanText strips fence markers and surrounding whitespace from free-text
// model output.
func CleanText(raw string) string {
	return strings.TrimSpace(fenceMarkerRegex.ReplaceAllString(raw, ""))
}

// outermostObject returns s cut to its first '{' and last '}', or "" when s
// holds no such pair.
func outermostObject(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// unwrapFence returns the body of s when s, trimmed, is a single fenced
// block, and the trimmed s otherwise.
func unwrapFence(s string) string {
	s = strings.TrimSpace(s)
	if m := wrappingFenceRegex.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return s
}

// balancedObjects returns every brace-balanced substring of s, ordered by
// where it starts. It makes one pass from the first '{' with a stack of open
// braces, so unmatched braces cost nothing extra. Quotes only delimit strings
// while some brace is open; outside that they are prose.
func balancedObjects(s string) []string {
	type span struct{ start, end int }

	var (
		spans    []span
		open     []int
		inString bool
		escaped  bool
	)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = len(open) > 0
		case '{':
			open = append(open, i)
		case '}':
			if n := len(open); n > 0 {
				spans = append(spans, span{start: open[n-1], end: i})
				open = open[:n-1]
			}
		}
	}

	slices.SortFunc(spans, func(a, b span) int { return cmp.Compare(a.start, b.start) })
	out := make([]string, 0, len(spans))
	for _, sp := range spans {
		out = append(out, s[sp.start:sp.end+1])
	}
	return out
}
