package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Fallback span widths. When a fragment cannot be located literally (e.g. a
// synthesized label like "missing type specifications") the resolver returns
// a fixed-width span at the start of the prompt instead of failing.
const (
	fallbackSpanWidth = 50
	snippetSpanWidth  = 30
)

// LocateFragment finds fragment inside original with a case-insensitive
// search and returns its half-open byte span. If the fragment does not
// occur, it returns FallbackSpan(original, 50). Callers must tolerate
// approximate spans for synthetic suggestions.
func LocateFragment(original, fragment string) Span {
	if fragment == "" {
		return FallbackSpan(original, fallbackSpanWidth)
	}

	if span, ok := foldIndex(original, fragment); ok {
		return span
	}

	return FallbackSpan(original, fallbackSpanWidth)
}

// foldIndex finds the first case-insensitive occurrence of fragment and
// returns its byte span in s. Lowercasing is not byte-length-preserving
// (U+023A is 2 bytes, its lowercase U+2C65 is 3), so the search runs over a
// lowered copy carrying a byte-offset map back into s.
func foldIndex(s, fragment string) (Span, bool) {
	loweredFragment := strings.ToLower(fragment)
	if loweredFragment == "" {
		return Span{}, false
	}

	var lowered strings.Builder
	lowered.Grow(len(s))
	offsets := make([]int, 0, len(s))
	for i, r := range s {
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], unicode.ToLower(r))
		lowered.Write(buf[:n])
		for j := 0; j < n; j++ {
			offsets = append(offsets, i)
		}
	}

	idx := strings.Index(lowered.String(), loweredFragment)
	if idx < 0 {
		return Span{}, false
	}

	start := offsets[idx]
	last := offsets[idx+len(loweredFragment)-1]
	_, size := utf8.DecodeRuneInString(s[last:])
	return Span{Start: start, End: last + size}, true
}

// FallbackSpan returns the deterministic span (0, min(width, len(original))).
func FallbackSpan(original string, width int) Span {
	if len(original) < width {
		width = len(original)
	}
	return Span{Start: 0, End: width}
}

// snippet returns roughly the first width bytes of text with an ellipsis when
// truncated, backing off to a rune boundary so the cut never produces
// invalid UTF-8.
func snippet(text string, width int) string {
	if len(text) <= width {
		return text
	}
	for width > 0 && !utf8.RuneStart(text[width]) {
		width--
	}
	return text[:width] + "..."
}
