package helpers

import (
	"fmt"
	"unicode/utf8"
)

const hexChars = "0123456789ABCDEF"
const firstASCII = 0x20
const lastASCII = 0x7E

func canPrintWithoutEscape(c rune) bool {
	if c <= lastASCII {
		return c >= firstASCII && c != '\\' && c != '"'
	}
	return c != '\uFEFF'
}

// QuoteForJSON encodes text as a double-quoted JSON string literal. The
// result is embedded verbatim into generated output, so the escaping here
// must match what a JavaScript or CSS parser will accept, not what an HTML
// embedder would prefer (the standard library escapes "<" and "&" for HTML
// safety, which would change emitted bytes).
//
// Encoding fails only if text is not valid UTF-8 and therefore has no JSON
// string representation.
func QuoteForJSON(text string) (string, error) {
	// Estimate the required length
	lenEstimate := 2
	for _, c := range text {
		if canPrintWithoutEscape(c) {
			lenEstimate += utf8.RuneLen(c)
		} else {
			switch c {
			case '\b', '\f', '\n', '\r', '\t', '\\', '"':
				lenEstimate += 2
			default:
				lenEstimate += 6
			}
		}
	}

	bytes := make([]byte, 0, lenEstimate)
	bytes = append(bytes, '"')
	i := 0
	n := len(text)

	for i < n {
		c, width := utf8.DecodeRuneInString(text[i:])
		if c == utf8.RuneError && width <= 1 {
			return "", fmt.Errorf("invalid UTF-8 at byte %d cannot be encoded as a JSON string", i)
		}

		// Fast path: a run of characters that don't need escaping
		if canPrintWithoutEscape(c) {
			start := i
			i += width
			for i < n {
				c, width = utf8.DecodeRuneInString(text[i:])
				if c == utf8.RuneError && width <= 1 {
					return "", fmt.Errorf("invalid UTF-8 at byte %d cannot be encoded as a JSON string", i)
				}
				if !canPrintWithoutEscape(c) {
					break
				}
				i += width
			}
			bytes = append(bytes, text[start:i]...)
			continue
		}

		switch c {
		case '\b':
			bytes = append(bytes, "\\b"...)
		case '\f':
			bytes = append(bytes, "\\f"...)
		case '\n':
			bytes = append(bytes, "\\n"...)
		case '\r':
			bytes = append(bytes, "\\r"...)
		case '\t':
			bytes = append(bytes, "\\t"...)
		case '\\':
			bytes = append(bytes, "\\\\"...)
		case '"':
			bytes = append(bytes, "\\\""...)
		default:
			bytes = append(
				bytes,
				'\\', 'u', hexChars[c>>12], hexChars[(c>>8)&15], hexChars[(c>>4)&15], hexChars[c&15],
			)
		}
		i += width
	}

	return string(append(bytes, '"')), nil
}
