package internal

import "strings"

// ExtractReadableStrings pulls maximal runs of printable ASCII of at least
// minLen bytes out of raw binary data. Used on protobuf-encoded values
// whose schema is unknown; decoupled from the JSON matchers so it can be
// tested with arbitrary byte fixtures.
func ExtractReadableStrings(data []byte, minLen int) []string {
	var out []string
	var current strings.Builder
	for _, b := range data {
		if b >= 0x20 && b < 0x7F {
			current.WriteByte(b)
			continue
		}
		if current.Len() >= minLen {
			out = append(out, current.String())
		}
		current.Reset()
	}
	if current.Len() >= minLen {
		out = append(out, current.String())
	}
	return out
}

// titleCandidate reports whether a printable run looks like human text:
// alphanumerics, whitespace and common punctuation only.
func titleCandidate(s string) bool {
	if len(s) < 10 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == ' ' || c == '\t':
		case strings.ContainsRune(".,;:!?-_'\"()", c):
		default:
			return false
		}
	}
	return true
}
