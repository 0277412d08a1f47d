package spec

import "strings"

// Characters that cannot appear literally in a field=value path segment.
// The set follows Hive-style partition path encoding, which is what the
// storage layout uses; URL escaping is close but not identical, so the
// escaper is written out here.
func needsEscape(c byte) bool {
	switch {
	case c < 0x20:
		return true
	case c == '"', c == '#', c == '%', c == '\'', c == '*', c == ',',
		c == '/', c == ':', c == '=', c == '?', c == '\\', c == 0x7f:
		return true
	}
	return false
}

const upperhex = "0123456789ABCDEF"

// EscapePathValue percent-encodes the reserved characters of a partition
// value so it can be embedded in one field=value path segment.
func EscapePathValue(value string) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		c := value[i]
		if needsEscape(c) {
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&0x0f])
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
