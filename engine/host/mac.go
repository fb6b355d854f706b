package host

import "strings"

const macHexDigits = 12

// NormalizeMAC strips every non-hex character and, when exactly twelve
// digits remain, returns them lowercased in colon-separated pairs.
func NormalizeMAC(raw string) Result[string] {
	var digits strings.Builder
	digits.Grow(macHexDigits)
	for i := 0; i < len(raw); i++ {
		if isHex(raw[i]) {
			digits.WriteByte(raw[i])
		}
	}
	if digits.Len() != macHexDigits {
		return Invalid[string]()
	}
	hex := strings.ToLower(digits.String())
	var out strings.Builder
	out.Grow(macHexDigits + 5)
	for i := 0; i < macHexDigits; i += 2 {
		if i > 0 {
			out.WriteByte(':')
		}
		out.WriteString(hex[i : i+2])
	}
	return Valid(out.String())
}

func normalizeMACValue(v *Value) Result[string] {
	if v == nil {
		return Invalid[string]()
	}
	s, ok := v.AsText()
	if !ok {
		return Invalid[string]()
	}
	return NormalizeMAC(s)
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
