package host

import "regexp"

// ipv4Pattern accepts dotted quads with every octet in [0,255]. Leading
// zeros are tolerated, matching what operators paste from spreadsheets.
var ipv4Pattern = regexp.MustCompile(
	`^((25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)\.){3}(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)$`,
)

// ValidateIP returns the address unchanged when it is a dotted-quad IPv4.
func ValidateIP(raw string) Result[string] {
	if !ipv4Pattern.MatchString(raw) {
		return Invalid[string]()
	}
	return Valid(raw)
}

func validateIPValue(v *Value) Result[string] {
	if v == nil {
		return Invalid[string]()
	}
	s, ok := v.AsText()
	if !ok {
		return Invalid[string]()
	}
	return ValidateIP(s)
}
