package host

// ValueKind classifies a raw cell so non-text MAC/IP values can be
// rejected instead of coerced.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindText
	KindNumber
	KindBool
	KindOther
)

// Value is a single raw cell as read from the source file.
type Value struct {
	Text string
	Kind ValueKind
}

// TextValue builds a text cell, or an empty one for "".
func TextValue(s string) Value {
	if s == "" {
		return Value{Kind: KindEmpty}
	}
	return Value{Text: s, Kind: KindText}
}

// AsText returns the cell content only when the cell holds text.
func (v Value) AsText() (string, bool) {
	if v.Kind != KindText {
		return "", false
	}
	return v.Text, true
}

// RawRecord is a row after header resolution and before validation.
// Fields the row did not carry are nil.
type RawRecord struct {
	Hostname *Value
	MAC      *Value
	IP       *Value
}

// Record is a validated host entry eligible for output.
type Record struct {
	Hostname string `json:"hostname"`
	MAC      string `json:"mac"`
	IP       string `json:"ip"`
}

// RecordSet keeps records in source order.
type RecordSet []Record
