package host

import "strings"

// Field identifies one of the canonical columns.
type Field string

const (
	FieldHostname Field = "HOSTNAME"
	FieldMAC      Field = "MAC"
	FieldIP       Field = "IP"
)

// RequiredFields lists the canonical columns in output order.
var RequiredFields = []Field{FieldHostname, FieldMAC, FieldIP}

// columnAliases maps accepted header spellings, already trimmed and
// uppercased, to canonical fields.
var columnAliases = map[string]Field{
	"HOSTNAME":    FieldHostname,
	"DEVICE NAME": FieldHostname,
	"MAC":         FieldMAC,
	"MAC ADDRESS": FieldMAC,
	"IP":          FieldIP,
	"IP ADDRESS":  FieldIP,
}

// NormalizeHeader trims and uppercases a header.
func NormalizeHeader(h string) string {
	return strings.ToUpper(strings.TrimSpace(h))
}

// ResolveHeader maps a raw header to its canonical field.
func ResolveHeader(h string) (Field, bool) {
	f, ok := columnAliases[NormalizeHeader(h)]
	return f, ok
}

// columnIndex records which source column feeds each canonical field.
type columnIndex map[Field]int

// resolveColumns builds the column index for a header row. The first
// header resolving to a field wins; unknown headers are ignored.
func resolveColumns(headers []string) (columnIndex, []Field) {
	idx := make(columnIndex, len(RequiredFields))
	for i, h := range headers {
		f, ok := ResolveHeader(h)
		if !ok {
			continue
		}
		if _, seen := idx[f]; seen {
			continue
		}
		idx[f] = i
	}
	var missing []Field
	for _, f := range RequiredFields {
		if _, ok := idx[f]; !ok {
			missing = append(missing, f)
		}
	}
	return idx, missing
}

func (c columnIndex) record(row []Value) RawRecord {
	return RawRecord{
		Hostname: c.cell(row, FieldHostname),
		MAC:      c.cell(row, FieldMAC),
		IP:       c.cell(row, FieldIP),
	}
}

func (c columnIndex) cell(row []Value, f Field) *Value {
	i, ok := c[f]
	if !ok {
		return nil
	}
	if i >= len(row) {
		return &Value{Kind: KindEmpty}
	}
	v := row[i]
	return &v
}
