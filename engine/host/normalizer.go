package host

import (
	"strings"

	"github.com/compozy/netwatchgen/engine/core"
)

// Stats reports how many data rows were kept and dropped.
type Stats struct {
	Rows     int `json:"rows"`
	Accepted int `json:"accepted"`
	Dropped  int `json:"dropped"`
}

// Normalize parses raw into validated records. Rows whose MAC or IP is
// invalid are dropped; the hostname is kept verbatim. An input without a
// header row yields an empty set.
func Normalize(raw []byte, kind FileKind) (RecordSet, error) {
	records, _, err := NormalizeWithStats(raw, kind)
	return records, err
}

// NormalizeWithStats is Normalize that also reports row counts.
func NormalizeWithStats(raw []byte, kind FileKind) (RecordSet, Stats, error) {
	t, err := readTable(raw, kind)
	if err != nil {
		return nil, Stats{}, err
	}
	if len(t.headers) == 0 {
		return RecordSet{}, Stats{}, nil
	}
	columns, missing := resolveColumns(t.headers)
	if len(missing) > 0 {
		names := make([]string, len(missing))
		for i, f := range missing {
			names[i] = string(f)
		}
		return nil, Stats{}, core.NewErrorf(
			core.ErrSchemaCode,
			"missing required columns in the input file: %s",
			strings.Join(names, ", "),
		).WithDetail("missing", names)
	}
	records := make(RecordSet, 0, len(t.rows))
	for _, row := range t.rows {
		if rec, ok := validate(columns.record(row)); ok {
			records = append(records, rec)
		}
	}
	stats := Stats{
		Rows:     len(t.rows),
		Accepted: len(records),
		Dropped:  len(t.rows) - len(records),
	}
	return records, stats, nil
}

func validate(raw RawRecord) (Record, bool) {
	mac, ok := normalizeMACValue(raw.MAC).Get()
	if !ok {
		return Record{}, false
	}
	ip, ok := validateIPValue(raw.IP).Get()
	if !ok {
		return Record{}, false
	}
	var hostname string
	if raw.Hostname != nil {
		hostname = raw.Hostname.Text
	}
	return Record{Hostname: hostname, MAC: mac, IP: ip}, true
}
