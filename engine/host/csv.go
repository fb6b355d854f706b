package host

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// EncodeCSV writes the cleaned CSV artifact with a HOSTNAME,MAC,IP header.
func EncodeCSV(records RecordSet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := make([]string, len(RequiredFields))
	for i, f := range RequiredFields {
		header[i] = string(f)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range records {
		if err := w.Write([]string{r.Hostname, r.MAC, r.IP}); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}
