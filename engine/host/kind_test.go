package host

import (
	"testing"

	"github.com/compozy/netwatchgen/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromKey(t *testing.T) {
	t.Run("Should map extensions ignoring case", func(t *testing.T) {
		cases := map[string]FileKind{
			"input/hosts.csv":         FileCSV,
			"input/hosts.CSV":         FileCSV,
			"input/site/hosts.xlsx":   FileSpreadsheet,
			"input/hosts.backup.XLSX": FileSpreadsheet,
		}
		for key, want := range cases {
			got, err := KindFromKey(key)
			require.NoError(t, err, key)
			assert.Equal(t, want, got, key)
		}
	})

	t.Run("Should fail with a format error for other extensions", func(t *testing.T) {
		for _, key := range []string{"input/hosts.xls", "input/hosts.txt", "input/hosts"} {
			_, err := KindFromKey(key)
			require.Error(t, err, key)
			assert.ErrorIs(t, err, core.ErrFormat)
		}
	})
}

func TestSniffKind(t *testing.T) {
	t.Run("Should accept text for CSV", func(t *testing.T) {
		require.NoError(t, SniffKind([]byte("HOSTNAME,MAC,IP\n"), FileCSV))
		require.NoError(t, SniffKind(nil, FileCSV))
	})

	t.Run("Should accept workbooks for spreadsheets", func(t *testing.T) {
		raw := buildWorkbook(t, [][]any{{"Hostname", "MAC", "IP"}})
		require.NoError(t, SniffKind(raw, FileSpreadsheet))
	})

	t.Run("Should reject text declared as spreadsheet", func(t *testing.T) {
		err := SniffKind([]byte("HOSTNAME,MAC,IP\n"), FileSpreadsheet)
		assert.ErrorIs(t, err, core.ErrFormat)
	})

	t.Run("Should reject a workbook declared as CSV", func(t *testing.T) {
		raw := buildWorkbook(t, [][]any{{"Hostname", "MAC", "IP"}})
		err := SniffKind(raw, FileCSV)
		assert.ErrorIs(t, err, core.ErrFormat)
	})
}
