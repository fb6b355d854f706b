package host

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/compozy/netwatchgen/engine/core"
	"github.com/xuri/excelize/v2"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// table is a parsed tabular file: a header row and data rows.
type table struct {
	headers []string
	rows    [][]Value
}

func readTable(raw []byte, kind FileKind) (*table, error) {
	switch kind {
	case FileCSV:
		return readCSV(raw)
	case FileSpreadsheet:
		return readSpreadsheet(raw)
	default:
		return nil, core.NewErrorf(core.ErrFormatCode, "unsupported file kind %q", kind)
	}
}

func readCSV(raw []byte) (*table, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)))
	r.FieldsPerRecord = -1
	// A stray quote inside an unquoted field is kept as a literal.
	r.LazyQuotes = true
	t := &table{}
	first := true
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, core.WrapError(core.ErrFormatCode, "failed to parse CSV", err)
		}
		if first {
			t.headers = rec
			first = false
			continue
		}
		row := make([]Value, len(rec))
		for i, cell := range rec {
			row[i] = TextValue(cell)
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func readSpreadsheet(raw []byte) (*table, error) {
	if len(raw) == 0 {
		return &table{}, nil
	}
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, core.WrapError(core.ErrFormatCode, "failed to open spreadsheet", err)
	}
	defer func() {
		_ = f.Close()
	}()
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &table{}, nil
	}
	sheet := sheets[0]
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, core.WrapError(core.ErrFormatCode, "failed to read first sheet", err)
	}
	t := &table{}
	if len(rows) == 0 {
		return t, nil
	}
	t.headers = rows[0]
	for r, cells := range rows[1:] {
		if blankRow(cells) {
			continue
		}
		row := make([]Value, len(cells))
		for c, text := range cells {
			v, err := spreadsheetValue(f, sheet, c+1, r+2, text)
			if err != nil {
				return nil, err
			}
			row[c] = v
		}
		t.rows = append(t.rows, row)
	}
	return t, nil
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

func spreadsheetValue(f *excelize.File, sheet string, col, row int, text string) (Value, error) {
	if text == "" {
		return Value{Kind: KindEmpty}, nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return Value{}, fmt.Errorf("failed to address cell: %w", err)
	}
	typ, err := f.GetCellType(sheet, cell)
	if err != nil {
		return Value{}, core.WrapError(core.ErrFormatCode, "failed to read cell type "+cell, err)
	}
	return Value{Text: text, Kind: cellKind(typ)}, nil
}

func cellKind(typ excelize.CellType) ValueKind {
	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return KindText
	case excelize.CellTypeUnset, excelize.CellTypeNumber:
		return KindNumber
	case excelize.CellTypeBool:
		return KindBool
	default:
		return KindOther
	}
}
