package host

import (
	"path"
	"strings"

	"github.com/compozy/netwatchgen/engine/core"
	"github.com/gabriel-vasile/mimetype"
)

// FileKind is the tabular format of an input file.
type FileKind string

const (
	FileCSV         FileKind = "csv"
	FileSpreadsheet FileKind = "spreadsheet"
)

const (
	mimeZip  = "application/zip"
	mimeText = "text/plain"
)

var extensionKinds = map[string]FileKind{
	".csv":  FileCSV,
	".xlsx": FileSpreadsheet,
}

// KindFromKey derives the file kind from the key extension, ignoring case.
func KindFromKey(key string) (FileKind, error) {
	ext := strings.ToLower(path.Ext(key))
	kind, ok := extensionKinds[ext]
	if !ok {
		return "", core.NewErrorf(
			core.ErrFormatCode,
			"unsupported file type %q: provide an Excel (.xlsx) or CSV (.csv) file",
			ext,
		).WithDetail("key", key)
	}
	return kind, nil
}

// SniffKind checks the declared kind against the detected content type.
// Spreadsheets must be zip containers and CSV files must be text. Empty
// input passes so that it can yield an empty record set.
func SniffKind(raw []byte, kind FileKind) error {
	var want string
	switch kind {
	case FileCSV:
		want = mimeText
	case FileSpreadsheet:
		want = mimeZip
	default:
		return core.NewErrorf(core.ErrFormatCode, "unknown file kind %q", kind)
	}
	if len(raw) == 0 {
		return nil
	}
	detected := mimetype.Detect(raw)
	for m := detected; m != nil; m = m.Parent() {
		if m.Is(want) {
			return nil
		}
	}
	return core.NewErrorf(
		core.ErrFormatCode,
		"content type %s does not match %s input",
		detected.String(),
		kind,
	)
}
