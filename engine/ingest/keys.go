package ingest

import (
	"net/url"
	"path"
	"strconv"
	"strings"
)

// decodeKey percent-decodes a notification key, treating "+" as a space.
// The boolean is false when the key holds a malformed escape; such escapes
// are kept literally and the rest of the key is still decoded.
func decodeKey(raw string) (string, bool) {
	if key, err := url.QueryUnescape(raw); err == nil {
		return key, true
	}
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == '+':
			b.WriteByte(' ')
		case c == '%' && i+2 < len(raw):
			v, err := strconv.ParseUint(raw[i+1:i+3], 16, 8)
			if err != nil {
				b.WriteByte(c)
				continue
			}
			b.WriteByte(byte(v))
			i += 2
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), false
}

// OutputKeys derives the cleaned CSV and script keys for an input key.
// The input prefix is replaced by the output prefix, subdirectories are kept
// and the extension becomes .csv and .rsc.
func OutputKeys(key, inputPath, outputPath string) (csvKey, rscKey string) {
	rel := strings.TrimPrefix(key, inputPath)
	base := outputPath + strings.TrimSuffix(rel, path.Ext(rel))
	return base + ".csv", base + ".rsc"
}
