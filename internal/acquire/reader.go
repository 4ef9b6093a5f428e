package acquire

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "bicingwrapped/internal/errors"
)

const utf8BOM = "\xef\xbb\xbf"

// supportedExtensions maps each handled file extension to whether it is a
// spreadsheet (true) or plain delimited text (false).
var supportedExtensions = map[string]bool{
	".xlsx": true,
	".csv":  false,
	".tsv":  false,
	".txt":  false,
}

// Supported reports whether the file extension can be read.
func Supported(path string) bool {
	_, ok := supportedExtensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ReadText reads one export file and returns its content as delimited text.
// Spreadsheets come back tab-separated, one line per row; text formats keep
// their own delimiter. Unknown extensions fail with ErrUnsupportedFormat.
func ReadText(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	isSheet, ok := supportedExtensions[ext]
	if !ok {
		return "", apperrors.ErrUnsupportedFormat.WithMessage("unsupported export format %q", ext)
	}
	if isSheet {
		return readWorkbook(path)
	}
	return readPlainText(path)
}

// readPlainText loads a CSV, TSV or plain text export.
func readPlainText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperrors.ErrFileNotFound.WithMessage("export file %s not found", path)
		}
		return "", fmt.Errorf("failed to read export %s: %w", path, err)
	}
	// Excel loves to prepend a BOM to CSV exports.
	return strings.TrimPrefix(string(data), utf8BOM), nil
}

// readWorkbook flattens an Excel export to tab-separated text. If the
// workbook has several sheets, the first non-empty one is used.
func readWorkbook(path string) (string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperrors.ErrFileNotFound.WithMessage("export file %s not found", path)
		}
		return "", fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	var rows [][]string
	for _, name := range f.GetSheetList() {
		sheetRows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		if len(sheetRows) > 0 {
			rows = sheetRows
			break
		}
	}

	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strings.Join(row, "\t"))
	}
	return b.String(), nil
}
