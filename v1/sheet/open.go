package sheet

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
)

// ObjectGetter is the part of the MinIO client OpenObject needs.
type ObjectGetter interface {
	Get(ctx context.Context, objectKey string) ([]byte, error)
}

// Open reads the workbook in data, choosing the reader by the extension of
// name. CSV pages are named after the base name of name.
func Open(name string, data []byte) (Workbook, error) {
	switch Extension(name) {
	case ExtCSV:
		return OpenCSV(path.Base(filepath.ToSlash(name)), bytes.NewReader(data))
	case ExtXLSX, ExtXLSM:
		return OpenExcelBytes(data)
	}
	return nil, &RejectedError{File: path.Base(filepath.ToSlash(name)), Rule: RuleType, Detail: fmt.Sprintf("unsupported file type %q", Extension(name))}
}

// OpenFile reads the workbook at the file path name.
func OpenFile(name string) (Workbook, error) {
	if Extension(name) != ExtCSV {
		return OpenExcelFile(name)
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Open(name, data)
}

// OpenObject downloads key through client and opens it. A non-nil filter is
// checked before the workbook is parsed.
func OpenObject(ctx context.Context, client ObjectGetter, key string, filter *Filter) (Workbook, error) {
	data, err := client.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to download workbook %s: %w", key, err)
	}
	if filter != nil {
		if err := filter.Check(key, int64(len(data))); err != nil {
			return nil, err
		}
	}
	return Open(key, data)
}
