package parallel

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEmptyFile is reported for zero-length media.
	ErrEmptyFile = errors.New("file is empty")

	// ErrBadHeader is reported when a file's leading bytes do not match
	// its extension.
	ErrBadHeader = errors.New("header does not match extension")
)

// FileCheck is the outcome of checking one media file.
type FileCheck struct {
	Path string
	Size int64
	Err  error
}

// OK reports whether the file passed.
func (c FileCheck) OK() bool { return c.Err == nil }

// headerMatchers recognise the leading bytes of each media format.
var headerMatchers = map[string]func([]byte) bool{
	// HCA may have its signature bytes masked with 0x80.
	".hca": func(b []byte) bool {
		return len(b) >= 4 && b[0]&0x7f == 'H' && b[1]&0x7f == 'C' && b[2]&0x7f == 'A' && b[3]&0x7f == 0
	},
	".adx": func(b []byte) bool {
		return len(b) >= 2 && b[0] == 0x80 && b[1] == 0x00
	},
	".wav": func(b []byte) bool {
		return len(b) >= 12 && bytes.Equal(b[:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WAVE"))
	},
	".usm": func(b []byte) bool {
		return len(b) >= 4 && bytes.Equal(b[:4], []byte("CRID"))
	},
}

// CheckFile verifies that path exists, is a non-empty regular file and, for
// known extensions, starts with the expected signature.
func CheckFile(path string) FileCheck {
	check := FileCheck{Path: path}

	fi, err := os.Stat(path)
	if err != nil {
		check.Err = err
		return check
	}
	if !fi.Mode().IsRegular() {
		check.Err = fmt.Errorf("not a regular file: %s", fi.Mode())
		return check
	}
	check.Size = fi.Size()
	if check.Size == 0 {
		check.Err = ErrEmptyFile
		return check
	}

	match, ok := headerMatchers[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return check
	}
	f, err := os.Open(path)
	if err != nil {
		check.Err = err
		return check
	}
	defer f.Close()

	header := make([]byte, 12)
	n, err := io.ReadFull(f, header)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		check.Err = err
		return check
	}
	if !match(header[:n]) {
		check.Err = ErrBadHeader
	}
	return check
}

// CheckFiles checks every file with at most workers concurrent checks.
// Results are returned in input order. The returned error is non-nil only
// when ctx was cancelled before every file was checked.
func CheckFiles(ctx context.Context, files []string, workers int) ([]FileCheck, error) {
	pool := NewWorkerPool[FileCheck](ctx, workers, false)
	for _, file := range files {
		pool.Submit(file, func(ctx context.Context) (FileCheck, error) {
			if err := ctx.Err(); err != nil {
				return FileCheck{}, err
			}
			return CheckFile(file), nil
		})
	}

	results, _ := pool.Wait()
	byPath := make(map[string]FileCheck, len(results))
	for _, r := range results {
		if r.Error == nil {
			byPath[r.ID] = r.Value
		}
	}

	checks := make([]FileCheck, 0, len(files))
	for _, file := range files {
		if c, ok := byPath[file]; ok {
			checks = append(checks, c)
		}
	}
	if len(checks) < len(files) {
		return checks, fmt.Errorf("checked %d of %d files: %w", len(checks), len(files), ctx.Err())
	}
	return checks, nil
}
