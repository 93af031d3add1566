package source

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/ava12/bnfcheck"
)

// Error codes used by Load:
const (
	// ReadError indicates that file cannot be opened or read. Wraps OS error.
	ReadError = bnfcheck.LoadErrors + iota

	// DecompressError indicates broken compressed content.
	DecompressError
)

// Load reads file and returns it as a Source named after the path.
// Files with .gz suffix are decompressed with gzip, files with .zst suffix are decompressed with zstd.
// Returns bnfcheck.Error wrapping underlying error on failure.
func Load(path string) (*Source, error) {
	f, e := os.Open(path)
	if e != nil {
		return nil, bnfcheck.WrapError(e, ReadError, "cannot read %s", path)
	}
	defer f.Close()

	content, e := Read(path, f)
	if e != nil {
		return nil, e
	}

	return New(path, content), nil
}

// Read reads content of file named name from r, decompressing it depending on name suffix.
func Read(name string, r io.Reader) ([]byte, error) {
	var (
		content []byte
		e       error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		var zr *gzip.Reader
		zr, e = gzip.NewReader(r)
		if e != nil {
			return nil, bnfcheck.WrapError(e, DecompressError, "cannot decompress %s", name)
		}
		defer zr.Close()
		content, e = io.ReadAll(zr)
		if e != nil {
			return nil, bnfcheck.WrapError(e, DecompressError, "cannot decompress %s", name)
		}

	case ".zst":
		var zr *zstd.Decoder
		zr, e = zstd.NewReader(r)
		if e != nil {
			return nil, bnfcheck.WrapError(e, DecompressError, "cannot decompress %s", name)
		}
		defer zr.Close()
		content, e = io.ReadAll(zr)
		if e != nil {
			return nil, bnfcheck.WrapError(e, DecompressError, "cannot decompress %s", name)
		}

	default:
		content, e = io.ReadAll(r)
		if e != nil {
			return nil, bnfcheck.WrapError(e, ReadError, "cannot read %s", name)
		}
	}

	return content, nil
}
