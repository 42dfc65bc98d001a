package parser

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-epiphany/internal/model"
)

// ClaimsTag is the filename tag of name-claims files.
const ClaimsTag = "abr"

var filenamePattern = regexp.MustCompile(`^(.+)-(.+)$`)

// ParseFilename splits a tournament file path into its directory, prefix and
// source tag: "data/2023-11-19-amt-nov-cobra.json" yields
// ("data", "2023-11-19-amt-nov", "cobra"). ok is false when the basename has no dash.
func ParseFilename(path string) (dir, prefix, tag string, ok bool) {
	dir = filepath.Dir(path)
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".zst")
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, filepath.Ext(base))

	m := filenamePattern.FindStringSubmatch(base)
	if m == nil {
		return "", "", "", false
	}
	return dir, m[1], m[2], true
}

// ReadFile reads path, transparently decompressing .zst and .gz files.
func ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var src io.Reader = f
	switch {
	case strings.HasSuffix(path, ".zst"):
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile writes data to path, zstd-compressing it when path ends in .zst.
func WriteFile(path string, data []byte) error {
	if !strings.HasSuffix(path, ".zst") {
		return os.WriteFile(path, data, 0o644)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("zstd: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		enc.Close()
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("zstd close: %w", err)
	}
	return f.Close()
}

// DirSource loads tournament and claims files laid out as
// <Dir>/<prefix>-<tag>.json (or .json.zst).
type DirSource struct {
	Dir string
}

// Tournament returns the raw export for prefix in the given format.
func (d DirSource) Tournament(prefix string, source model.Source) ([]byte, error) {
	path, err := d.find(prefix, string(source))
	if err != nil {
		return nil, err
	}
	return ReadFile(path)
}

// Claims returns the name claims for prefix. A missing claims file yields no claims.
func (d DirSource) Claims(prefix string) ([]Claim, error) {
	path, err := d.find(prefix, ClaimsTag)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseClaims(data)
}

func (d DirSource) find(prefix, tag string) (string, error) {
	base := filepath.Join(d.Dir, fmt.Sprintf("%s-%s.json", prefix, tag))
	for _, p := range []string{base, base + ".zst", base + ".gz"} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s: %w", base, fs.ErrNotExist)
}
