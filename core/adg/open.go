// core/adg/open.go
package adg

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader over the decompressed contents of a rack
// preset. Live serializes .adg/.adv as gzipped XML, but uncompressed
// XML (for example a file produced by a previous --export-xml run) is
// accepted too. "-" reads stdin.
func Open(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	// Detect gzip by magic number (1F 8B); the suffix check covers
	// empty files saved with a preset extension.
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	gzipped := n == 2 && sig[0] == 0x1f && sig[1] == 0x8b
	if !gzipped {
		low := strings.ToLower(path)
		gzipped = strings.HasSuffix(low, ".gz")
	}
	if gzipped {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
