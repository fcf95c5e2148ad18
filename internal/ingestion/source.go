package ingestion

import (
	"io"
	"os"
)

// Source is a handle to a report file or stream. The upload layer owns the
// bytes and guarantees they outlive the run; the pipeline only reads.
type Source struct {
	// Path is the file to open when Reader is nil
	Path string
	// Name identifies a stream source in error messages
	Name string
	// Reader, when set, is used instead of opening Path
	Reader io.Reader
}

// FileSource points at a delimited text file on disk
func FileSource(path string) Source {
	return Source{Path: path}
}

// ReaderSource wraps an in-memory or streamed report
func ReaderSource(name string, r io.Reader) Source {
	return Source{Name: name, Reader: r}
}

// Ident returns the identifier used in error messages
func (s Source) Ident() string {
	if s.Reader != nil {
		if s.Name != "" {
			return s.Name
		}
		return "<stream>"
	}
	return s.Path
}

type nopCloser struct{ io.Reader }

func (nopCloser) Close() error { return nil }

// Open yields the source bytes. A missing or unreadable file surfaces as a
// SourceReadError naming the path.
func (s Source) Open() (io.ReadCloser, error) {
	if s.Reader != nil {
		return nopCloser{s.Reader}, nil
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, NewSourceReadError(s.Path, err)
	}
	return f, nil
}
