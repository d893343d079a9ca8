package readqc

import (
	"io"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/klauspost/compress/gzip"
)

// WriteReport writes finalized metrics as TSV, one row per fact:
// metric name, key, value.
func WriteReport(w io.Writer, results []*Result) error {
	tw := tsv.NewWriter(w)
	for _, r := range results {
		for _, f := range r.Facts {
			tw.WriteString(r.Name)
			tw.WriteString(f.Key)
			tw.WriteString(f.Value)
			if err := tw.EndLine(); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

// reportWriter gzips the report when the destination path ends in .gz.
type reportWriter struct {
	io.Writer
	gz *gzip.Writer
}

// NewReportWriter wraps w for the given destination path, compressing
// when the path ends in ".gz". Close flushes the compressor but not the
// underlying writer.
func NewReportWriter(w io.Writer, path string) io.WriteCloser {
	rw := &reportWriter{Writer: w}
	if strings.HasSuffix(path, ".gz") {
		rw.gz = gzip.NewWriter(w)
		rw.Writer = rw.gz
	}
	return rw
}

func (w *reportWriter) Close() error {
	if w.gz != nil {
		return w.gz.Close()
	}
	return nil
}
