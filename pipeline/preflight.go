package pipeline

import (
	"context"
	"fmt"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/hts/bam"
)

// Preflight summarizes the input BAM header before the first stage
// runs. It exists for log and escalation context only; stages re-read
// the input themselves.
type Preflight struct {
	// SortOrder is the header's SO value, e.g. "queryname".
	SortOrder string
	// ReadGroup and Library come from the first read group, when the
	// header has one.
	ReadGroup, Library string
}

// ReadPreflight reads the BAM header of path. An unreadable or
// unparseable header is fatal before stage 1.
func ReadPreflight(ctx context.Context, path string) (Preflight, error) {
	var pf Preflight
	in, err := file.Open(ctx, path)
	if err != nil {
		return pf, fmt.Errorf("preflight %s: %v", path, err)
	}
	r, err := bam.NewReader(in.Reader(ctx), 1)
	if err != nil {
		_ = in.Close(ctx)
		return pf, fmt.Errorf("preflight %s: reading BAM header: %v", path, err)
	}
	h := r.Header()
	pf.SortOrder = h.SortOrder.String()
	if rgs := h.RGs(); len(rgs) > 0 {
		pf.ReadGroup = rgs[0].Name()
		pf.Library = rgs[0].Library()
	}
	e := errors.Once{}
	e.Set(r.Close())
	e.Set(in.Close(ctx))
	return pf, e.Err()
}
