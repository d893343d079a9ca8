package main

// bio-readqc computes per-read quality metrics over FASTQ input and
// writes a TSV report plus plot data for rendering. R2 is optional;
// without it the run is treated as single-ended.
//
// Usage: bio-readqc -r1 r1.fastq.gz [-r2 r2.fastq.gz] -out metrics.tsv [-plot-dir dir]

import (
	"flag"
	"io"
	"path/filepath"
	"strings"

	"github.com/grailbio/base/compress"
	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/postalign/encoding/fastq"
	"github.com/grailbio/postalign/readqc"
)

var (
	r1Flag        = flag.String("r1", "", "R1 FASTQ input, possibly gzipped")
	r2Flag        = flag.String("r2", "", "R2 FASTQ input; omit for single-ended data")
	outFlag       = flag.String("out", "", "Metrics TSV output; a .gz suffix enables compression")
	plotDirFlag   = flag.String("plot-dir", "", "Directory for plot JSON artifacts; empty disables plots")
	thresholdFlag = flag.Float64("n-threshold", readqc.DefaultNThreshold, "N fraction at or above which a read is counted bad")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *r1Flag == "" || *outFlag == "" {
		flag.Usage()
		log.Fatalf("bio-readqc: -r1 and -out are required")
	}
	if flag.NArg() > 0 {
		log.Fatalf("unparsed arguments, please check flag syntax: '%s'", strings.Join(flag.Args(), " "))
	}
	ctx := vcontext.Background()

	in1, err := file.Open(ctx, *r1Flag)
	if err != nil {
		log.Fatalf("open %v: %v", *r1Flag, err)
	}
	var in1R io.Reader = in1.Reader(ctx)
	if u := compress.NewReaderPath(in1R, in1.Name()); u != nil {
		in1R = u
	}
	var (
		in2  file.File
		in2R io.Reader
	)
	if *r2Flag != "" {
		if in2, err = file.Open(ctx, *r2Flag); err != nil {
			log.Fatalf("open %v: %v", *r2Flag, err)
		}
		in2R = in2.Reader(ctx)
		if u := compress.NewReaderPath(in2R, in2.Name()); u != nil {
			in2R = u
		}
	}

	sc := fastq.NewPairScanner(in1R, in2R, fastq.ID|fastq.Seq)
	runner := readqc.NewRunner(readqc.NewNBase(*thresholdFlag))
	results, err := runner.Run(sc)
	if err != nil {
		log.Fatalf("bio-readqc: %v", err)
	}

	e := errors.Once{}
	e.Set(in1.Close(ctx))
	if in2 != nil {
		e.Set(in2.Close(ctx))
	}
	if err := e.Err(); err != nil {
		log.Fatalf("close inputs: %v", err)
	}

	writeReport(results)
	if *plotDirFlag != "" {
		writePlots(results)
	}
}

func writeReport(results []*readqc.Result) {
	ctx := vcontext.Background()
	out, err := file.Create(ctx, *outFlag)
	if err != nil {
		log.Fatalf("create %v: %v", *outFlag, err)
	}
	w := readqc.NewReportWriter(out.Writer(ctx), *outFlag)
	if err := readqc.WriteReport(w, results); err != nil {
		log.Fatalf("write %v: %v", *outFlag, err)
	}
	e := errors.Once{}
	e.Set(w.Close())
	e.Set(out.Close(ctx))
	if err := e.Err(); err != nil {
		log.Fatalf("close %v: %v", *outFlag, err)
	}
	log.Printf("wrote %d metrics to %s", len(results), *outFlag)
}

func writePlots(results []*readqc.Result) {
	ctx := vcontext.Background()
	for _, res := range results {
		p := res.Plot()
		if p == nil {
			continue
		}
		path := filepath.Join(*plotDirFlag, res.Name+".json")
		out, err := file.Create(ctx, path)
		if err != nil {
			log.Fatalf("create %v: %v", path, err)
		}
		e := errors.Once{}
		e.Set(p.EncodeJSON(out.Writer(ctx)))
		e.Set(out.Close(ctx))
		if err := e.Err(); err != nil {
			log.Fatalf("write %v: %v", path, err)
		}
		log.Printf("wrote plot data %s", path)
	}
}
