package main

// bio-postalign runs the post-alignment correction pipeline over one
// aligned BAM file: coordinate sorting and CIGAR fixing (fragment
// runs) or mate-info fixing (paired runs), then duplicate marking and
// alignment stats. All stages are external tools; the first failure
// stops the run and, with -notify-to set, emits an escalation message.
//
// Usage: bio-postalign -input aligned.bam [-paired] [flags]

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/postalign/pipeline"
)

var (
	inputFlag  = flag.String("input", "", "Input BAM filename")
	pairedFlag = flag.Bool("paired", false, "Input is paired-end; default is fragment (single-ended)")
	runIDFlag  = flag.String("run-id", "", "Run/barcode identifier for logs and escalation. Defaults to the read group of the input, else the input path")

	javaFlag      = flag.String("java", "java", "JVM executable for the Picard-style tools")
	picardDirFlag = flag.String("picard-dir", "", "Directory holding the per-tool Picard jars")
	samtoolsFlag  = flag.String("samtools", "samtools", "samtools executable, used for alignment stats")

	tmpDirFlag     = flag.String("tmp-dir", "/tmp", "Scratch directory handed to every tool")
	maxRecordsFlag = flag.Int("max-records-in-ram", 500000, "Per-tool in-memory record bound")
	stringencyFlag = flag.String("validation-stringency", pipeline.StringencySilent, "Picard validation stringency: SILENT, LENIENT or STRICT")
	maxHeapFlag    = flag.String("max-heap", "8g", "JVM heap budget, e.g. 8g")
	logDirFlag     = flag.String("log-dir", "", "Directory for per-stage stdout/stderr captures")
	timeoutFlag    = flag.Duration("stage-timeout", 0, "Per-stage wall-clock bound; 0 disables")

	notifyFromFlag = flag.String("notify-from", "postalign@localhost", "Sender for escalation messages")
	notifyToFlag   = flag.String("notify-to", "", "Comma-separated escalation recipients; empty disables escalation")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if *inputFlag == "" {
		log.Fatalf("bio-postalign: -input is required")
	}
	if flag.NArg() > 0 {
		log.Fatalf("unparsed arguments, please check flag syntax: '%s'", strings.Join(flag.Args(), " "))
	}
	ctx := vcontext.Background()

	pf, err := pipeline.ReadPreflight(ctx, *inputFlag)
	if err != nil {
		log.Fatalf("bio-postalign: %v", err)
	}
	runID := *runIDFlag
	if runID == "" {
		runID = pf.ReadGroup
	}
	log.Printf("input %s: sort order %s, read group %q, library %q",
		*inputFlag, pf.SortOrder, pf.ReadGroup, pf.Library)

	opts := pipeline.Opts{
		Java:                 *javaFlag,
		PicardDir:            *picardDirFlag,
		Samtools:             *samtoolsFlag,
		TmpDir:               *tmpDirFlag,
		MaxRecordsInRAM:      *maxRecordsFlag,
		ValidationStringency: *stringencyFlag,
		MaxHeap:              *maxHeapFlag,
		LogDir:               *logDirFlag,
		StageTimeout:         *timeoutFlag,
		RunID:                runID,
	}
	p, err := pipeline.New(opts)
	if err != nil {
		log.Fatalf("bio-postalign: %v", err)
	}

	mode := pipeline.Fragment
	if *pairedFlag {
		mode = pipeline.Paired
	}
	start := time.Now()
	res, err := p.Execute(ctx, mode, *inputFlag)
	if err != nil {
		if serr, ok := err.(*pipeline.StageError); ok && *notifyToFlag != "" {
			msg := pipeline.FormatFailure(*notifyFromFlag, strings.Split(*notifyToFlag, ","), serr)
			notifier := pipeline.WriteNotifier{W: os.Stderr}
			if nerr := notifier.Notify(msg); nerr != nil {
				log.Error.Printf("escalation delivery failed: %v", nerr)
			}
		}
		log.Fatalf("bio-postalign: %v", err)
	}
	log.Printf("pipeline finished in %s: output %s, stats %s",
		time.Since(start), res.Output, res.Stats)
}
