package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOpts() Opts {
	return Opts{
		Java:                 "java",
		PicardDir:            "/opt/picard",
		Samtools:             "samtools",
		TmpDir:               "/scratch/tmp",
		MaxRecordsInRAM:      500000,
		ValidationStringency: StringencySilent,
		MaxHeap:              "8g",
		LogDir:               "/scratch/log",
	}
}

func TestPlanFragment(t *testing.T) {
	opts := testOpts()
	plan := NewPlan(Fragment, "/data/run1.bam", &opts)
	assert.Equal(t, []string{
		"SortByCoordinate", "FixCIGAR", "MarkDuplicates", "AlignmentStats",
	}, plan.Names())

	sorted := "/data/run1.sorted.bam"
	dedup := "/data/run1.sorted.dedup.bam"
	assert.Equal(t, sorted, plan.Stages[0].Output)
	// FixCIGAR overwrites the sorted file in place.
	assert.Equal(t, sorted, plan.Stages[1].Input)
	assert.Equal(t, sorted, plan.Stages[1].Output)
	assert.Equal(t, sorted, plan.Stages[2].Input)
	assert.Equal(t, dedup, plan.Stages[2].Output)
	assert.Equal(t, dedup, plan.Stages[3].Input)
	assert.Equal(t, dedup, plan.Output)
	assert.Equal(t, dedup+".flagstat", plan.Stats)
}

func TestPlanPaired(t *testing.T) {
	opts := testOpts()
	plan := NewPlan(Paired, "/data/run2.bam", &opts)
	assert.Equal(t, []string{
		"FixMateInfo", "MarkDuplicates", "AlignmentStats",
	}, plan.Names())

	fixed := "/data/run2.fixed.bam"
	dedup := "/data/run2.fixed.dedup.bam"
	assert.Equal(t, fixed, plan.Stages[0].Output)
	assert.Equal(t, fixed, plan.Stages[1].Input)
	assert.Equal(t, dedup, plan.Output)
	assert.Equal(t, dedup+".flagstat", plan.Stats)
}

func TestPlanCommandParameters(t *testing.T) {
	opts := testOpts()
	plan := NewPlan(Fragment, "/data/run1.bam", &opts)
	sort := plan.Stages[0]
	argv := strings.Join(sort.Argv, " ")
	assert.Equal(t, "java", sort.Argv[0])
	assert.Contains(t, argv, "-Xmx8g")
	assert.Contains(t, argv, "/opt/picard/SortSam.jar")
	assert.Contains(t, argv, "SORT_ORDER=coordinate")
	assert.Contains(t, argv, "TMP_DIR=/scratch/tmp")
	assert.Contains(t, argv, "MAX_RECORDS_IN_RAM=500000")
	assert.Contains(t, argv, "VALIDATION_STRINGENCY=SILENT")

	dedup := plan.Stages[2]
	assert.Contains(t, strings.Join(dedup.Argv, " "), "METRICS_FILE=/data/run1.sorted.dedup.metrics")

	stats := plan.Stages[3]
	assert.Equal(t, []string{"samtools", "flagstat", "/data/run1.sorted.dedup.bam"}, stats.Argv)
	assert.Equal(t, stats.Output, stats.StdoutPath)
}

func TestOptsValidate(t *testing.T) {
	opts := testOpts()
	require.NoError(t, opts.Validate())

	missingTmp := testOpts()
	missingTmp.TmpDir = ""
	assert.Error(t, missingTmp.Validate())

	badStringency := testOpts()
	badStringency.ValidationStringency = "QUIET"
	assert.Error(t, badStringency.Validate())

	badRecords := testOpts()
	badRecords.MaxRecordsInRAM = 0
	assert.Error(t, badRecords.Validate())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "fragment", Fragment.String())
	assert.Equal(t, "paired", Paired.String())
}
