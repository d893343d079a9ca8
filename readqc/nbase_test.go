package readqc

import (
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grailbio/postalign/encoding/fastq"
)

func observeAll(t *testing.T, c Calculator, pairs []fastq.Pair) {
	for i := range pairs {
		require.NoError(t, c.Observe(&pairs[i]))
	}
}

func TestNBaseAllN(t *testing.T) {
	c := NewNBase(DefaultNThreshold)
	observeAll(t, c, []fastq.Pair{
		{R1: fastq.Read{Seq: strings.Repeat("N", 20)}},
	})
	res := c.Finalize()
	require.NotNil(t, res)
	assert.Equal(t, "DistributionOfN", res.Name)
	assert.Equal(t, []Fact{{"Bad_Reads_Read1", "1"}}, res.Facts)
	require.Len(t, res.Series, 1)
	assert.Equal(t, "Read 1", res.Series[0].Name)
	require.Len(t, res.Series[0].Values, 20)
	for i, v := range res.Series[0].Values {
		assert.Equal(t, 100.0, v, "position %d", i)
	}
	assert.Equal(t, 20, res.MaxLen)
}

func TestNBasePairedWithSingleEndedFragment(t *testing.T) {
	c := NewNBase(DefaultNThreshold)
	observeAll(t, c, []fastq.Pair{
		{R1: fastq.Read{Seq: "ACGT"}},
		{R1: fastq.Read{Seq: "ACGN"}, R2: fastq.Read{Seq: "NCGT"}},
	})
	res := c.Finalize()
	require.NotNil(t, res)
	// R1 was seen twice, R2 once.
	assert.Equal(t, []Fact{
		{"Bad_Reads_Read1", "1"},
		{"Bad_Reads_Read2", "1"},
	}, res.Facts)
	require.Len(t, res.Series, 2)
	assert.Equal(t, []float64{0, 0, 0, 50}, res.Series[0].Values)
	assert.Equal(t, []float64{100, 0, 0, 0}, res.Series[1].Values)
	assert.Equal(t, 4, res.MaxLen)
}

func TestNBaseMateIsolation(t *testing.T) {
	c := NewNBase(DefaultNThreshold)
	observeAll(t, c, []fastq.Pair{
		{R1: fastq.Read{Seq: "NNNN"}},
		{R1: fastq.Read{Seq: "ACGT"}},
	})
	res := c.Finalize()
	require.NotNil(t, res)
	// Mate 2 never observed: no fact, no series.
	assert.Equal(t, []Fact{{"Bad_Reads_Read1", "1"}}, res.Facts)
	require.Len(t, res.Series, 1)
	assert.Equal(t, []float64{50, 50, 50, 50}, res.Series[0].Values)
}

func TestNBaseCaseInsensitive(t *testing.T) {
	c := NewNBase(DefaultNThreshold)
	observeAll(t, c, []fastq.Pair{
		{R1: fastq.Read{Seq: "aNgn"}},
	})
	res := c.Finalize()
	require.NotNil(t, res)
	assert.Equal(t, []float64{0, 100, 0, 100}, res.Series[0].Values)
}

func TestNBaseZeroLengthRead(t *testing.T) {
	c := NewNBase(DefaultNThreshold)
	observeAll(t, c, []fastq.Pair{
		{R1: fastq.Read{Seq: ""}},
		{R1: fastq.Read{Seq: "ACGT"}},
	})
	res := c.Finalize()
	require.NotNil(t, res)
	assert.Equal(t, 4, res.MaxLen)
	// The empty read trips the inclusive threshold (0 >= 0.15*0).
	assert.Equal(t, []Fact{{"Bad_Reads_Read1", "1"}}, res.Facts)
	assert.Equal(t, []float64{0, 0, 0, 0}, res.Series[0].Values)
}

func TestNBaseThresholdInclusive(t *testing.T) {
	// 1 N in 4 bases with threshold 0.25: 1 >= 0.25*4 holds.
	c := NewNBase(0.25)
	observeAll(t, c, []fastq.Pair{
		{R1: fastq.Read{Seq: "NCGT"}},
	})
	res := c.Finalize()
	require.NotNil(t, res)
	assert.Equal(t, []Fact{{"Bad_Reads_Read1", "1"}}, res.Facts)
}

func TestNBaseHistogramGrowth(t *testing.T) {
	c := NewNBase(DefaultNThreshold)
	observeAll(t, c, []fastq.Pair{
		{R1: fastq.Read{Seq: "AN"}},
		{R1: fastq.Read{Seq: "ACGTACGN"}},
	})
	res := c.Finalize()
	require.NotNil(t, res)
	assert.Equal(t, 8, res.MaxLen)
	assert.Equal(t, []float64{0, 50, 0, 0, 0, 0, 0, 50}, res.Series[0].Values)
}

func TestNBaseAbsentResult(t *testing.T) {
	c := NewNBase(DefaultNThreshold)
	assert.Nil(t, c.Finalize())
}

func TestNBaseMissingMate1(t *testing.T) {
	c := NewNBase(DefaultNThreshold)
	assert.Error(t, c.Observe(nil))
}

func TestNBaseDeterminism(t *testing.T) {
	pairs := []fastq.Pair{
		{R1: fastq.Read{Seq: "ACGTN"}, R2: fastq.Read{Seq: "NNGTA"}},
		{R1: fastq.Read{Seq: "NCGT"}},
		{R1: fastq.Read{Seq: "acgtnnn"}, R2: fastq.Read{Seq: "ACGT"}},
	}
	run := func() *Result {
		c := NewNBase(DefaultNThreshold)
		observeAll(t, c, pairs)
		return c.Finalize()
	}
	first, second := run(), run()
	require.NotNil(t, first)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %+v vs %+v", first, second)
	}
}
