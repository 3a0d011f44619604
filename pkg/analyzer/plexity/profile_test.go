package plexity

import (
	"math"
	"testing"

	"github.com/panbanda/plexity/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestProfileBuilder_Empty(t *testing.T) {
	var b profileBuilder
	p := b.build()
	assert.Equal(t, []uint64{}, p.Histogram)
	assert.Zero(t, p.Mean)
	assert.Zero(t, p.StdDev)
}

func TestProfileBuilder_Histogram(t *testing.T) {
	var b profileBuilder
	for _, d := range []uint64{0, 1, 1, 0, 2} {
		b.observe(models.Visit{Depth: d})
	}
	p := b.build()

	assert.Equal(t, []uint64{2, 2, 1}, p.Histogram)
	assert.InDelta(t, 0.8, p.Mean, 1e-9)
	// population variance: (2*0.64 + 2*0.04 + 1*1.44) / 5 = 0.56
	assert.InDelta(t, math.Sqrt(0.56), p.StdDev, 1e-9)
}

func TestProfileBuilder_SingleNode(t *testing.T) {
	var b profileBuilder
	b.observe(models.Visit{Depth: 3})
	p := b.build()

	assert.Equal(t, []uint64{0, 0, 0, 1}, p.Histogram)
	assert.InDelta(t, 3.0, p.Mean, 1e-9)
	assert.Zero(t, p.StdDev)
}
