package plexity

import (
	"math"

	"github.com/panbanda/plexity/pkg/models"
	"gonum.org/v1/gonum/stat"
)

// profileBuilder collects a depth histogram from traversal visits.
type profileBuilder struct {
	histogram []uint64
}

func (b *profileBuilder) observe(v models.Visit) {
	for uint64(len(b.histogram)) <= v.Depth {
		b.histogram = append(b.histogram, 0)
	}
	b.histogram[v.Depth]++
}

// build computes the weighted mean and standard deviation of depth.
func (b *profileBuilder) build() models.DepthProfile {
	p := models.DepthProfile{Histogram: b.histogram}
	if p.Histogram == nil {
		p.Histogram = []uint64{}
	}

	var total uint64
	for _, n := range b.histogram {
		total += n
	}
	if total == 0 {
		return p
	}

	depths := make([]float64, len(b.histogram))
	weights := make([]float64, len(b.histogram))
	for d, n := range b.histogram {
		depths[d] = float64(d)
		weights[d] = float64(n)
	}

	p.Mean = stat.Mean(depths, weights)
	if total > 1 {
		// Population form: the histogram is the whole tree, not a sample.
		p.StdDev = math.Sqrt(stat.PopVariance(depths, weights))
	}
	return p
}
