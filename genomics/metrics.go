package genomics

import (
	"runtime"
	"sync"
)

// QualityMetrics is the scaled-integer result of a QC pass over a panel.
// All three rates use truncating integer division so that the native engine
// and the constraint system agree exactly.
type QualityMetrics struct {
	// CallRate is the fraction of non-missing markers, scaled by 1000
	// (950 means 95.0%).
	CallRate uint32
	// HeterozygosityRate is the fraction of heterozygous markers among
	// non-missing markers, scaled by 100.
	HeterozygosityRate uint32
	// TiTvRate is the transition/transversion ratio, scaled by 100.
	TiTvRate uint32
}

// Scale factors of the three rates.
const (
	CallRateScale       = 1000
	HeterozygosityScale = 100
	TiTvScale           = 100
)

// qcCounters accumulates the per-marker classification. Counters are plain
// sums, so partial counters from disjoint partitions of a panel merge by
// addition in any order.
type qcCounters struct {
	totalValid    uint32
	missing       uint32
	heterozygous  uint32
	transitions   uint32
	transversions uint32
}

func (c *qcCounters) observe(m GeneticMarker) {
	if m.Missing() {
		c.missing++
	} else if m.Allele1 != m.Allele2 {
		c.heterozygous++
	}

	// Transition/transversion classification is independent of the
	// missing/heterozygous branch above, and the transversion condition
	// checks allele1 only. A marker with a missing allele2 therefore still
	// counts as a transversion. This mirrors the verification circuit and is
	// kept for proof compatibility; it is not the textbook ti/tv definition.
	if m.transitionPair() {
		c.transitions++
	} else if m.Allele1 != AlleleMissing {
		c.transversions++
	}

	// Every marker counts toward the total, missing ones included.
	c.totalValid++
}

func (c *qcCounters) merge(o qcCounters) {
	c.totalValid += o.totalValid
	c.missing += o.missing
	c.heterozygous += o.heterozygous
	c.transitions += o.transitions
	c.transversions += o.transversions
}

// metrics derives the scaled rates. Every division is guarded, so the
// derivation is total: a zero denominator yields a zero rate.
func (c qcCounters) metrics() QualityMetrics {
	var m QualityMetrics
	nonMissing := c.totalValid - c.missing
	if c.totalValid > 0 {
		m.CallRate = uint32(uint64(nonMissing) * CallRateScale / uint64(c.totalValid))
	}
	if nonMissing > 0 {
		m.HeterozygosityRate = uint32(uint64(c.heterozygous) * HeterozygosityScale / uint64(nonMissing))
	}
	if c.transversions > 0 {
		m.TiTvRate = uint32(uint64(c.transitions) * TiTvScale / uint64(c.transversions))
	}
	return m
}

// ComputeMetrics runs the QC pass sequentially. It is a pure function: the
// slice is only read, and repeated calls on the same panel return the same
// triple.
func ComputeMetrics(markers []GeneticMarker) QualityMetrics {
	var c qcCounters
	for _, m := range markers {
		c.observe(m)
	}
	return c.metrics()
}

// parallelThreshold is the panel size below which ComputeMetricsParallel
// stays sequential; goroutine dispatch dominates for small panels.
const parallelThreshold = 4096

// ComputeMetricsParallel computes the same triple as ComputeMetrics by
// partitioning the panel and merging per-partition counters. The counters are
// associative integer sums, so the result is identical to the sequential pass
// regardless of scheduling.
func ComputeMetricsParallel(markers []GeneticMarker) QualityMetrics {
	if len(markers) < parallelThreshold {
		return ComputeMetrics(markers)
	}

	nbWorkers := runtime.NumCPU()
	if nbWorkers > len(markers) {
		nbWorkers = len(markers)
	}
	chunk := (len(markers) + nbWorkers - 1) / nbWorkers

	partials := make([]qcCounters, nbWorkers)
	var wg sync.WaitGroup
	for w := 0; w < nbWorkers; w++ {
		start := w * chunk
		end := start + chunk
		if end > len(markers) {
			end = len(markers)
		}
		if start >= end {
			break
		}
		wg.Add(1)
		go func(w, start, end int) {
			defer wg.Done()
			for _, m := range markers[start:end] {
				partials[w].observe(m)
			}
		}(w, start, end)
	}
	wg.Wait()

	var c qcCounters
	for _, p := range partials {
		c.merge(p)
	}
	return c.metrics()
}
