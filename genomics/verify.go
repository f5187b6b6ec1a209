package genomics

import (
	"errors"
	"fmt"
)

// Verification failure kinds. Each predicate has its own sentinel so callers
// can tell the three outcomes apart with errors.Is.
var (
	ErrCallRateMismatch       = errors.New("call rates don't match")
	ErrHeterozygosityMismatch = errors.New("heterozygosity doesn't match")
	ErrTiTvOutOfBound         = errors.New("ti/tv exceeds allowed ratio")
)

// Thresholds are the public target values a panel's metrics are checked
// against. Despite their names, MinCallRate and MinHeterozygosityRate are
// exact-equality targets; only TiTvRatio is a true bound (upper). The naming
// asymmetry is part of the published protocol surface and is kept as is.
//
// ChallengeHash is an opaque commitment binding the check to an external
// session; it takes no part in the predicates.
type Thresholds struct {
	ChallengeHash         string
	MinCallRate           uint32
	MinHeterozygosityRate uint32
	TiTvRatio             uint32
}

// Verify checks the metrics triple against the targets. All three predicates
// are evaluated; the returned error joins every failed one, so a caller sees
// the full set of mismatches in a single shot. A nil return means the panel
// passed QC.
func Verify(m QualityMetrics, t Thresholds) error {
	var errs []error
	if m.CallRate != t.MinCallRate {
		errs = append(errs, fmt.Errorf("%w: computed %d, expected %d", ErrCallRateMismatch, m.CallRate, t.MinCallRate))
	}
	if m.HeterozygosityRate != t.MinHeterozygosityRate {
		errs = append(errs, fmt.Errorf("%w: computed %d, expected %d", ErrHeterozygosityMismatch, m.HeterozygosityRate, t.MinHeterozygosityRate))
	}
	if m.TiTvRate > t.TiTvRatio {
		errs = append(errs, fmt.Errorf("%w: computed %d, bound %d", ErrTiTvOutOfBound, m.TiTvRate, t.TiTvRatio))
	}
	return errors.Join(errs...)
}
