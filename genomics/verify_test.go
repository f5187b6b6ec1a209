package genomics

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerifyAccepts(t *testing.T) {
	m := QualityMetrics{CallRate: 950, HeterozygosityRate: 30, TiTvRate: 200}
	targets := Thresholds{MinCallRate: 950, MinHeterozygosityRate: 30, TiTvRatio: 200}
	require.NoError(t, Verify(m, targets))

	// ti/tv is a bound, not an equality: a looser bound still passes
	targets.TiTvRatio = 300
	require.NoError(t, Verify(m, targets))
}

func TestVerifyCallRateMismatch(t *testing.T) {
	m := QualityMetrics{CallRate: 950, HeterozygosityRate: 30, TiTvRate: 200}
	for _, want := range []uint32{949, 951} {
		err := Verify(m, Thresholds{MinCallRate: want, MinHeterozygosityRate: 30, TiTvRatio: 200})
		require.ErrorIs(t, err, ErrCallRateMismatch)
		require.NotErrorIs(t, err, ErrHeterozygosityMismatch)
		require.NotErrorIs(t, err, ErrTiTvOutOfBound)
	}
}

func TestVerifyHeterozygosityMismatch(t *testing.T) {
	m := QualityMetrics{CallRate: 950, HeterozygosityRate: 30, TiTvRate: 200}
	for _, want := range []uint32{29, 31} {
		err := Verify(m, Thresholds{MinCallRate: 950, MinHeterozygosityRate: want, TiTvRatio: 200})
		require.ErrorIs(t, err, ErrHeterozygosityMismatch)
		require.NotErrorIs(t, err, ErrCallRateMismatch)
	}
}

func TestVerifyTiTvOutOfBound(t *testing.T) {
	m := QualityMetrics{CallRate: 950, HeterozygosityRate: 30, TiTvRate: 201}
	err := Verify(m, Thresholds{MinCallRate: 950, MinHeterozygosityRate: 30, TiTvRatio: 200})
	require.ErrorIs(t, err, ErrTiTvOutOfBound)

	// exactly at the bound passes
	m.TiTvRate = 200
	require.NoError(t, Verify(m, Thresholds{MinCallRate: 950, MinHeterozygosityRate: 30, TiTvRatio: 200}))
}

func TestVerifyReportsAllFailures(t *testing.T) {
	m := QualityMetrics{CallRate: 1, HeterozygosityRate: 2, TiTvRate: 300}
	err := Verify(m, Thresholds{MinCallRate: 2, MinHeterozygosityRate: 3, TiTvRatio: 4})
	require.ErrorIs(t, err, ErrCallRateMismatch)
	require.ErrorIs(t, err, ErrHeterozygosityMismatch)
	require.ErrorIs(t, err, ErrTiTvOutOfBound)
}
