package qcstats_test

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend"
	"github.com/consensys/gnark/test"
	"github.com/stretchr/testify/require"

	"github.com/w3p-hackathon/zkcircuitverification/circuits/qcstats"
	"github.com/w3p-hackathon/zkcircuitverification/genomics"
)

// typicalPanel builds a panel with 50 missing markers, 285 A/G heterozygous
// transitions and 665 A/A homozygous markers. Native metrics: call rate 950,
// heterozygosity 30, ti/tv 285*100/665 = 42.
func typicalPanel() []genomics.GeneticMarker {
	markers := make([]genomics.GeneticMarker, 0, genomics.PanelSize)
	for i := 0; i < 50; i++ {
		markers = append(markers, genomics.GeneticMarker{Chromosome: 1, Position: uint32(i)})
	}
	for i := 0; i < 285; i++ {
		markers = append(markers, genomics.GeneticMarker{
			Chromosome: 2, Position: uint32(i), Allele1: genomics.AlleleA, Allele2: genomics.AlleleG,
		})
	}
	for i := 0; i < 665; i++ {
		markers = append(markers, genomics.GeneticMarker{
			Chromosome: 3, Position: uint32(i), Allele1: genomics.AlleleA, Allele2: genomics.AlleleA,
		})
	}
	return markers
}

func assignment(t *testing.T, markers []genomics.GeneticMarker, thresholds genomics.Thresholds) *qcstats.Circuit {
	t.Helper()
	a, err := qcstats.NewAssignment(markers, big.NewInt(0xdeadbeef), thresholds)
	require.NoError(t, err)
	return a
}

func TestCircuitMatchesNativeEngine(t *testing.T) {
	markers := typicalPanel()
	m := genomics.ComputeMetrics(markers)
	require.Equal(t, genomics.QualityMetrics{CallRate: 950, HeterozygosityRate: 30, TiTvRate: 42}, m)

	good := assignment(t, markers, genomics.Thresholds{
		MinCallRate:           m.CallRate,
		MinHeterozygosityRate: m.HeterozygosityRate,
		TiTvRatio:             m.TiTvRate,
	})
	require.NoError(t, test.IsSolved(&qcstats.Circuit{}, good, ecc.BN254.ScalarField()))
}

func TestCircuitPredicates(t *testing.T) {
	markers := typicalPanel()
	base := genomics.Thresholds{MinCallRate: 950, MinHeterozygosityRate: 30, TiTvRatio: 42}
	field := ecc.BN254.ScalarField()

	// call rate and heterozygosity are equality checks: off by one in either
	// direction must not solve
	for _, tc := range []struct {
		name       string
		thresholds genomics.Thresholds
		ok         bool
	}{
		{"exact targets", base, true},
		{"looser titv bound", genomics.Thresholds{MinCallRate: 950, MinHeterozygosityRate: 30, TiTvRatio: 300}, true},
		{"call rate low", genomics.Thresholds{MinCallRate: 949, MinHeterozygosityRate: 30, TiTvRatio: 42}, false},
		{"call rate high", genomics.Thresholds{MinCallRate: 951, MinHeterozygosityRate: 30, TiTvRatio: 42}, false},
		{"heterozygosity low", genomics.Thresholds{MinCallRate: 950, MinHeterozygosityRate: 29, TiTvRatio: 42}, false},
		{"heterozygosity high", genomics.Thresholds{MinCallRate: 950, MinHeterozygosityRate: 31, TiTvRatio: 42}, false},
		{"titv bound violated", genomics.Thresholds{MinCallRate: 950, MinHeterozygosityRate: 30, TiTvRatio: 41}, false},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := test.IsSolved(&qcstats.Circuit{}, assignment(t, markers, tc.thresholds), field)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}

func TestCircuitAllMissingPanel(t *testing.T) {
	// every division denominator except the panel size is zero; the guards
	// make all three rates zero
	markers := make([]genomics.GeneticMarker, genomics.PanelSize)
	good := assignment(t, markers, genomics.Thresholds{})
	require.NoError(t, test.IsSolved(&qcstats.Circuit{}, good, ecc.BN254.ScalarField()))

	bad := assignment(t, markers, genomics.Thresholds{MinCallRate: 1})
	require.Error(t, test.IsSolved(&qcstats.Circuit{}, bad, ecc.BN254.ScalarField()))
}

func TestCircuitChallengeBinding(t *testing.T) {
	// the commitment is opaque: any value solves as long as prover and
	// verifier agree on it
	markers := typicalPanel()
	thresholds := genomics.Thresholds{MinCallRate: 950, MinHeterozygosityRate: 30, TiTvRatio: 42}

	challenge := new(big.Int)
	challenge.SetString("2f5c01d493f0b92bb1bd0c2a9f7e2a8e31c7a86a5dbb7a3a2db6ff2e16e50c2a", 16)
	a, err := qcstats.NewAssignment(markers, challenge, thresholds)
	require.NoError(t, err)
	require.NoError(t, test.IsSolved(&qcstats.Circuit{}, a, ecc.BN254.ScalarField()))
}

func TestCircuitEndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("groth16 over the full panel")
	}
	assert := test.NewAssert(t)
	markers := typicalPanel()
	good := assignment(t, markers, genomics.Thresholds{MinCallRate: 950, MinHeterozygosityRate: 30, TiTvRatio: 42})
	assert.ProverSucceeded(&qcstats.Circuit{}, good,
		test.WithCurves(ecc.BN254), test.WithBackends(backend.GROTH16))
}

func TestNewAssignmentWrongCardinality(t *testing.T) {
	_, err := qcstats.NewAssignment(typicalPanel()[:10], big.NewInt(1), genomics.Thresholds{})
	require.Error(t, err)
}
