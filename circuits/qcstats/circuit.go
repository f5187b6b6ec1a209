package qcstats

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"github.com/w3p-hackathon/zkcircuitverification/genomics"
)

// PanelSize is the number of markers the circuit iterates over. It is a
// compile-time constant: the constraint system has one classification block
// per marker, so the panel cannot grow or shrink after compilation.
const PanelSize = genomics.PanelSize

// MarkerConstraints is one genotype record encoded as circuit variables.
// Chromosome and Position are carried in the witness for commitment
// compatibility but exercise no constraint.
type MarkerConstraints struct {
	Chromosome frontend.Variable
	Position   frontend.Variable
	Allele1    frontend.Variable
	Allele2    frontend.Variable
}

// Circuit proves that a private genotype panel satisfies public QC targets.
//
// Secret inputs: the panel itself and MinCallRate (an equality target the
// protocol keeps witness-side). Public inputs: the challenge commitment and
// the two remaining targets.
type Circuit struct {
	DNA         [PanelSize]MarkerConstraints
	MinCallRate frontend.Variable

	ChallengeHash         frontend.Variable `gnark:",public"`
	MinHeterozygosityRate frontend.Variable `gnark:",public"`
	TiTvRatio             frontend.Variable `gnark:",public"`
}

// Define declares the QC constraints. It mirrors genomics.ComputeMetrics: a
// single pass accumulating four counters, three guarded truncating divisions,
// then one predicate per target.
func (circuit *Circuit) Define(api frontend.API) error {
	var (
		missing       frontend.Variable = 0
		heterozygous  frontend.Variable = 0
		transitions   frontend.Variable = 0
		transversions frontend.Variable = 0
	)

	for i := 0; i < PanelSize; i++ {
		a1 := circuit.DNA[i].Allele1
		a2 := circuit.DNA[i].Allele2

		a1Missing := api.IsZero(a1)
		a2Missing := api.IsZero(a2)
		isMissing := api.Or(a1Missing, a2Missing)

		// heterozygous: both alleles called, and unequal
		isHom := api.IsZero(api.Sub(a1, a2))
		isHet := api.Mul(api.Sub(1, isMissing), api.Sub(1, isHom))

		// transition patterns are order-sensitive: exactly A/G or T/C
		isAG := api.Mul(
			api.IsZero(api.Sub(a1, genomics.AlleleA)),
			api.IsZero(api.Sub(a2, genomics.AlleleG)),
		)
		isTC := api.Mul(
			api.IsZero(api.Sub(a1, genomics.AlleleT)),
			api.IsZero(api.Sub(a2, genomics.AlleleC)),
		)
		isTransition := api.Or(isAG, isTC)

		// The transversion branch checks allele1 only, so markers with a
		// missing allele2 still count. Kept in lockstep with the native
		// engine; see genomics.qcCounters.
		isTransversion := api.Mul(api.Sub(1, isTransition), api.Sub(1, a1Missing))

		missing = api.Add(missing, isMissing)
		heterozygous = api.Add(heterozygous, isHet)
		transitions = api.Add(transitions, isTransition)
		transversions = api.Add(transversions, isTransversion)
	}

	// every marker counts toward the total, missing ones included
	totalValid := frontend.Variable(PanelSize)
	nonMissing := api.Sub(totalValid, missing)

	callRate := truncDiv(api, api.Mul(nonMissing, genomics.CallRateScale), totalValid)
	hetRate := truncDiv(api, api.Mul(heterozygous, genomics.HeterozygosityScale), nonMissing)
	tiTvRate := truncDiv(api, api.Mul(transitions, genomics.TiTvScale), transversions)

	// equality targets, despite the "min" naming; only ti/tv is a bound
	api.AssertIsEqual(callRate, circuit.MinCallRate)
	api.AssertIsEqual(hetRate, circuit.MinHeterozygosityRate)
	api.AssertIsLessOrEqual(tiTvRate, circuit.TiTvRatio)

	// bind the challenge commitment into the constraint system; its value is
	// opaque to the QC logic
	api.AssertIsEqual(api.Mul(circuit.ChallengeHash, 1), circuit.ChallengeHash)

	return nil
}

// NewAssignment builds a full witness assignment from a native panel and its
// targets. challenge is the panel commitment mapped into the scalar field.
func NewAssignment(markers []genomics.GeneticMarker, challenge *big.Int, t genomics.Thresholds) (*Circuit, error) {
	if len(markers) != PanelSize {
		return nil, fmt.Errorf("panel holds %d markers, circuit requires exactly %d", len(markers), PanelSize)
	}
	assignment := &Circuit{
		MinCallRate:           t.MinCallRate,
		ChallengeHash:         challenge,
		MinHeterozygosityRate: t.MinHeterozygosityRate,
		TiTvRatio:             t.TiTvRatio,
	}
	for i, m := range markers {
		assignment.DNA[i] = MarkerConstraints{
			Chromosome: m.Chromosome,
			Position:   m.Position,
			Allele1:    m.Allele1,
			Allele2:    m.Allele2,
		}
	}
	return assignment, nil
}

// NewPublicAssignment builds the verifier-side assignment: the challenge
// commitment and the two public targets, with the panel left unset.
func NewPublicAssignment(challenge *big.Int, minHeterozygosityRate, tiTvRatio uint32) *Circuit {
	return &Circuit{
		ChallengeHash:         challenge,
		MinHeterozygosityRate: minHeterozygosityRate,
		TiTvRatio:             tiTvRatio,
	}
}
