package qcstats

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
	"github.com/consensys/gnark/frontend"
)

func init() {
	// register hints
	solver.RegisterHint(GetHints()...)
}

// GetHints returns all hint functions used in this package. This method is
// useful for registering all hints in the solver.
func GetHints() []solver.Hint {
	return []solver.Hint{truncDivHint}
}

// truncDivHint computes the Euclidean quotient and remainder of
// inputs[0] / inputs[1], or (0, 0) when the denominator is zero. The gadget
// constrains both outputs, so a dishonest solver gains nothing here.
func truncDivHint(_ *big.Int, inputs, outputs []*big.Int) error {
	num, den := inputs[0], inputs[1]
	if den.Sign() == 0 {
		outputs[0].SetUint64(0)
		outputs[1].SetUint64(0)
		return nil
	}
	outputs[0].QuoRem(num, den, outputs[1])
	return nil
}

// truncDiv returns floor(num/den), or 0 when den == 0. num and den must be
// small naturals (counter-scale values, far below the field order) so that
// q*den + r cannot wrap around the field.
//
// Soundness: the hint outputs (q, r) are bound by
//
//	q*den + r == num   (num forced to 0 when den == 0)
//	r <= den - 1       (collapses to r == 0 when den == 0)
//	q <= num
//	q*denIsZero == 0   (q forced to 0 when den == 0)
//
// which over the naturals pins down the unique Euclidean pair.
func truncDiv(api frontend.API, num, den frontend.Variable) frontend.Variable {
	res, err := api.Compiler().NewHint(truncDivHint, 2, num, den)
	if err != nil {
		panic(fmt.Sprintf("error in calling truncDivHint: %v", err))
	}
	q, r := res[0], res[1]

	denIsZero := api.IsZero(den)

	api.AssertIsEqual(
		api.Add(api.Mul(q, den), r),
		api.Select(denIsZero, 0, num),
	)
	// den - 1 when den != 0, 0 when den == 0
	api.AssertIsLessOrEqual(r, api.Sub(den, api.Sub(1, denIsZero)))
	api.AssertIsLessOrEqual(q, num)
	api.AssertIsEqual(api.Mul(q, denIsZero), 0)

	return q
}
