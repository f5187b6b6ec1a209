package main

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/spf13/cobra"

	"github.com/w3p-hackathon/zkcircuitverification/circuits/qcstats"
	"github.com/w3p-hackathon/zkcircuitverification/dataset"
	"github.com/w3p-hackathon/zkcircuitverification/logger"
)

var (
	fChallenge string
	fMinHet    uint32
	fTiTv      uint32
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "verify a QC proof against the public targets",
	Long: `verify checks a Groth16 proof against the public inputs: the
challenge commitment of the panel and the published heterozygosity and ti/tv
targets. The verifier never sees the panel itself.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVar(&cfg.VerifyingKey, "vk", cfg.VerifyingKey, "path of the verifying key")
	verifyCmd.Flags().StringVar(&cfg.Proof, "proof", cfg.Proof, "path of the proof")
	verifyCmd.Flags().StringVar(&fChallenge, "challenge", "", "hex challenge hash the proof is bound to")
	verifyCmd.Flags().Uint32Var(&fMinHet, "min-heterozygosity", 0, "expected heterozygosity rate (scaled by 100)")
	verifyCmd.Flags().Uint32Var(&fTiTv, "ti-tv", 0, "allowed ti/tv ratio upper bound (scaled by 100)")
	_ = verifyCmd.MarkFlagRequired("challenge")
}

func runVerify(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	vk := groth16.NewVerifyingKey(ecc.BN254)
	if err := readFrom(cfg.VerifyingKey, vk); err != nil {
		return err
	}
	proof := groth16.NewProof(ecc.BN254)
	if err := readFrom(cfg.Proof, proof); err != nil {
		return err
	}

	challenge, err := dataset.ChallengeBinding(fChallenge)
	if err != nil {
		return err
	}
	assignment := qcstats.NewPublicAssignment(challenge, fMinHet, fTiTv)
	publicWitness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return err
	}

	if err := groth16.Verify(proof, vk, publicWitness); err != nil {
		return err
	}
	log.Info().Str("challenge", fChallenge).Msg("proof verified")
	return nil
}
