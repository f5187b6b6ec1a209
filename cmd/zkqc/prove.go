package main

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/w3p-hackathon/zkcircuitverification/circuits/qcstats"
	"github.com/w3p-hackathon/zkcircuitverification/dataset"
	"github.com/w3p-hackathon/zkcircuitverification/genomics"
	"github.com/w3p-hackathon/zkcircuitverification/logger"
)

var proveCmd = &cobra.Command{
	Use:   "prove",
	Short: "prove that a genotype panel satisfies its QC targets",
	Long: `prove loads an encoded panel, recomputes its QC metrics natively to
fail fast on panels that would not satisfy the circuit, then generates a
Groth16 proof over the private markers.`,
	RunE: runProve,
}

func init() {
	rootCmd.AddCommand(proveCmd)
	proveCmd.Flags().StringVar(&cfg.Dataset, "dataset", cfg.Dataset, "path of the encoded panel (TOML)")
	proveCmd.Flags().StringVar(&cfg.Circuit, "r1cs", cfg.Circuit, "path of the compiled constraint system")
	proveCmd.Flags().StringVar(&cfg.ProvingKey, "pk", cfg.ProvingKey, "path of the proving key")
	proveCmd.Flags().StringVar(&cfg.Proof, "proof", cfg.Proof, "output path for the proof")
}

func runProve(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	// the panel and the setup artifacts load independently
	var (
		panel *dataset.Panel
		ccs   constraint.ConstraintSystem
		pk    groth16.ProvingKey
	)
	g := new(errgroup.Group)
	g.Go(func() (err error) {
		panel, err = dataset.Load(cfg.Dataset)
		return err
	})
	g.Go(func() error {
		ccs = groth16.NewCS(ecc.BN254)
		return readFrom(cfg.Circuit, ccs)
	})
	g.Go(func() error {
		pk = groth16.NewProvingKey(ecc.BN254)
		return readFrom(cfg.ProvingKey, pk)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	metrics := genomics.ComputeMetricsParallel(panel.Markers)
	log.Info().
		Uint32("callRate", metrics.CallRate).
		Uint32("heterozygosityRate", metrics.HeterozygosityRate).
		Uint32("tiTvRate", metrics.TiTvRate).
		Msg("panel metrics")

	// a panel that fails natively would only fail again, slowly, in the solver
	if err := genomics.Verify(metrics, panel.Thresholds); err != nil {
		return err
	}

	challenge, err := dataset.ChallengeBinding(panel.ChallengeHash)
	if err != nil {
		return err
	}
	assignment, err := qcstats.NewAssignment(panel.Markers, challenge, panel.Thresholds)
	if err != nil {
		return err
	}
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return err
	}

	proof, err := groth16.Prove(ccs, pk, witness)
	if err != nil {
		return err
	}
	if err := writeTo(cfg.Proof, proof); err != nil {
		return err
	}

	log.Info().Str("proof", cfg.Proof).Msg("proof written")
	return nil
}
