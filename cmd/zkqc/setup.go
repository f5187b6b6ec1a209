package main

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/spf13/cobra"

	"github.com/w3p-hackathon/zkcircuitverification/circuits/qcstats"
	"github.com/w3p-hackathon/zkcircuitverification/logger"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "compile the QC circuit and run the Groth16 setup",
	Long: `setup compiles the QC circuit into an R1CS and runs the Groth16 key
generation, writing the constraint system, proving key and verifying key to
disk. Note that the single-party setup is for development; a production
deployment needs an MPC ceremony.`,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().StringVar(&cfg.Circuit, "r1cs", cfg.Circuit, "output path for the compiled constraint system")
	setupCmd.Flags().StringVar(&cfg.ProvingKey, "pk", cfg.ProvingKey, "output path for the proving key")
	setupCmd.Flags().StringVar(&cfg.VerifyingKey, "vk", cfg.VerifyingKey, "output path for the verifying key")
}

func runSetup(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	log.Info().Int("panelSize", qcstats.PanelSize).Msg("compiling QC circuit")
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &qcstats.Circuit{})
	if err != nil {
		return err
	}
	log.Info().Int("nbConstraints", ccs.GetNbConstraints()).Msg("circuit compiled")

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return err
	}

	if err := writeTo(cfg.Circuit, ccs); err != nil {
		return err
	}
	if err := writeTo(cfg.ProvingKey, pk); err != nil {
		return err
	}
	if err := writeTo(cfg.VerifyingKey, vk); err != nil {
		return err
	}

	log.Info().
		Str("r1cs", cfg.Circuit).
		Str("pk", cfg.ProvingKey).
		Str("vk", cfg.VerifyingKey).
		Msg("setup artifacts written")
	return nil
}
