// zkqc is a CLI around the genotype QC circuit: it compiles the constraint
// system, proves that an encoded genotype panel satisfies the public QC
// targets, and verifies such proofs.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"

	"github.com/w3p-hackathon/zkcircuitverification/logger"
)

// config carries the artifact paths, overridable per flag or through the
// environment (ZKQC_DATASET, ZKQC_CIRCUIT, ...).
type config struct {
	Dataset      string `envconfig:"DATASET" default:"genetic_data.toml"`
	Circuit      string `envconfig:"CIRCUIT" default:"qcstats.r1cs"`
	ProvingKey   string `envconfig:"PK" default:"qcstats.pk"`
	VerifyingKey string `envconfig:"VK" default:"qcstats.vk"`
	Proof        string `envconfig:"PROOF" default:"qcstats.proof"`
}

// cfg is resolved from the environment before the subcommand init functions
// register flags, so flag defaults reflect ZKQC_* overrides.
var cfg = loadConfig()

func loadConfig() config {
	var c config
	envconfig.MustProcess("zkqc", &c)
	return c
}

var rootCmd = &cobra.Command{
	Use:           "zkqc",
	Short:         "prove and verify genotype panel quality without revealing the panel",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.Logger()
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// writeTo serializes a setup or proof artifact to disk.
func writeTo(path string, v io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := v.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// readFrom deserializes an artifact written by writeTo.
func readFrom(path string, v io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := v.ReadFrom(f); err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	return nil
}
