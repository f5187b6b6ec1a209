package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/w3p-hackathon/zkcircuitverification/dataset"
	"github.com/w3p-hackathon/zkcircuitverification/genomics"
	"github.com/w3p-hackathon/zkcircuitverification/logger"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "compute a panel's QC metrics natively (no proof)",
	Long: `stats loads an encoded panel, prints the scaled QC metrics triple
and checks it against the panel's embedded targets. Useful to diagnose why a
prove run would be rejected.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().StringVar(&cfg.Dataset, "dataset", cfg.Dataset, "path of the encoded panel (TOML)")
}

func runStats(cmd *cobra.Command, args []string) error {
	log := logger.Logger()

	panel, err := dataset.Load(cfg.Dataset)
	if err != nil {
		return err
	}

	m := genomics.ComputeMetricsParallel(panel.Markers)
	fmt.Printf("call_rate              = %d (/%d)\n", m.CallRate, genomics.CallRateScale)
	fmt.Printf("heterozygosity_rate    = %d (/%d)\n", m.HeterozygosityRate, genomics.HeterozygosityScale)
	fmt.Printf("ti_tv_rate             = %d (/%d)\n", m.TiTvRate, genomics.TiTvScale)

	err = genomics.Verify(m, panel.Thresholds)
	switch {
	case err == nil:
		log.Info().Msg("panel satisfies its QC targets")
	case errors.Is(err, genomics.ErrCallRateMismatch),
		errors.Is(err, genomics.ErrHeterozygosityMismatch),
		errors.Is(err, genomics.ErrTiTvOutOfBound):
		log.Warn().Err(err).Msg("panel fails QC")
	}
	return err
}
