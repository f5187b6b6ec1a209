// Package qcstats implements the genotype quality-control circuit.
//
// The circuit re-derives the three QC rates of genomics.ComputeMetrics over a
// fixed panel of genetics markers carried as witness, then constrains them
// against the public targets: exact equality for the call rate and the
// heterozygosity rate, an upper bound for the ti/tv rate. A proof therefore
// attests that a private panel satisfies the published thresholds without
// revealing a single genotype.
//
// The panel size is a compile-time bound (genomics.PanelSize); all arithmetic
// is unsigned with truncating division, matching the native engine exactly.
package qcstats
