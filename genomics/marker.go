// Package genomics holds the genotype panel data model and the native
// quality-control engine. The in-circuit rendition of the same logic lives in
// circuits/qcstats; the two must stay in lockstep so that witness-side metrics
// match what the constraint system enforces, bit for bit.
package genomics

import "strconv"

// PanelSize is the fixed cardinality of a genotype panel. The proving circuit
// uses it as a compile-time iteration bound, so datasets must be encoded to
// exactly this many markers.
const PanelSize = 1000

// Allele encoding. Nucleotides are carried as small integers so they can be
// used directly as field elements in the circuit.
const (
	AlleleMissing uint8 = 0
	AlleleA       uint8 = 1
	AlleleT       uint8 = 2
	AlleleG       uint8 = 3
	AlleleC       uint8 = 4
)

// Chromosome encoding for the non-autosomes. Autosomes keep their number.
const (
	ChromosomeX  uint8 = 23
	ChromosomeY  uint8 = 24
	ChromosomeMT uint8 = 25
)

// GeneticMarker is one genotype record. Markers are immutable once
// constructed. Position is carried for the challenge-hash preimage and is not
// consulted by the classification logic.
type GeneticMarker struct {
	Chromosome uint8
	Position   uint32
	Allele1    uint8
	Allele2    uint8
}

// Missing reports whether the genotype call failed on either allele.
func (m GeneticMarker) Missing() bool {
	return m.Allele1 == AlleleMissing || m.Allele2 == AlleleMissing
}

// Heterozygous reports whether both alleles are called and differ.
func (m GeneticMarker) Heterozygous() bool {
	return !m.Missing() && m.Allele1 != m.Allele2
}

// transitionPair reports whether the marker matches one of the two exact
// allele-order transition patterns (A/G or T/C). The order sensitivity is part
// of the verification protocol; see qcCounters.observe.
func (m GeneticMarker) transitionPair() bool {
	return (m.Allele1 == AlleleA && m.Allele2 == AlleleG) ||
		(m.Allele1 == AlleleT && m.Allele2 == AlleleC)
}

// EncodeAllele maps a genotype character to its numeric encoding.
// A=1, T=2, G=3, C=4; no-calls and indels ("0", "-", "D", "I") and anything
// unrecognized map to 0.
func EncodeAllele(s string) uint8 {
	switch s {
	case "A", "a":
		return AlleleA
	case "T", "t":
		return AlleleT
	case "G", "g":
		return AlleleG
	case "C", "c":
		return AlleleC
	default:
		return AlleleMissing
	}
}

// EncodeChromosome maps a chromosome label to its numeric encoding:
// 1-22 keep their value, X=23, Y=24, MT/M=25. Invalid labels map to 0.
func EncodeChromosome(s string) uint8 {
	switch s {
	case "X", "x":
		return ChromosomeX
	case "Y", "y":
		return ChromosomeY
	case "MT", "Mt", "mt", "M", "m":
		return ChromosomeMT
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 22 {
		return 0
	}
	return uint8(n)
}
