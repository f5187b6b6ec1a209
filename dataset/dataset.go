// Package dataset loads encoded genotype panels. A panel file is the TOML
// document produced by the protocol's dataset encoder: a header with the
// challenge commitment and the QC targets, followed by one [[dna]] table per
// marker with numerically encoded alleles and chromosomes.
//
// Raw genotype exports (23andMe TSV, VCF, ...) are not parsed here; encoding
// them into this format is the job of the external encoder.
package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/w3p-hackathon/zkcircuitverification/genomics"
)

// ErrChallengeMismatch is returned when the challenge_hash header does not
// match the hash recomputed over the markers, i.e. the file was edited after
// encoding.
var ErrChallengeMismatch = errors.New("challenge hash does not match panel contents")

// Panel is a decoded genotype panel. RSIDs runs parallel to Markers; it is
// needed only for the challenge-hash preimage.
type Panel struct {
	ChallengeHash string
	Thresholds    genomics.Thresholds
	RSIDs         []string
	Markers       []genomics.GeneticMarker
}

// markerTable is one [[dna]] entry on the wire.
type markerTable struct {
	Allele1    uint8  `toml:"allele1"`
	Allele2    uint8  `toml:"allele2"`
	Chromosome uint8  `toml:"chromosome"`
	Position   uint32 `toml:"position"`
	RSID       string `toml:"rsid"`
}

// panelFile is the full TOML document. The encoder writes the targets as
// decimal-fraction strings; they are rescaled to the integer domain here.
type panelFile struct {
	ChallengeHash         string        `toml:"challenge_hash"`
	MinCallRate           string        `toml:"min_call_rate"`
	MinHeterozygosityRate string        `toml:"min_heterozygosity_rate"`
	TiTvRatio             string        `toml:"ti_tv_ratio"`
	DNA                   []markerTable `toml:"dna"`
}

// Decode reads a panel document and verifies its challenge commitment.
// Cardinality is not enforced here; Load adds the fixed-panel precondition.
func Decode(r io.Reader) (*Panel, error) {
	var f panelFile
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding panel: %w", err)
	}

	p := &Panel{
		ChallengeHash: f.ChallengeHash,
		RSIDs:         make([]string, len(f.DNA)),
		Markers:       make([]genomics.GeneticMarker, len(f.DNA)),
	}
	for i, t := range f.DNA {
		p.RSIDs[i] = t.RSID
		p.Markers[i] = genomics.GeneticMarker{
			Chromosome: t.Chromosome,
			Position:   t.Position,
			Allele1:    t.Allele1,
			Allele2:    t.Allele2,
		}
	}

	var err error
	if p.Thresholds.MinCallRate, err = scaledRate(f.MinCallRate, genomics.CallRateScale); err != nil {
		return nil, fmt.Errorf("min_call_rate: %w", err)
	}
	if p.Thresholds.MinHeterozygosityRate, err = scaledRate(f.MinHeterozygosityRate, genomics.HeterozygosityScale); err != nil {
		return nil, fmt.Errorf("min_heterozygosity_rate: %w", err)
	}
	if p.Thresholds.TiTvRatio, err = scaledRate(f.TiTvRatio, genomics.TiTvScale); err != nil {
		return nil, fmt.Errorf("ti_tv_ratio: %w", err)
	}
	p.Thresholds.ChallengeHash = f.ChallengeHash

	if computed := ChallengeHash(p.RSIDs, p.Markers); computed != f.ChallengeHash {
		return nil, fmt.Errorf("%w: header %s, computed %s", ErrChallengeMismatch, f.ChallengeHash, computed)
	}

	return p, nil
}

// Load reads a panel file from disk and enforces the fixed panel size the
// circuit was compiled for.
func Load(path string) (*Panel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening panel: %w", err)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(p.Markers) != genomics.PanelSize {
		return nil, fmt.Errorf("%s: panel holds %d markers, expected %d", path, len(p.Markers), genomics.PanelSize)
	}
	return p, nil
}

// ChallengeHash computes the panel commitment: SHA-256 over the
// concatenation of rsid, chromosome, position, allele1 and allele2 for each
// marker in order, all numbers in decimal with no separators. This is the
// preimage layout of the dataset encoder and must not change.
func ChallengeHash(rsids []string, markers []genomics.GeneticMarker) string {
	var b strings.Builder
	for i, m := range markers {
		b.WriteString(rsids[i])
		b.WriteString(strconv.FormatUint(uint64(m.Chromosome), 10))
		b.WriteString(strconv.FormatUint(uint64(m.Position), 10))
		b.WriteString(strconv.FormatUint(uint64(m.Allele1), 10))
		b.WriteString(strconv.FormatUint(uint64(m.Allele2), 10))
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// ChallengeBinding maps a hex challenge hash to the integer carried as the
// circuit's public commitment input. The 256-bit digest is wider than the
// scalar field, so the witness builder reduces it; both prover and verifier
// apply the same reduction, keeping the binding consistent.
func ChallengeBinding(challengeHash string) (*big.Int, error) {
	raw, err := hex.DecodeString(challengeHash)
	if err != nil {
		return nil, fmt.Errorf("challenge hash is not hex: %w", err)
	}
	return new(big.Int).SetBytes(raw), nil
}

// scaledRate converts a non-negative decimal-fraction string ("0.950000",
// "2", "2.5") to the scaled-integer domain, truncating excess precision.
// scale must be a power of ten.
func scaledRate(s string, scale uint32) (uint32, error) {
	digits := 0
	for f := scale; f > 1; f /= 10 {
		digits++
	}

	intPart, fracPart, _ := strings.Cut(strings.TrimSpace(s), ".")
	if intPart == "" {
		intPart = "0"
	}
	whole, err := strconv.ParseUint(intPart, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid rate %q: %w", s, err)
	}

	// truncate (not round) the fractional digits to the scale's precision
	if len(fracPart) > digits {
		fracPart = fracPart[:digits]
	}
	for len(fracPart) < digits {
		fracPart += "0"
	}
	var frac uint64
	if digits > 0 {
		if frac, err = strconv.ParseUint(fracPart, 10, 32); err != nil {
			return 0, fmt.Errorf("invalid rate %q: %w", s, err)
		}
	}

	v := whole*uint64(scale) + frac
	if v > uint64(^uint32(0)) {
		return 0, fmt.Errorf("rate %q overflows scaled domain", s)
	}
	return uint32(v), nil
}
