// Package ratio implements RatioEngine: given a net's connectivity
// sets and derived per-layer antenna models, it produces one
// InfoRecord per (layer, connectivity set) pair carrying the PAR,
// PSR, CAR and CSR values and their violation verdicts (spec.md
// §4.4).
package ratio

// InfoRecord is the per-layer, per-connectivity-set antenna ratio
// result. DiffConnected selects which ratio values (PAR/PSR/CAR/CSR
// vs. DiffPAR/DiffPSR/DiffCAR/DiffCSR) gated the Violated verdicts.
// The threshold each is compared against does not depend on
// DiffConnected: it is the rule's fixed value when nonzero, else its
// PWL value evaluated at DiffArea.
type InfoRecord struct {
	Layer      string
	SetID      int
	IsCut      bool
	DiffConnected bool

	GateArea  float64
	DiffArea  float64
	GateCount int

	PAR     float64
	PSR     float64
	DiffPAR float64
	DiffPSR float64

	CAR     float64
	CSR     float64
	DiffCAR float64
	DiffCSR float64

	ParThreshold float64
	PsrThreshold float64
	CarThreshold float64
	CsrThreshold float64

	ParViolated bool
	PsrViolated bool
	CarViolated bool
	CsrViolated bool

	// MaxWireLengthPAR/PSR/DiffPAR/DiffPSR are back-calculated
	// diagnostics: the wire length (in micrometers, holding width and
	// gate/diff area fixed) at which the corresponding ratio would
	// exactly reach its threshold. They are left at 0 when the
	// threshold is 0 (RuleGap) or gate area is 0 (division undefined).
	MaxWireLengthPAR     float64
	MaxWireLengthPSR     float64
	MaxWireLengthDiffPAR float64
	MaxWireLengthDiffPSR float64

	// ScaledArea/ScaledSide/DiffScaledArea/DiffScaledSide and the
	// factor snapshots below are the raw terms RatioEngine computed
	// the ratios from, before dividing by gate/diff area. The diode
	// repair estimator (internal/antenna/checker) reuses them to
	// recompute a ratio against a hypothetically larger gate/diff
	// area without re-deriving the antenna model.
	ScaledArea     float64
	ScaledSide     float64
	DiffScaledArea float64
	DiffScaledSide float64
	ReduceFactor   float64
	MinusDiffFactor float64
	PlusDiffFactor  float64
}

// Violated reports whether any of the four ratios tripped its
// threshold.
func (r InfoRecord) Violated() bool {
	return r.ParViolated || r.PsrViolated || r.CarViolated || r.CsrViolated
}

// ActivePAR and ActivePSR return whichever of the plain/diff pair
// DiffConnected selects, matching what actually drove ParViolated/
// PsrViolated.
func (r InfoRecord) ActivePAR() float64 {
	if r.DiffConnected {
		return r.DiffPAR
	}
	return r.PAR
}

func (r InfoRecord) ActivePSR() float64 {
	if r.DiffConnected {
		return r.DiffPSR
	}
	return r.PSR
}

func (r InfoRecord) ActiveCAR() float64 {
	if r.DiffConnected {
		return r.DiffCAR
	}
	return r.CAR
}

func (r InfoRecord) ActiveCSR() float64 {
	if r.DiffConnected {
		return r.DiffCSR
	}
	return r.CSR
}
