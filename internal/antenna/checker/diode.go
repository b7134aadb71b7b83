package checker

import "github.com/exa-laboratories/OpenROAD/internal/antenna/ratio"

// estimateRepair returns the number of per-gate diode insertion rounds
// that would need to land on rec's connectivity set before none of
// its four ratios exceed their threshold, and whether the cap at
// maxDiodes was hit first (RepairSaturation, spec.md §7). Each round
// inserts one diode per gate on the record, so gate/diff area grows
// by diode.GateArea()/DiffArea() times rec.GateCount per round.
//
// For a non-diffusion-connected record every ratio is rescaled by the
// grown gate area alone (each is linear in 1/gateArea); the diode's
// diffusion area added by the loop is not applied to such a record,
// which keeps the non-diffusion formulas throughout. For a
// diffusion-connected record the PWL area-reduce
// factor is held at its snapshot value through the loop rather than
// re-evaluated at the grown diffusion area — an approximation, since
// this is a repair-size estimate, not the violation verdict itself
// (which RatioEngine already settled before diode insertion runs at
// all).
func estimateRepair(rec ratio.InfoRecord, diodeGateArea, diodeDiffArea float64, maxDiodes int) (count int, saturated bool) {
	if !rec.Violated() {
		return 0, false
	}
	oldGateArea, oldDiffArea := rec.GateArea, rec.DiffArea
	k := float64(rec.GateCount)

	for n := 1; n <= maxDiodes; n++ {
		gateArea := oldGateArea + float64(n)*k*diodeGateArea
		diffArea := oldDiffArea + float64(n)*k*diodeDiffArea
		if !repairedRatiosViolated(rec, gateArea, diffArea) {
			return n, false
		}
	}
	return maxDiodes, true
}

func repairedRatiosViolated(rec ratio.InfoRecord, gateArea, diffArea float64) bool {
	if !rec.DiffConnected {
		if gateArea <= 0 {
			return true
		}
		par := rec.ScaledArea / gateArea
		psr := rec.ScaledSide / gateArea
		scale := 1.0
		if rec.GateArea > 0 {
			scale = rec.GateArea / gateArea
		}
		car := rec.CAR * scale
		csr := rec.CSR * scale
		return exceeds(par, rec.ParThreshold) || exceeds(psr, rec.PsrThreshold) ||
			exceeds(car, rec.CarThreshold) || exceeds(csr, rec.CsrThreshold)
	}

	diffDenom := gateArea + rec.PlusDiffFactor*diffArea
	if diffDenom <= 0 {
		return true
	}
	parD := rec.ReduceFactor * (rec.DiffScaledArea - rec.MinusDiffFactor*diffArea) / diffDenom
	psrD := rec.ReduceFactor * (rec.DiffScaledSide - rec.MinusDiffFactor*diffArea) / diffDenom

	oldDiffDenom := rec.GateArea + rec.PlusDiffFactor*rec.DiffArea
	scale := 0.0
	if oldDiffDenom > 0 {
		scale = oldDiffDenom / diffDenom
	}
	carD := rec.DiffCAR * scale
	csrD := rec.DiffCSR * scale

	return exceeds(parD, rec.ParThreshold) || exceeds(psrD, rec.PsrThreshold) ||
		exceeds(carD, rec.CarThreshold) || exceeds(csrD, rec.CsrThreshold)
}

func exceeds(value, threshold float64) bool {
	return threshold > 0 && value > threshold
}
