package ratio

import (
	"github.com/exa-laboratories/OpenROAD/internal/antenna/connectivity"
	"github.com/exa-laboratories/OpenROAD/internal/antenna/geometry"
	"github.com/exa-laboratories/OpenROAD/internal/antenna/rulestore"
	"github.com/exa-laboratories/OpenROAD/internal/pdb"
)

// cumulative tracks the running sums CAR/CSR (and their diff
// counterparts) are built from as RatioEngine walks one connectivity
// set's layers bottom to top.
type cumulative struct {
	wirePAR, viaPAR         float64
	wirePSR, viaPSR         float64
	diffWirePAR, diffViaPAR float64
	diffWirePSR, diffViaPSR float64
}

// Compute produces one InfoRecord per (layer, connectivity set) pair
// that carries rule-bearing geometry, in bottom-to-top layer order.
// Layers with no antenna rule in store are skipped entirely (RuleGap,
// spec.md §7).
func Compute(g *geometry.LayeredGraph, sets []*connectivity.Set, store *rulestore.Store) []InfoRecord {
	islandToSet := make(map[geometry.IslandID]int, len(g.All))
	for si, s := range sets {
		for _, isl := range s.Islands {
			islandToSet[isl.ID] = si
		}
	}

	cums := make([]cumulative, len(sets))
	var records []InfoRecord

	for _, layer := range g.Order {
		model, ok := store.Lookup(layer.Name)
		if !ok {
			continue
		}

		areaBySet := make(map[int]float64)
		perimBySet := make(map[int]float64)
		gatesBySet := make(map[int]map[pdb.Terminal]struct{})
		for _, isl := range g.ByLayer[layer.Name] {
			si, ok := islandToSet[isl.ID]
			if !ok {
				continue
			}
			areaBySet[si] += isl.Area()
			perimBySet[si] += isl.Perimeter()
			if len(isl.Gates) == 0 {
				continue
			}
			if gatesBySet[si] == nil {
				gatesBySet[si] = make(map[pdb.Terminal]struct{}, len(isl.Gates))
			}
			for t := range isl.Gates {
				gatesBySet[si][t] = struct{}{}
			}
		}

		for si := range sets {
			area, ok := areaBySet[si]
			if !ok {
				continue
			}
			set := sets[si]
			perim := perimBySet[si]
			rec := buildRecord(layer, area, perim, set.ID, gatesBySet[si], model, &cums[si])
			records = append(records, rec)
		}
	}
	return records
}

func buildRecord(layer *pdb.Layer, area, perim float64, setID int, gates map[pdb.Terminal]struct{}, model rulestore.AntennaModel, c *cumulative) InfoRecord {
	var gateArea, diffArea float64
	for t := range gates {
		gateArea += t.Master().GateArea()
		diffArea += t.Master().DiffArea()
	}
	diffConnected := diffArea > 0

	// Cut layers contribute no side area, so their side terms stay 0.
	var scaledArea, diffScaledArea, scaledSide, diffScaledSide float64
	if layer.IsCut() {
		scaledArea = area * model.CutFactor
		diffScaledArea = area * model.DiffCutFactor
	} else {
		scaledArea = area * model.MetalFactor
		diffScaledArea = area * model.DiffMetalFactor
		scaledSide = perim * layer.ThicknessUM * model.SideMetalFactor
		diffScaledSide = perim * layer.ThicknessUM * model.DiffSideMetalFactor
	}

	rec := InfoRecord{
		Layer:         layer.Name,
		SetID:         setID,
		IsCut:         layer.IsCut(),
		DiffConnected: diffConnected,
		GateArea:      gateArea,
		DiffArea:      diffArea,
		GateCount:     len(gates),
	}

	rec.ScaledArea = scaledArea
	rec.ScaledSide = scaledSide
	rec.DiffScaledArea = diffScaledArea
	rec.DiffScaledSide = diffScaledSide
	rec.MinusDiffFactor = model.MinusDiffFactor
	rec.PlusDiffFactor = model.PlusDiffFactor

	if gateArea > 0 {
		if diffConnected {
			rec.PAR = diffScaledArea / gateArea
			rec.PSR = diffScaledSide / gateArea
		} else {
			rec.PAR = scaledArea / gateArea
			rec.PSR = scaledSide / gateArea
		}
	}

	reduceFactor := model.AreaDiffReduce.Eval(diffArea, model.DiffMetalReduceFactor)
	rec.ReduceFactor = reduceFactor
	diffDenom := gateArea + model.PlusDiffFactor*diffArea
	if diffDenom > 0 {
		rec.DiffPAR = reduceFactor * (diffScaledArea - model.MinusDiffFactor*diffArea) / diffDenom
		rec.DiffPSR = reduceFactor * (diffScaledSide - model.MinusDiffFactor*diffArea) / diffDenom
	}

	if layer.IsCut() {
		c.viaPAR += rec.PAR
		c.viaPSR += rec.PSR
		c.diffViaPAR += rec.DiffPAR
		c.diffViaPSR += rec.DiffPSR
	} else {
		c.wirePAR += rec.PAR
		c.wirePSR += rec.PSR
		c.diffWirePAR += rec.DiffPAR
		c.diffWirePSR += rec.DiffPSR
	}

	if layer.CumulativeIncludesCuts && !layer.IsCut() {
		rec.CAR = c.wirePAR + c.viaPAR
		rec.CSR = c.wirePSR + c.viaPSR
		rec.DiffCAR = c.diffWirePAR + c.diffViaPAR
		rec.DiffCSR = c.diffWirePSR + c.diffViaPSR
	} else {
		rec.CAR = c.wirePAR
		rec.CSR = c.wirePSR
		rec.DiffCAR = c.diffWirePAR
		rec.DiffCSR = c.diffWirePSR
	}

	rule := layer.Rule
	if rule != nil {
		rec.ParThreshold = threshold(rule.PAR, rule.DiffPAR, diffArea)
		rec.PsrThreshold = threshold(rule.PSR, rule.DiffPSR, diffArea)
		rec.CarThreshold = threshold(rule.CAR, rule.DiffCAR, diffArea)
		rec.CsrThreshold = threshold(rule.CSR, rule.DiffCSR, diffArea)

		rec.ParViolated = rec.ParThreshold > 0 && rec.ActivePAR() > rec.ParThreshold
		rec.PsrViolated = rec.PsrThreshold > 0 && rec.ActivePSR() > rec.PsrThreshold
		rec.CarViolated = rec.CarThreshold > 0 && rec.ActiveCAR() > rec.CarThreshold
		rec.CsrViolated = rec.CsrThreshold > 0 && rec.ActiveCSR() > rec.CsrThreshold
	}

	rec.MaxWireLengthPAR = backCalculateLength(rec.ParThreshold, gateArea, layer.WidthUM, model.MetalFactor)
	rec.MaxWireLengthPSR = backCalculateLength(rec.PsrThreshold, gateArea, 2*layer.ThicknessUM, model.SideMetalFactor)
	rec.MaxWireLengthDiffPAR = backCalculateDiffLength(rec.ParThreshold, gateArea, diffArea, layer.WidthUM, model.DiffMetalFactor, model.MinusDiffFactor, model.PlusDiffFactor, reduceFactor)
	rec.MaxWireLengthDiffPSR = backCalculateDiffLength(rec.PsrThreshold, gateArea, diffArea, 2*layer.ThicknessUM, model.DiffSideMetalFactor, model.MinusDiffFactor, model.PlusDiffFactor, reduceFactor)

	return rec
}

// threshold returns the fixed threshold if nonzero, otherwise the PWL
// table evaluated at diffArea (0 if the table is also empty, meaning
// RuleGap — no check).
func threshold(fixed float64, pwl pdb.PWLTable, diffArea float64) float64 {
	if fixed != 0 {
		return fixed
	}
	return pwl.Eval(diffArea, 0)
}

// backCalculateLength inverts ratio = (widthLike*length*factor)/gateArea
// for length, holding width, gate area and factor fixed. It is an
// approximation for side area (perimeter of a long thin wire is
// roughly twice its length) used purely for diagnostics, never for
// the violation verdict itself.
func backCalculateLength(ratioThreshold, gateArea, widthLike, factor float64) float64 {
	if ratioThreshold <= 0 || gateArea <= 0 || widthLike <= 0 || factor <= 0 {
		return 0
	}
	return ratioThreshold * gateArea / (widthLike * factor)
}

func backCalculateDiffLength(ratioThreshold, gateArea, diffArea, widthLike, diffFactor, minusDiff, plusDiff, reduceFactor float64) float64 {
	if ratioThreshold <= 0 || widthLike <= 0 || diffFactor <= 0 || reduceFactor <= 0 {
		return 0
	}
	numerator := ratioThreshold*(gateArea+plusDiff*diffArea)/reduceFactor + minusDiff*diffArea
	if numerator <= 0 {
		return 0
	}
	return numerator / (widthLike * diffFactor)
}
