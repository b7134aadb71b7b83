package pdb

// Direction is a layer's preferred routing direction.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionHorizontal
	DirectionVertical
)

// AntennaRule carries the per-layer antenna parameters as they arrive
// from the technology database, already resolved to plain numbers —
// no further parsing happens downstream of this struct.
type AntennaRule struct {
	// AreaFactor scales partial area ratio. If AreaFactorDiffOnly is
	// set, it only ever multiplies the diffusion-connected branch
	// (diff_metal_factor / diff_cut_factor); otherwise it multiplies
	// both the diffusion and non-diffusion branches.
	AreaFactor        float64
	AreaFactorDiffOnly bool

	// SideAreaFactor is the side-area analogue of AreaFactor. It has
	// no via-layer counterpart: vias contribute zero side area.
	SideAreaFactor        float64
	SideAreaFactorDiffOnly bool

	// MinusDiffFactor and PlusDiffFactor are the additive/
	// multiplicative diffusion-area adjustments in the diff_PAR/
	// diff_PSR formulas. Both default to 0.
	MinusDiffFactor float64
	PlusDiffFactor  float64

	// AreaDiffReduce is the areaDiffReduce(diff_area) -> factor PWL
	// table. An empty table behaves as a constant 1.0.
	AreaDiffReduce PWLTable

	// Fixed thresholds. A value of 0 means "unset" (skip the fixed
	// check for this ratio; fall through to the PWL threshold).
	PAR, PSR, CAR, CSR float64

	// PWL thresholds as functions of diffusion area. Consulted only
	// when the corresponding fixed threshold above is 0.
	DiffPAR, DiffPSR, DiffCAR, DiffCSR PWLTable
}

// Layer describes one entry in the technology layer stack.
type Layer struct {
	Name         string
	RoutingLevel int // 0 = cut/via layer, >=1 = metal layer
	Direction    Direction
	WidthUM      float64
	ThicknessUM  float64

	// Rule is nil when the layer has no default antenna rule (normal
	// for top layers and the substrate) — checks against this layer
	// are silently skipped (RuleGap, spec.md §7).
	Rule *AntennaRule

	// CumulativeIncludesCuts mirrors the legacy "CAR wire roots with
	// matching via roots" behavior: when set, a wire layer's
	// cumulative area ratio additionally folds in the PAR
	// contribution of via islands in the same connectivity set.
	CumulativeIncludesCuts bool

	upper *Layer
	lower *Layer
}

// Upper returns the next layer up the stack, or nil at the top.
func (l *Layer) Upper() *Layer { return l.upper }

// Lower returns the next layer down the stack, or nil at the bottom.
func (l *Layer) Lower() *Layer { return l.lower }

// IsCut reports whether this is a via/cut layer rather than a metal
// layer.
func (l *Layer) IsCut() bool { return l.RoutingLevel == 0 }
