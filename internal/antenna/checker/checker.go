// Package checker implements Checker, the antenna rule checker's
// top-level entry point: it drives LayerGeometry, Connectivity and
// RatioEngine over a design's nets, estimates diode-count repairs for
// whatever violates, and renders the result (spec.md §4.5).
package checker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/exa-laboratories/OpenROAD/internal/antenna/connectivity"
	"github.com/exa-laboratories/OpenROAD/internal/antenna/geometry"
	"github.com/exa-laboratories/OpenROAD/internal/antenna/ratio"
	"github.com/exa-laboratories/OpenROAD/internal/antenna/rulestore"
	"github.com/exa-laboratories/OpenROAD/internal/pdb"
	"github.com/exa-laboratories/OpenROAD/internal/telemetry"
)

// defaultMaxDiodeCount is the fixed diode cap used when
// Options.MaxDiodeCount is left at zero.
const defaultMaxDiodeCount = 64

// Options configures a Checker.
type Options struct {
	// Margin scales every threshold before comparison (1.0 = as
	// written in the technology rule, 0.9 = flag at 90% of the rule's
	// limit for early warning runs). Zero is treated as 1.0.
	Margin float64

	// DiodeMTerm is the antenna-repair diode cell's master terminal,
	// used to estimate repair counts. Nil disables diode-count
	// estimation; violations are still reported without a count.
	DiodeMTerm *pdb.MTerm

	// MaxDiodeCount overrides defaultMaxDiodeCount.
	MaxDiodeCount int

	// Parallelism is the number of nets CheckAllNets may check
	// concurrently. Zero or one means sequential.
	Parallelism int

	// Metrics, when set, receives per-check counters and timings.
	Metrics *telemetry.Metrics

	// Logger receives structured run events. Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) margin() float64 {
	if o.Margin == 0 {
		return 1.0
	}
	return o.Margin
}

func (o Options) maxDiodeCount() int {
	if o.MaxDiodeCount > 0 {
		return o.MaxDiodeCount
	}
	return defaultMaxDiodeCount
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Checker runs antenna checks against a pdb.Database.
type Checker struct {
	db    pdb.Database
	store *rulestore.Store
	opts  Options
}

// New builds a Checker, deriving the RuleStore once from db's layer
// stack (spec.md lifecycle: build on design load, read concurrently
// thereafter).
func New(db pdb.Database, opts Options) *Checker {
	return &Checker{db: db, store: rulestore.Build(db.Layers()), opts: opts}
}

// Warnings returns the DataWarnings RuleStore accumulated while
// deriving antenna models. Warnings raised by CheckNet are not
// included; those are returned per call in NetResult.Warnings.
func (c *Checker) Warnings() []rulestore.Warning {
	return c.store.Warnings()
}

// CheckNet runs the full LayerGeometry -> Connectivity -> RatioEngine
// -> diode-estimate pipeline for one net.
func (c *Checker) CheckNet(ctx context.Context, netName string) (*NetResult, error) {
	net, ok := c.db.Net(netName)
	if !ok {
		return nil, fmt.Errorf("checker: net %q not found", netName)
	}
	if net.Special {
		return nil, ErrSpecialNet
	}

	ctx, span := telemetry.StartCheckNetSpan(ctx, netName)
	defer span.End()
	start := time.Now()

	graph, err := geometry.Build(net, c.db)
	if err != nil {
		return nil, fmt.Errorf("checker: building geometry for net %q: %w", netName, err)
	}
	sets := connectivity.Compute(net, graph)
	records := ratio.Compute(graph, sets, c.store)

	result := &NetResult{Net: netName}
	for _, w := range graph.AdjacencyWarnings {
		result.Warnings = append(result.Warnings, DataWarning{Net: netName, Detail: w})
	}

	margin := c.opts.margin()
	violated := false
	for _, rec := range records {
		scaled := applyMargin(rec, margin)
		if scaled.Violated() {
			violated = true
			if c.opts.Metrics != nil {
				c.opts.Metrics.ObservePinViolations(1)
			}
			entry := Violation{Record: scaled}
			if c.opts.DiodeMTerm != nil {
				count, saturated := estimateRepair(scaled, c.opts.DiodeMTerm.GateArea(), c.opts.DiodeMTerm.DiffArea(), c.opts.maxDiodeCount())
				entry.DiodeCount = count
				entry.Saturated = saturated
				if c.opts.Metrics != nil {
					c.opts.Metrics.ObserveDiodeInsertions(count)
				}
				if saturated {
					c.opts.Metrics.ObserveRepairSaturation()
					result.Saturations = append(result.Saturations, RepairSaturation{
						Net: netName, Layer: rec.Layer, SetID: rec.SetID, DiodeCount: count,
					})
				}
			}
			result.Violations = append(result.Violations, entry)
		}
		result.Records = append(result.Records, scaled)
	}

	if violated && c.opts.Metrics != nil {
		c.opts.Metrics.ObserveNetViolation()
	}
	c.opts.Metrics.ObserveCheckNetDuration(time.Since(start).Seconds())
	c.opts.logger().Debug("checked net", "net", netName, "violations", len(result.Violations))

	return result, nil
}

// applyMargin rescales a record's thresholds by margin without
// touching the computed ratio values, then recomputes the Violated
// flags. margin < 1 makes the check stricter (flags earlier).
func applyMargin(rec ratio.InfoRecord, margin float64) ratio.InfoRecord {
	if margin == 1.0 {
		return rec
	}
	rec.ParThreshold *= margin
	rec.PsrThreshold *= margin
	rec.CarThreshold *= margin
	rec.CsrThreshold *= margin
	rec.ParViolated = rec.ParThreshold > 0 && rec.ActivePAR() > rec.ParThreshold
	rec.PsrViolated = rec.PsrThreshold > 0 && rec.ActivePSR() > rec.PsrThreshold
	rec.CarViolated = rec.CarThreshold > 0 && rec.ActiveCAR() > rec.CarThreshold
	rec.CsrViolated = rec.CsrThreshold > 0 && rec.ActiveCSR() > rec.CsrThreshold
	return rec
}

// CheckAllNets runs CheckNet over every non-special net in the
// design, optionally in parallel (Options.Parallelism), and returns a
// design-wide Summary.
func (c *Checker) CheckAllNets(ctx context.Context) (*Summary, error) {
	nets := c.db.Nets()
	routed := false
	for _, n := range nets {
		if len(n.Segments) > 0 || len(n.Vias) > 0 {
			routed = true
			break
		}
	}
	if !routed {
		return nil, ErrNoRoutesInDesign
	}

	results := make([]*NetResult, len(nets))
	errs := make([]error, len(nets))

	g, gctx := errgroup.WithContext(ctx)
	if p := c.opts.Parallelism; p > 1 {
		g.SetLimit(p)
	} else {
		g.SetLimit(1)
	}

	for i, n := range nets {
		i, n := i, n
		g.Go(func() error {
			if n.Special {
				return nil
			}
			res, err := c.CheckNet(gctx, n.Name)
			results[i] = res
			errs[i] = err
			return nil
		})
	}
	// errgroup's own error is never set here: per-net errors are
	// collected in errs so one bad net does not cancel the rest.
	_ = g.Wait()

	summary := &Summary{}
	for i, res := range results {
		if err := errs[i]; err != nil {
			if err == ErrSpecialNet {
				continue
			}
			summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", nets[i].Name, err))
			continue
		}
		if res == nil {
			continue
		}
		summary.NetsChecked++
		if len(res.Violations) > 0 {
			summary.NetsViolated++
		}
		summary.TotalViolations += len(res.Violations)
		summary.Results = append(summary.Results, res)
		summary.Warnings = append(summary.Warnings, res.Warnings...)
		summary.Saturations = append(summary.Saturations, res.Saturations...)
	}
	return summary, nil
}
