package checker

import (
	"fmt"
	"io"
	"strings"

	"github.com/exa-laboratories/OpenROAD/internal/antenna/ratio"
)

// Violation is one violated InfoRecord, plus its estimated diode
// repair count if a diode master terminal was configured.
type Violation struct {
	Record     ratio.InfoRecord
	DiodeCount int
	Saturated  bool
}

// NetResult is the outcome of checking one net.
type NetResult struct {
	Net         string
	Records     []ratio.InfoRecord
	Violations  []Violation
	Warnings    []DataWarning
	Saturations []RepairSaturation
}

// Summary is the design-wide outcome of CheckAllNets.
type Summary struct {
	NetsChecked      int
	NetsViolated     int
	TotalViolations  int
	Results          []*NetResult
	Warnings         []DataWarning
	Saturations      []RepairSaturation
	Errors           []string
}

// WriteReport renders a human-readable report to w, in the same
// shape across a single net or a whole design: one block per
// violation, two fractional digits, a VIOLATED marker per ratio that
// tripped, separated by a blank line (spec.md §6).
func (r *NetResult) WriteReport(w io.Writer) error {
	if len(r.Violations) == 0 {
		_, err := fmt.Fprintf(w, "net %s: no antenna violations\n", r.Net)
		return err
	}
	for _, v := range r.Violations {
		if err := writeViolation(w, r.Net, v); err != nil {
			return err
		}
	}
	return nil
}

// WriteReport renders every net's violations in Results, in order.
func (s *Summary) WriteReport(w io.Writer) error {
	for _, res := range s.Results {
		if len(res.Violations) == 0 {
			continue
		}
		if err := res.WriteReport(w); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "\n%d nets checked, %d violated, %d total violations\n",
		s.NetsChecked, s.NetsViolated, s.TotalViolations)
	for _, warn := range s.Warnings {
		fmt.Fprintf(w, "%s\n", warn.String())
	}
	for _, sat := range s.Saturations {
		fmt.Fprintf(w, "%s\n", sat.String())
	}
	return nil
}

func writeViolation(w io.Writer, net string, v Violation) error {
	rec := v.Record
	var b strings.Builder
	fmt.Fprintf(&b, "net %s layer %s set %d:\n", net, rec.Layer, rec.SetID)
	writeRatioLine(&b, "PAR", rec.ActivePAR(), rec.ParThreshold, rec.ParViolated)
	writeRatioLine(&b, "PSR", rec.ActivePSR(), rec.PsrThreshold, rec.PsrViolated)
	writeRatioLine(&b, "CAR", rec.ActiveCAR(), rec.CarThreshold, rec.CarViolated)
	writeRatioLine(&b, "CSR", rec.ActiveCSR(), rec.CsrThreshold, rec.CsrViolated)
	if v.DiodeCount > 0 {
		if v.Saturated {
			fmt.Fprintf(&b, "  repair: %d diodes (saturated, still violating)\n", v.DiodeCount)
		} else {
			fmt.Fprintf(&b, "  repair: %d diodes\n", v.DiodeCount)
		}
	}
	b.WriteString("\n")
	_, err := w.Write([]byte(b.String()))
	return err
}

func writeRatioLine(b *strings.Builder, name string, value, threshold float64, violated bool) {
	marker := ""
	if violated {
		marker = " VIOLATED"
	}
	fmt.Fprintf(b, "  %s: %.2f / %.2f%s\n", name, value, threshold, marker)
}
