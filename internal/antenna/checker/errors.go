package checker

import (
	"errors"
	"fmt"
)

// ErrSpecialNet is returned by CheckNet when asked to check a net the
// database marks special (power/ground/etc.); such nets carry no
// gates and are out of scope for antenna analysis (spec.md §7).
var ErrSpecialNet = errors.New("checker: net is special, not eligible for antenna checking")

// ErrNoRoutesInDesign is returned by CheckAllNets when the design has
// no net carrying any wire or via geometry at all.
var ErrNoRoutesInDesign = errors.New("checker: design has no routed nets")

// DataWarning is a non-fatal anomaly surfaced during a run: a
// geometry or rule inconsistency that does not stop the check but
// that the caller should see (spec.md §7).
type DataWarning struct {
	Net    string
	Layer  string
	Detail string
}

func (w DataWarning) String() string {
	return fmt.Sprintf("data warning: net %s layer %s: %s", w.Net, w.Layer, w.Detail)
}

// RepairSaturation is reported when diode-count estimation hit its
// cap without clearing every violation on a connectivity set.
type RepairSaturation struct {
	Net        string
	Layer      string
	SetID      int
	DiodeCount int
}

func (s RepairSaturation) String() string {
	return fmt.Sprintf("repair saturation: net %s layer %s set %d: %d diodes insufficient",
		s.Net, s.Layer, s.SetID, s.DiodeCount)
}
