package fixture

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/exa-laboratories/OpenROAD/internal/pdb"
)

// yamlDoc is the on-disk shape of a design fixture, following the
// teacher's config-loader pattern of a single top-level YAML document
// unmarshaled straight into plain structs (cmd/aleutian/config).
type yamlDoc struct {
	DBUPerUM float64      `yaml:"dbu_per_um"`
	Layers   []yamlLayer  `yaml:"layers"`
	Nets     []yamlNet    `yaml:"nets"`
}

type yamlPWLPoint struct {
	Index float64 `yaml:"index"`
	Ratio float64 `yaml:"ratio"`
}

type yamlRule struct {
	AreaFactor             float64        `yaml:"area_factor"`
	AreaFactorDiffOnly     bool           `yaml:"area_factor_diff_only"`
	SideAreaFactor         float64        `yaml:"side_area_factor"`
	SideAreaFactorDiffOnly bool           `yaml:"side_area_factor_diff_only"`
	MinusDiffFactor        float64        `yaml:"minus_diff_factor"`
	PlusDiffFactor         float64        `yaml:"plus_diff_factor"`
	AreaDiffReduce         []yamlPWLPoint `yaml:"area_diff_reduce"`
	PAR                    float64        `yaml:"par"`
	PSR                    float64        `yaml:"psr"`
	CAR                    float64        `yaml:"car"`
	CSR                    float64        `yaml:"csr"`
	DiffPAR                []yamlPWLPoint `yaml:"diff_par"`
	DiffPSR                []yamlPWLPoint `yaml:"diff_psr"`
	DiffCAR                []yamlPWLPoint `yaml:"diff_car"`
	DiffCSR                []yamlPWLPoint `yaml:"diff_csr"`
}

type yamlLayer struct {
	Name                   string    `yaml:"name"`
	RoutingLevel           int       `yaml:"routing_level"`
	WidthUM                float64   `yaml:"width_um"`
	ThicknessUM            float64   `yaml:"thickness_um"`
	CumulativeIncludesCuts bool      `yaml:"cumulative_includes_cuts"`
	Rule                   *yamlRule `yaml:"rule"`
}

type yamlRect struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
}

type yamlSegment struct {
	Layer string   `yaml:"layer"`
	Rect  yamlRect `yaml:"rect"`
}

type yamlVia struct {
	BottomLayer string   `yaml:"bottom_layer"`
	BottomRect  yamlRect `yaml:"bottom_rect"`
	CutLayer    string   `yaml:"cut_layer"`
	CutRect     yamlRect `yaml:"cut_rect"`
	TopLayer    string   `yaml:"top_layer"`
	TopRect     yamlRect `yaml:"top_rect"`
}

type yamlAreaByLayer map[string]float64

type yamlMTerm struct {
	Name    string          `yaml:"name"`
	IsInput bool            `yaml:"is_input"`
	GateArea yamlAreaByLayer `yaml:"gate_area"`
	DiffArea yamlAreaByLayer `yaml:"diff_area"`
}

type yamlPinBox struct {
	Layer string   `yaml:"layer"`
	Rect  yamlRect `yaml:"rect"`
}

type yamlPin struct {
	InstanceName string       `yaml:"instance"`
	PinName      string       `yaml:"pin"`
	MTerm        yamlMTerm    `yaml:"mterm"`
	Footprint    []yamlPinBox `yaml:"footprint"`
}

type yamlNet struct {
	Name     string        `yaml:"name"`
	Special  bool          `yaml:"special"`
	Segments []yamlSegment `yaml:"segments"`
	Vias     []yamlVia     `yaml:"vias"`
	Pins     []yamlPin     `yaml:"pins"`
}

// LoadFile parses a YAML design fixture from disk into a *DB.
func LoadFile(path string) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixture: reading %s: %w", path, err)
	}
	var doc yamlDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("fixture: parsing %s: %w", path, err)
	}
	return fromYAML(doc)
}

func fromYAML(doc yamlDoc) (*DB, error) {
	dbuPerUM := doc.DBUPerUM
	if dbuPerUM == 0 {
		dbuPerUM = 1000
	}

	layers := make([]*pdb.Layer, 0, len(doc.Layers))
	for _, yl := range doc.Layers {
		l := &pdb.Layer{
			Name:                   yl.Name,
			RoutingLevel:           yl.RoutingLevel,
			WidthUM:                yl.WidthUM,
			ThicknessUM:            yl.ThicknessUM,
			CumulativeIncludesCuts: yl.CumulativeIncludesCuts,
		}
		if yl.Rule != nil {
			l.Rule = ruleFromYAML(*yl.Rule)
		}
		layers = append(layers, l)
	}

	nets := make([]*pdb.Net, 0, len(doc.Nets))
	for _, yn := range doc.Nets {
		n := &pdb.Net{Name: yn.Name, Special: yn.Special}
		for _, ys := range yn.Segments {
			n.Segments = append(n.Segments, pdb.Segment{Layer: ys.Layer, Rect: rectFromYAML(ys.Rect)})
		}
		for _, yv := range yn.Vias {
			n.Vias = append(n.Vias, pdb.Via{
				BottomLayer: yv.BottomLayer,
				BottomRect:  rectFromYAML(yv.BottomRect),
				CutLayer:    yv.CutLayer,
				CutRect:     rectFromYAML(yv.CutRect),
				TopLayer:    yv.TopLayer,
				TopRect:     rectFromYAML(yv.TopRect),
			})
		}
		for _, yp := range yn.Pins {
			mterm := &pdb.MTerm{
				Name:            yp.MTerm.Name,
				IsInput:         yp.MTerm.IsInput,
				GateAreaByLayer: map[string]float64(yp.MTerm.GateArea),
				DiffAreaByLayer: map[string]float64(yp.MTerm.DiffArea),
			}
			pin := pdb.Pin{
				Term: &pdb.ITerm{
					InstanceName: yp.InstanceName,
					PinName:      yp.PinName,
					MasterTerm:   mterm,
				},
			}
			for _, fb := range yp.Footprint {
				pin.Footprint = append(pin.Footprint, pdb.PinBox{Layer: fb.Layer, Rect: rectFromYAML(fb.Rect)})
			}
			n.Pins = append(n.Pins, pin)
		}
		nets = append(nets, n)
	}

	return New(layers, nets, dbuPerUM)
}

func ruleFromYAML(yr yamlRule) *pdb.AntennaRule {
	return &pdb.AntennaRule{
		AreaFactor:             yr.AreaFactor,
		AreaFactorDiffOnly:     yr.AreaFactorDiffOnly,
		SideAreaFactor:         yr.SideAreaFactor,
		SideAreaFactorDiffOnly: yr.SideAreaFactorDiffOnly,
		MinusDiffFactor:        yr.MinusDiffFactor,
		PlusDiffFactor:         yr.PlusDiffFactor,
		AreaDiffReduce:         pwlFromYAML(yr.AreaDiffReduce),
		PAR:                    yr.PAR,
		PSR:                    yr.PSR,
		CAR:                    yr.CAR,
		CSR:                    yr.CSR,
		DiffPAR:                pwlFromYAML(yr.DiffPAR),
		DiffPSR:                pwlFromYAML(yr.DiffPSR),
		DiffCAR:                pwlFromYAML(yr.DiffCAR),
		DiffCSR:                pwlFromYAML(yr.DiffCSR),
	}
}

func pwlFromYAML(pts []yamlPWLPoint) pdb.PWLTable {
	if len(pts) == 0 {
		return nil
	}
	t := make(pdb.PWLTable, 0, len(pts))
	for _, p := range pts {
		t = append(t, pdb.PWLPoint{Index: p.Index, Ratio: p.Ratio})
	}
	return t
}

func rectFromYAML(r yamlRect) pdb.Rect {
	return pdb.Rect{X1: r.X1, Y1: r.Y1, X2: r.X2, Y2: r.Y2}
}
