// Package fixture provides an in-memory pdb.Database, used both by
// the unit test suite and by the antennacheck CLI's "check" command
// as the stand-in for the out-of-scope database loader (spec.md §1).
package fixture

import (
	"fmt"

	"github.com/exa-laboratories/OpenROAD/internal/pdb"
)

// DB is a pdb.Database backed by plain Go slices/maps.
type DB struct {
	layers      []*pdb.Layer
	layerByName map[string]*pdb.Layer
	nets        []*pdb.Net
	netByName   map[string]*pdb.Net
	dbuPerUM    float64
}

// New builds a DB from an already-ordered layer stack (bottom to top)
// and a net list. dbuPerUM is the number of database distance units
// per micrometer (e.g. 1000 for a 0.001um/DBU technology).
func New(layers []*pdb.Layer, nets []*pdb.Net, dbuPerUM float64) (*DB, error) {
	if dbuPerUM <= 0 {
		return nil, fmt.Errorf("fixture: dbuPerUM must be positive, got %v", dbuPerUM)
	}
	pdb.LinkStack(layers)

	db := &DB{
		layerByName: make(map[string]*pdb.Layer, len(layers)),
		netByName:   make(map[string]*pdb.Net, len(nets)),
		dbuPerUM:    dbuPerUM,
	}
	for _, l := range layers {
		if _, dup := db.layerByName[l.Name]; dup {
			return nil, fmt.Errorf("fixture: duplicate layer %q", l.Name)
		}
		db.layerByName[l.Name] = l
		db.layers = append(db.layers, l)
	}
	for _, n := range nets {
		if _, dup := db.netByName[n.Name]; dup {
			return nil, fmt.Errorf("fixture: duplicate net %q", n.Name)
		}
		db.netByName[n.Name] = n
		db.nets = append(db.nets, n)
	}
	return db, nil
}

func (d *DB) Layers() []*pdb.Layer { return append([]*pdb.Layer(nil), d.layers...) }

func (d *DB) Layer(name string) (*pdb.Layer, bool) {
	l, ok := d.layerByName[name]
	return l, ok
}

func (d *DB) Nets() []*pdb.Net { return append([]*pdb.Net(nil), d.nets...) }

func (d *DB) Net(name string) (*pdb.Net, bool) {
	n, ok := d.netByName[name]
	return n, ok
}

func (d *DB) DBUToMicrons(dbu int64) float64 { return float64(dbu) / d.dbuPerUM }

func (d *DB) MicronsToDBU(um float64) int64 { return int64(um * d.dbuPerUM) }
