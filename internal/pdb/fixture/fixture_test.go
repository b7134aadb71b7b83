package fixture

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
dbu_per_um: 1000
layers:
  - name: M1
    routing_level: 1
    width_um: 0.1
    thickness_um: 0.1
    rule:
      area_factor: 1.0
      par: 2.0
nets:
  - name: n1
    segments:
      - layer: M1
        rect: {x1: 0, y1: 0, x2: 10, y2: 2}
    pins:
      - instance: g1
        pin: A
        mterm:
          name: g1
          is_input: true
          gate_area: {M1: 5}
`

func TestLoadFileParsesDesign(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "design.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	db, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	layer, ok := db.Layer("M1")
	if !ok {
		t.Fatal("expected layer M1")
	}
	if layer.Rule == nil || layer.Rule.PAR != 2.0 {
		t.Errorf("expected PAR rule 2.0, got %+v", layer.Rule)
	}

	net, ok := db.Net("n1")
	if !ok {
		t.Fatal("expected net n1")
	}
	if len(net.Segments) != 1 {
		t.Errorf("expected 1 segment, got %d", len(net.Segments))
	}
	if len(net.Pins) != 1 || net.Pins[0].Term.Master().GateArea() != 5 {
		t.Errorf("expected pin g1 with gate area 5, got %+v", net.Pins)
	}
}

func TestLoadFileMissingFile(t *testing.T) {
	if _, err := LoadFile("/nonexistent/design.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadFileDefaultsDBUPerUM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "design.yaml")
	if err := os.WriteFile(path, []byte("layers: []\nnets: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	db, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := db.DBUToMicrons(1000), 1.0; got != want {
		t.Errorf("default dbu_per_um should be 1000, got micron conversion %v want %v", got, want)
	}
}
