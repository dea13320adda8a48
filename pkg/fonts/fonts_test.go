package fonts

import "testing"

func TestLabelFace(t *testing.T) {
	face, err := LabelFace(0)
	if err != nil {
		t.Fatalf("LabelFace(0) error = %v", err)
	}
	defer face.Close()

	m := face.Metrics()
	if h := m.Height.Ceil(); h < DefaultLabelSize/2 || h > DefaultLabelSize*2 {
		t.Errorf("line height %d not near %d", h, DefaultLabelSize)
	}
}

func TestLabelFaceScales(t *testing.T) {
	small, err := LabelFace(12)
	if err != nil {
		t.Fatal(err)
	}
	large, err := LabelFace(96)
	if err != nil {
		t.Fatal(err)
	}
	if small.Metrics().Height >= large.Metrics().Height {
		t.Error("larger size should give a taller face")
	}
}
