package rack

import "testing"

func TestFacesCollide(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Face
		fullA      bool
		fullB      bool
		wantCollid bool
	}{
		{"same face front", FaceFront, FaceFront, false, false, true},
		{"same face rear", FaceRear, FaceRear, false, false, true},
		{"half depth back to back", FaceFront, FaceRear, false, false, false},
		{"half depth back to back reversed", FaceRear, FaceFront, false, false, false},
		{"full depth front blocks rear", FaceFront, FaceRear, true, false, true},
		{"full depth rear blocks front", FaceFront, FaceRear, false, true, true},
		{"both full depth opposite", FaceFront, FaceRear, true, true, true},
		{"both face vs half depth rear", FaceBoth, FaceRear, false, false, true},
		{"rear vs both face", FaceRear, FaceBoth, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FacesCollide(tt.a, tt.b, tt.fullA, tt.fullB); got != tt.wantCollid {
				t.Errorf("FacesCollide(%s, %s, %v, %v) = %v, want %v",
					tt.a, tt.b, tt.fullA, tt.fullB, got, tt.wantCollid)
			}
		})
	}
}

func TestFacesCollideBothAlwaysCollides(t *testing.T) {
	faces := []Face{FaceFront, FaceRear, FaceBoth}
	depths := []bool{false, true}
	for _, other := range faces {
		for _, da := range depths {
			for _, db := range depths {
				if !FacesCollide(FaceBoth, other, da, db) {
					t.Errorf("FacesCollide(both, %s, %v, %v) = false", other, da, db)
				}
				if !FacesCollide(other, FaceBoth, da, db) {
					t.Errorf("FacesCollide(%s, both, %v, %v) = false", other, da, db)
				}
			}
		}
	}
}

func TestFullDepthFrontBlocksAnyRear(t *testing.T) {
	for _, rearDepth := range []bool{false, true} {
		if !FacesCollide(FaceFront, FaceRear, true, rearDepth) {
			t.Errorf("full-depth front should block rear (rear full depth = %v)", rearDepth)
		}
	}
}
