package rack

// FacesCollide reports whether two devices with overlapping ranges conflict
// given their faces and depths.
//
// A both-face device fills the whole depth and collides with everything.
// Devices on the same face contend for the same rails. Devices on opposite
// faces collide when either of them is full depth; two half-depth devices can
// sit back to back.
func FacesCollide(faceA, faceB Face, fullDepthA, fullDepthB bool) bool {
	if faceA == FaceBoth || faceB == FaceBoth {
		return true
	}
	if faceA == faceB {
		return true
	}
	return fullDepthA || fullDepthB
}
