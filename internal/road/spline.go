package road

import "github.com/go-gl/mathgl/mgl32"

// Interpolate densifies control points with a Catmull-Rom spline, emitting
// samplesPerSegment samples per control-point interval plus the final point,
// for a total of (len(points)-1)*samplesPerSegment + 1. Neighbor indices
// clamp at the sequence ends, so there is no wraparound and no extrapolation;
// the curve passes exactly through every control point.
//
// Fewer than two control points cannot be interpolated and yield nil.
func Interpolate(points []mgl32.Vec3, samplesPerSegment int) []mgl32.Vec3 {
	if len(points) < 2 || samplesPerSegment < 1 {
		return nil
	}

	total := (len(points)-1)*samplesPerSegment + 1
	out := make([]mgl32.Vec3, total)
	for i := range out {
		segment := i / samplesPerSegment
		t := float32(i%samplesPerSegment) / float32(samplesPerSegment)
		if segment >= len(points)-1 {
			segment = len(points) - 2
			t = 1
		}

		i0 := segment - 1
		if i0 < 0 {
			i0 = 0
		}
		i3 := segment + 2
		if i3 > len(points)-1 {
			i3 = len(points) - 1
		}
		out[i] = catmullRom(points[i0], points[segment], points[segment+1], points[i3], t)
	}
	return out
}

// catmullRom evaluates the uniform Catmull-Rom cubic through p1 (t=0) and
// p2 (t=1) with p0/p3 shaping the tangents.
func catmullRom(p0, p1, p2, p3 mgl32.Vec3, t float32) mgl32.Vec3 {
	t2 := t * t
	t3 := t2 * t

	var out mgl32.Vec3
	for i := 0; i < 3; i++ {
		out[i] = 0.5 * (2*p1[i] +
			(p2[i]-p0[i])*t +
			(2*p0[i]-5*p1[i]+4*p2[i]-p3[i])*t2 +
			(3*p1[i]-p0[i]-3*p2[i]+p3[i])*t3)
	}
	return out
}
