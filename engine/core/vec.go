package core

import "math"

// Vec3 is a 3D vector. Y is up; the board plane is X/Z.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-10 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return Vec3{v.X + (o.X-v.X)*t, v.Y + (o.Y-v.Y)*t, v.Z + (o.Z-v.Z)*t}
}

// Flat drops the vertical component
func (v Vec3) Flat() Vec3 { return Vec3{v.X, 0, v.Z} }

// WithY returns v with its altitude replaced
func (v Vec3) WithY(y float64) Vec3 { return Vec3{v.X, y, v.Z} }

// FlatDistance is the distance between a and b ignoring altitude
func FlatDistance(a, b Vec3) float64 { return a.Flat().Sub(b.Flat()).Len() }

// Heading returns the compass bearing of v in degrees (0 = +Z, 90 = +X), wrapped to [0, 360)
func (v Vec3) Heading() float64 {
	return Wrap360(math.Atan2(v.X, v.Z) * Rad2Deg)
}

// HeadingVector is the unit vector on the board plane for a bearing in degrees
func HeadingVector(deg float64) Vec3 {
	r := deg * Deg2Rad
	return Vec3{math.Sin(r), 0, math.Cos(r)}
}

// RotateY rotates v about the vertical axis by deg (clockwise seen from above)
func (v Vec3) RotateY(deg float64) Vec3 {
	r := deg * Deg2Rad
	s, c := math.Sin(r), math.Cos(r)
	return Vec3{v.X*c + v.Z*s, v.Y, -v.X*s + v.Z*c}
}

// RotateTowards turns unit direction cur toward dir by at most maxRadians
func RotateTowards(cur, dir Vec3, maxRadians float64) Vec3 {
	a := cur.Normalize()
	b := dir.Normalize()
	if b == (Vec3{}) {
		return a
	}
	if a == (Vec3{}) {
		return b
	}
	angle := math.Acos(Clamp(a.Dot(b), -1, 1))
	if angle <= maxRadians || angle < 1e-9 {
		return b
	}
	t := maxRadians / angle
	s := math.Sin(angle)
	if s < 1e-9 {
		return a
	}
	wa := math.Sin((1-t)*angle) / s
	wb := math.Sin(t*angle) / s
	return a.Scale(wa).Add(b.Scale(wb)).Normalize()
}

const (
	Deg2Rad = math.Pi / 180
	Rad2Deg = 180 / math.Pi
)

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 { return Clamp(v, 0, 1) }

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

// MoveTowards steps cur toward target by at most maxDelta
func MoveTowards(cur, target, maxDelta float64) float64 {
	if math.Abs(target-cur) <= maxDelta {
		return target
	}
	if target > cur {
		return cur + maxDelta
	}
	return cur - maxDelta
}

// Wrap360 wraps an angle in degrees to [0, 360)
func Wrap360(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// DeltaAngle is the shortest signed difference from a to b in degrees, in (-180, 180]
func DeltaAngle(a, b float64) float64 {
	d := Wrap360(b - a)
	if d > 180 {
		d -= 360
	}
	return d
}

// SubProgress maps overall progress t onto a sub-animation that starts at start
// and lasts length, clamped to [0, 1]
func SubProgress(t, start, length float64) float64 {
	if length <= 0 {
		if t >= start {
			return 1
		}
		return 0
	}
	return Clamp01((t - start) / length)
}

func EaseInQuad(t float64) float64  { return t * t }
func EaseOutQuad(t float64) float64 { return 1 - (1-t)*(1-t) }
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}
