package core

// Vec4 is an RGBA color. Channels are normalized to [0,1] on output only.
type Vec4 struct {
	X, Y, Z, W float64
}

// NewVec4 creates a new Vec4
func NewVec4(x, y, z, w float64) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

// Add returns the component-wise sum
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Multiply scales every component, alpha included
func (v Vec4) Multiply(scalar float64) Vec4 {
	return Vec4{v.X * scalar, v.Y * scalar, v.Z * scalar, v.W * scalar}
}

// RGB drops the alpha channel
func (v Vec4) RGB() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

// IsFinite reports whether no component is NaN or infinite
func (v Vec4) IsFinite() bool {
	return v.RGB().IsFinite() && isFinite(v.W)
}

// Vec2 holds a pair of values such as a pixel coordinate, a viewport size or a
// pointer position.
type Vec2 struct {
	X, Y float64
}

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// IsFinite reports whether both components are finite
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}
