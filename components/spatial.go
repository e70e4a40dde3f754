package components

// Transform is an entity's position in the atom frame.
type Transform struct {
	X, Y, Z float32
}

// Body is the radius of a rendered sphere.
type Body struct {
	Radius float32
}

// Spin holds a shell's accumulated rotation and its angular velocity.
type Spin struct {
	Angle  float32 // radians
	AngVel float32 // radians per second
}
