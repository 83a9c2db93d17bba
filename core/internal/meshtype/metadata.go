package meshtype

// NameCapacity is the fixed size of the name field in the metadata record.
const NameCapacity = 128

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float32
}

// AffineParts is the decomposition of an affine transform.
type AffineParts struct {
	// T is the translation.
	T Point3

	// Q is the essential rotation.
	Q Quat

	// U is the stretch rotation.
	U Quat

	// K holds the stretch factors.
	K Point3

	// F is the sign of the determinant, +1 or -1.
	F float32
}

// Metadata describes a cached mesh: buffer sizes, name, transform and colour.
type Metadata struct {
	Counts Counts

	// Name is the object name, at most NameCapacity-1 bytes once encoded.
	Name string

	// Position, Rotation and Scale are informational components of Transform.
	// Rotation is Euler XYZ in degrees.
	Position Point3
	Rotation Point3
	Scale    Point3

	// Flags is reserved.
	Flags uint16

	Affine AffineParts

	// Transform is authoritative for reconstruction.
	Transform Matrix3

	WireColor Color
}
