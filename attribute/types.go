package attribute

import (
	"github.com/hupe1980/meshdesc/geom"
)

// Type identifies the concrete value type of a column.
type Type uint8

const (
	// TypeInvalid is returned for unregistered attributes.
	TypeInvalid Type = iota
	TypeFloat32
	TypeInt32
	TypeBool
	TypeVector2
	TypeVector3
	TypeVector4
	TypeName

	numTypes
)

var typeNames = [numTypes]string{
	TypeInvalid: "invalid",
	TypeFloat32: "float32",
	TypeInt32:   "int32",
	TypeBool:    "bool",
	TypeVector2: "vector2",
	TypeVector3: "vector3",
	TypeVector4: "vector4",
	TypeName:    "name",
}

func (t Type) String() string {
	if t >= numTypes {
		return "invalid"
	}
	return typeNames[t]
}

// IsValid reports whether t is one of the supported value types.
func (t Type) IsValid() bool {
	return t > TypeInvalid && t < numTypes
}

// Value is the closed set of attribute value types.
type Value interface {
	float32 | int32 | bool | geom.Vector2 | geom.Vector3 | geom.Vector4 | string
}

// TypeOf returns the Type tag of T.
func TypeOf[T Value]() Type {
	var zero T
	switch any(zero).(type) {
	case float32:
		return TypeFloat32
	case int32:
		return TypeInt32
	case bool:
		return TypeBool
	case geom.Vector2:
		return TypeVector2
	case geom.Vector3:
		return TypeVector3
	case geom.Vector4:
		return TypeVector4
	case string:
		return TypeName
	default:
		return TypeInvalid
	}
}

// Flags describe how an attribute is treated by mesh operations.
type Flags uint32

const (
	// FlagNone marks an attribute with no special treatment.
	FlagNone Flags = 0
	// FlagLerpable means values may be interpolated.
	FlagLerpable Flags = 1 << (iota - 1)
	// FlagAutoGenerated means values are derived and may be recomputed.
	FlagAutoGenerated
	// FlagMergeable means values are compared when welding vertices.
	FlagMergeable
	// FlagTransient means the attribute is not serialized.
	FlagTransient
	// FlagIndexReference means values are element indices of another kind.
	FlagIndexReference
	// FlagMandatory means the attribute must not be unregistered.
	FlagMandatory
)

// Has reports whether all bits of other are set in f.
func (f Flags) Has(other Flags) bool {
	return f&other == other
}
