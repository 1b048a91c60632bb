package attribute

import (
	"github.com/hupe1980/meshdesc/core"
	"github.com/hupe1980/meshdesc/geom"
)

// Jump tables indexed by Type. Each entry is a statically typed
// instantiation, so dispatching on a runtime tag is a single indexed call.

var newColumnTable = [numTypes]func(channels int, flags Flags, numElements int) column{
	TypeFloat32: newColumn[float32],
	TypeInt32:   newColumn[int32],
	TypeBool:    newColumn[bool],
	TypeVector2: newColumn[geom.Vector2],
	TypeVector3: newColumn[geom.Vector3],
	TypeVector4: newColumn[geom.Vector4],
	TypeName:    newColumn[string],
}

func newColumn[T Value](channels int, flags Flags, numElements int) column {
	var zero T
	return NewArraySet(channels, zero, flags, numElements)
}

// Visitor receives every attribute of a Set with its static type restored.
// Returning false stops the iteration.
type Visitor[ID core.ElementID] interface {
	VisitFloat32(name string, ref Ref[ID, float32]) bool
	VisitInt32(name string, ref Ref[ID, int32]) bool
	VisitBool(name string, ref Ref[ID, bool]) bool
	VisitVector2(name string, ref Ref[ID, geom.Vector2]) bool
	VisitVector3(name string, ref Ref[ID, geom.Vector3]) bool
	VisitVector4(name string, ref Ref[ID, geom.Vector4]) bool
	VisitName(name string, ref Ref[ID, string]) bool
}

// VisitorFuncs adapts optional functions to a Visitor. Attributes whose type
// has no function are skipped.
type VisitorFuncs[ID core.ElementID] struct {
	Float32 func(name string, ref Ref[ID, float32]) bool
	Int32   func(name string, ref Ref[ID, int32]) bool
	Bool    func(name string, ref Ref[ID, bool]) bool
	Vector2 func(name string, ref Ref[ID, geom.Vector2]) bool
	Vector3 func(name string, ref Ref[ID, geom.Vector3]) bool
	Vector4 func(name string, ref Ref[ID, geom.Vector4]) bool
	Name    func(name string, ref Ref[ID, string]) bool
}

func call[ID core.ElementID, T Value](f func(string, Ref[ID, T]) bool, name string, ref Ref[ID, T]) bool {
	if f == nil {
		return true
	}
	return f(name, ref)
}

func (v VisitorFuncs[ID]) VisitFloat32(name string, ref Ref[ID, float32]) bool {
	return call(v.Float32, name, ref)
}

func (v VisitorFuncs[ID]) VisitInt32(name string, ref Ref[ID, int32]) bool {
	return call(v.Int32, name, ref)
}

func (v VisitorFuncs[ID]) VisitBool(name string, ref Ref[ID, bool]) bool {
	return call(v.Bool, name, ref)
}

func (v VisitorFuncs[ID]) VisitVector2(name string, ref Ref[ID, geom.Vector2]) bool {
	return call(v.Vector2, name, ref)
}

func (v VisitorFuncs[ID]) VisitVector3(name string, ref Ref[ID, geom.Vector3]) bool {
	return call(v.Vector3, name, ref)
}

func (v VisitorFuncs[ID]) VisitVector4(name string, ref Ref[ID, geom.Vector4]) bool {
	return call(v.Vector4, name, ref)
}

func (v VisitorFuncs[ID]) VisitName(name string, ref Ref[ID, string]) bool {
	return call(v.Name, name, ref)
}

// columnVisitor is the ID-free form of Visitor so the dispatch table can be
// a package-level array.
type columnVisitor interface {
	visitFloat32(name string, a *ArraySet[float32]) bool
	visitInt32(name string, a *ArraySet[int32]) bool
	visitBool(name string, a *ArraySet[bool]) bool
	visitVector2(name string, a *ArraySet[geom.Vector2]) bool
	visitVector3(name string, a *ArraySet[geom.Vector3]) bool
	visitVector4(name string, a *ArraySet[geom.Vector4]) bool
	visitName(name string, a *ArraySet[string]) bool
}

type visitorAdapter[ID core.ElementID] struct {
	v Visitor[ID]
}

func (va visitorAdapter[ID]) visitFloat32(name string, a *ArraySet[float32]) bool {
	return va.v.VisitFloat32(name, Ref[ID, float32]{col: a})
}

func (va visitorAdapter[ID]) visitInt32(name string, a *ArraySet[int32]) bool {
	return va.v.VisitInt32(name, Ref[ID, int32]{col: a})
}

func (va visitorAdapter[ID]) visitBool(name string, a *ArraySet[bool]) bool {
	return va.v.VisitBool(name, Ref[ID, bool]{col: a})
}

func (va visitorAdapter[ID]) visitVector2(name string, a *ArraySet[geom.Vector2]) bool {
	return va.v.VisitVector2(name, Ref[ID, geom.Vector2]{col: a})
}

func (va visitorAdapter[ID]) visitVector3(name string, a *ArraySet[geom.Vector3]) bool {
	return va.v.VisitVector3(name, Ref[ID, geom.Vector3]{col: a})
}

func (va visitorAdapter[ID]) visitVector4(name string, a *ArraySet[geom.Vector4]) bool {
	return va.v.VisitVector4(name, Ref[ID, geom.Vector4]{col: a})
}

func (va visitorAdapter[ID]) visitName(name string, a *ArraySet[string]) bool {
	return va.v.VisitName(name, Ref[ID, string]{col: a})
}

var visitTable = [numTypes]func(cv columnVisitor, name string, c column) bool{
	TypeFloat32: func(cv columnVisitor, name string, c column) bool {
		return cv.visitFloat32(name, c.(*ArraySet[float32]))
	},
	TypeInt32: func(cv columnVisitor, name string, c column) bool {
		return cv.visitInt32(name, c.(*ArraySet[int32]))
	},
	TypeBool: func(cv columnVisitor, name string, c column) bool {
		return cv.visitBool(name, c.(*ArraySet[bool]))
	},
	TypeVector2: func(cv columnVisitor, name string, c column) bool {
		return cv.visitVector2(name, c.(*ArraySet[geom.Vector2]))
	},
	TypeVector3: func(cv columnVisitor, name string, c column) bool {
		return cv.visitVector3(name, c.(*ArraySet[geom.Vector3]))
	},
	TypeVector4: func(cv columnVisitor, name string, c column) bool {
		return cv.visitVector4(name, c.(*ArraySet[geom.Vector4]))
	},
	TypeName: func(cv columnVisitor, name string, c column) bool {
		return cv.visitName(name, c.(*ArraySet[string]))
	},
}

// ForEach calls the visitor for every attribute in name order.
func (s *Set[ID]) ForEach(v Visitor[ID]) {
	cv := visitorAdapter[ID]{v: v}
	for _, name := range s.Names() {
		c := s.columns[name]
		if !visitTable[c.Type()](cv, name, c) {
			return
		}
	}
}
