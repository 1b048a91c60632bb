// Package geom provides the small float32 vector types stored in mesh
// attributes and the geometric helpers used by triangulation and mesh queries.
package geom
