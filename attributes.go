package meshdesc

import (
	"github.com/hupe1980/meshdesc/attribute"
	"github.com/hupe1980/meshdesc/geom"
)

// Standard attribute names.
const (
	VertexAttributePosition        = "Position"
	VertexAttributeCornerSharpness = "CornerSharpness"

	VertexInstanceAttributeTextureCoordinate = "TextureCoordinate"
	VertexInstanceAttributeNormal            = "Normal"
	VertexInstanceAttributeTangent           = "Tangent"
	VertexInstanceAttributeBinormalSign      = "BinormalSign"
	VertexInstanceAttributeColor             = "Color"

	EdgeAttributeIsHard          = "IsHard"
	EdgeAttributeIsUVSeam        = "IsUVSeam"
	EdgeAttributeCreaseSharpness = "CreaseSharpness"

	PolygonAttributeNormal   = "Normal"
	PolygonAttributeTangent  = "Tangent"
	PolygonAttributeBinormal = "Binormal"
	PolygonAttributeCenter   = "Center"

	PolygonGroupAttributeImportedMaterialSlotName = "ImportedMaterialSlotName"
	PolygonGroupAttributeEnableCollision          = "EnableCollision"
	PolygonGroupAttributeCastShadow               = "CastShadow"
)

// RegisterStandardAttributes registers the attributes most importers and
// builders expect, with numUVs texture coordinate channels (at least one).
// Existing attributes of the same type keep their values.
func RegisterStandardAttributes(md *MeshDescription, numUVs int) {
	numUVs = max(numUVs, 1)

	attribute.Register(md.vertexAttrs, VertexAttributePosition, 1, geom.Vector3{},
		attribute.FlagLerpable|attribute.FlagMandatory)
	attribute.Register(md.vertexAttrs, VertexAttributeCornerSharpness, 1, float32(0),
		attribute.FlagLerpable)

	vi := md.vertexInstanceAttrs
	attribute.Register(vi, VertexInstanceAttributeTextureCoordinate, numUVs, geom.Vector2{},
		attribute.FlagLerpable|attribute.FlagMergeable)
	attribute.Register(vi, VertexInstanceAttributeNormal, 1, geom.Vector3{},
		attribute.FlagAutoGenerated|attribute.FlagMergeable|attribute.FlagLerpable)
	attribute.Register(vi, VertexInstanceAttributeTangent, 1, geom.Vector3{},
		attribute.FlagAutoGenerated|attribute.FlagMergeable|attribute.FlagLerpable)
	attribute.Register(vi, VertexInstanceAttributeBinormalSign, 1, float32(1),
		attribute.FlagAutoGenerated|attribute.FlagMergeable)
	attribute.Register(vi, VertexInstanceAttributeColor, 1, geom.Vec4(1, 1, 1, 1),
		attribute.FlagLerpable|attribute.FlagMergeable)

	attribute.Register(md.edgeAttrs, EdgeAttributeIsHard, 1, false, attribute.FlagNone)
	attribute.Register(md.edgeAttrs, EdgeAttributeIsUVSeam, 1, false, attribute.FlagNone)
	attribute.Register(md.edgeAttrs, EdgeAttributeCreaseSharpness, 1, float32(0),
		attribute.FlagLerpable)

	attribute.Register(md.polygonAttrs, PolygonAttributeNormal, 1, geom.Vector3{},
		attribute.FlagTransient|attribute.FlagAutoGenerated)
	attribute.Register(md.polygonAttrs, PolygonAttributeTangent, 1, geom.Vector3{},
		attribute.FlagTransient|attribute.FlagAutoGenerated)
	attribute.Register(md.polygonAttrs, PolygonAttributeBinormal, 1, geom.Vector3{},
		attribute.FlagTransient|attribute.FlagAutoGenerated)
	attribute.Register(md.polygonAttrs, PolygonAttributeCenter, 1, geom.Vector3{},
		attribute.FlagTransient|attribute.FlagAutoGenerated)

	attribute.Register(md.polygonGroupAttrs, PolygonGroupAttributeImportedMaterialSlotName, 1, "",
		attribute.FlagNone)
	attribute.Register(md.polygonGroupAttrs, PolygonGroupAttributeEnableCollision, 1, true,
		attribute.FlagNone)
	attribute.Register(md.polygonGroupAttrs, PolygonGroupAttributeCastShadow, 1, true,
		attribute.FlagNone)
}

// VertexInstanceNormals returns the Normal attribute of vertex instances.
func (md *MeshDescription) VertexInstanceNormals() attribute.Ref[VertexInstanceID, geom.Vector3] {
	return attribute.GetRef[geom.Vector3](md.vertexInstanceAttrs, VertexInstanceAttributeNormal)
}

// VertexInstanceUVs returns the TextureCoordinate attribute of vertex instances.
func (md *MeshDescription) VertexInstanceUVs() attribute.Ref[VertexInstanceID, geom.Vector2] {
	return attribute.GetRef[geom.Vector2](md.vertexInstanceAttrs, VertexInstanceAttributeTextureCoordinate)
}

// PolygonGroupMaterialSlotNames returns the ImportedMaterialSlotName attribute.
func (md *MeshDescription) PolygonGroupMaterialSlotNames() attribute.Ref[PolygonGroupID, string] {
	return attribute.GetRef[string](md.polygonGroupAttrs, PolygonGroupAttributeImportedMaterialSlotName)
}
