package objectmodel

import (
	"sync"

	e "github.com/arloliu/bfast/entity"
)

func withElement(name string) *e.Kind {
	return e.NewKind(name).WithElement(e.ElementRequired)
}

// Kinds returns fresh declarations of every object model table.
func Kinds() []*e.Kind {
	return []*e.Kind{
		e.NewKind(Asset).
			Field("BufferName", e.TypeString),

		e.NewKind(DisplayUnit).
			Field("Spec", e.TypeString).
			Field("Type", e.TypeString).
			Field("Label", e.TypeString),

		e.NewKind(ParameterDescriptor).
			Field("Name", e.TypeString).
			Field("Group", e.TypeString).
			Field("ParameterType", e.TypeString).
			Field("IsInstance", e.TypeBool).
			Field("IsShared", e.TypeBool).
			Field("IsReadOnly", e.TypeBool).
			OptionalRelation("DisplayUnit", DisplayUnit),

		// Value is "NativeValue|DisplayValue", with | and \ escaped by \.
		withElement(Parameter).
			Field("Value", e.TypeString).
			Relation("ParameterDescriptor", ParameterDescriptor),

		e.NewKind(Element).
			Field("Id", e.TypeInt).
			Field("Type", e.TypeString).
			Field("Name", e.TypeString).
			Field("Location", e.TypeVector3).
			Field("FamilyName", e.TypeString).
			OptionalRelation("Level", Level).
			OptionalRelation("PhaseCreated", Phase).
			OptionalRelation("PhaseDemolished", Phase).
			OptionalRelation("Category", Category).
			OptionalRelation("Workset", Workset).
			OptionalRelation("DesignOption", DesignOption).
			OptionalRelation("OwnerView", View).
			OptionalRelation("Group", Group).
			OptionalRelation("AssemblyInstance", AssemblyInstance).
			OptionalRelation("BimDocument", BimDocument).
			OptionalRelation("Room", Room),

		e.NewKind(Workset).
			Field("Id", e.TypeInt).
			Field("Name", e.TypeString).
			Field("Kind", e.TypeString).
			Field("IsOpen", e.TypeBool).
			Field("IsEditable", e.TypeBool).
			Field("Owner", e.TypeString).
			Field("UniqueId", e.TypeString),

		withElement(AssemblyInstance).
			Field("AssemblyTypeName", e.TypeString).
			Field("Position", e.TypeVector3),

		withElement(Group).
			Field("GroupType", e.TypeString).
			Field("Position", e.TypeVector3),

		withElement(DesignOption).
			Field("IsPrimary", e.TypeBool),

		// Elevation is in decimal feet.
		withElement(Level).
			Field("Elevation", e.TypeDouble),

		withElement(Phase),

		withElement(Room).
			Field("BaseOffset", e.TypeDouble).
			Field("LimitOffset", e.TypeDouble).
			Field("UnboundedHeight", e.TypeDouble).
			Field("Volume", e.TypeDouble).
			Field("Perimeter", e.TypeDouble).
			Field("Area", e.TypeDouble).
			Field("Number", e.TypeString).
			OptionalRelation("UpperLimit", Level),

		// Guid is regenerated by the exporter for the same document.
		withElement(BimDocument).
			Field("Title", e.TypeString).
			Field("IsMetric", e.TypeBool).
			Volatile("Guid", e.TypeString).
			Field("NumSaves", e.TypeInt).
			Field("IsLinked", e.TypeBool).
			Field("IsDetached", e.TypeBool).
			Field("IsWorkshared", e.TypeBool).
			Field("PathName", e.TypeString).
			Field("Latitude", e.TypeDouble).
			Field("Longitude", e.TypeDouble).
			Field("TimeZone", e.TypeDouble).
			Field("PlaceName", e.TypeString).
			Field("WeatherStationName", e.TypeString).
			Field("Elevation", e.TypeDouble).
			Field("ProjectLocation", e.TypeString).
			Field("IssueDate", e.TypeString).
			Field("Status", e.TypeString).
			Field("ClientName", e.TypeString).
			Field("Address", e.TypeString).
			Field("Name", e.TypeString).
			Field("Number", e.TypeString).
			Field("Author", e.TypeString).
			Field("BuildingName", e.TypeString).
			Field("OrganizationName", e.TypeString).
			Field("OrganizationDescription", e.TypeString).
			Field("Product", e.TypeString).
			Field("Version", e.TypeString).
			Field("User", e.TypeString).
			OptionalRelation("ActiveView", View).
			OptionalRelation("OwnerFamily", Family).
			OptionalRelation("Parent", BimDocument),

		e.NewKind(DisplayUnitInBimDocument).
			Relation("DisplayUnit", DisplayUnit).
			Relation("BimDocument", BimDocument),

		e.NewKind(PhaseOrderInBimDocument).
			Field("OrderIndex", e.TypeInt).
			Relation("Phase", Phase).
			Relation("BimDocument", BimDocument),

		e.NewKind(Category).
			Field("Name", e.TypeString).
			Field("Id", e.TypeInt).
			Field("CategoryType", e.TypeString).
			Field("LineColor", e.TypeDVector3).
			Field("BuiltInCategory", e.TypeString).
			OptionalRelation("Parent", Category).
			OptionalRelation("Material", Material),

		withElement(Family).
			Field("StructuralMaterialType", e.TypeString).
			Field("StructuralSectionShape", e.TypeString).
			Field("IsSystemFamily", e.TypeBool).
			OptionalRelation("FamilyCategory", Category),

		withElement(FamilyType).
			Field("IsSystemFamilyType", e.TypeBool).
			OptionalRelation("Family", Family).
			OptionalRelation("CompoundStructure", CompoundStructure),

		withElement(FamilyInstance).
			Field("FacingFlipped", e.TypeBool).
			Field("FacingOrientation", e.TypeVector3).
			Field("HandFlipped", e.TypeBool).
			Field("Mirrored", e.TypeBool).
			Field("HasModifiedGeometry", e.TypeBool).
			Field("Scale", e.TypeFloat).
			Field("BasisX", e.TypeVector3).
			Field("BasisY", e.TypeVector3).
			Field("BasisZ", e.TypeVector3).
			Field("Translation", e.TypeVector3).
			Field("HandOrientation", e.TypeVector3).
			OptionalRelation("FamilyType", FamilyType).
			OptionalRelation("Host", Element).
			OptionalRelation("FromRoom", Room).
			OptionalRelation("ToRoom", Room),

		// DetailLevel: 0 undefined, 1 coarse, 2 medium, 3 fine.
		withElement(View).
			Field("Title", e.TypeString).
			Field("ViewType", e.TypeString).
			Field("Up", e.TypeDVector3).
			Field("Right", e.TypeDVector3).
			Field("Origin", e.TypeDVector3).
			Field("ViewDirection", e.TypeDVector3).
			Field("ViewPosition", e.TypeDVector3).
			Field("Scale", e.TypeDouble).
			Field("Outline", e.TypeDAABox2D).
			Field("DetailLevel", e.TypeInt).
			OptionalRelation("Camera", Camera),

		withElement(ElementInView).
			Relation("View", View),

		e.NewKind(ShapeInView).
			Relation("Shape", Shape).
			Relation("View", View),

		e.NewKind(AssetInView).
			Relation("Asset", Asset).
			Relation("View", View),

		// IsPerspective: 0 orthographic, 1 perspective.
		e.NewKind(Camera).
			Field("Id", e.TypeInt).
			Field("IsPerspective", e.TypeInt).
			Field("VerticalExtent", e.TypeDouble).
			Field("HorizontalExtent", e.TypeDouble).
			Field("FarDistance", e.TypeDouble).
			Field("NearDistance", e.TypeDouble).
			Field("TargetDistance", e.TypeDouble).
			Field("RightOffset", e.TypeDouble).
			Field("UpOffset", e.TypeDouble),

		withElement(Material).
			Field("Name", e.TypeString).
			Field("MaterialCategory", e.TypeString).
			Field("Color", e.TypeDVector3).
			OptionalRelation("ColorTextureFile", Asset).
			Field("ColorUvScaling", e.TypeDVector2).
			Field("ColorUvOffset", e.TypeDVector2).
			OptionalRelation("NormalTextureFile", Asset).
			Field("NormalUvScaling", e.TypeDVector2).
			Field("NormalUvOffset", e.TypeDVector2).
			Field("NormalAmount", e.TypeDouble).
			Field("Glossiness", e.TypeDouble).
			Field("Smoothness", e.TypeDouble).
			Field("Transparency", e.TypeDouble),

		e.NewKind(CompoundStructureLayer).
			Field("OrderIndex", e.TypeInt).
			Field("Width", e.TypeDouble).
			Field("MaterialFunctionAssignment", e.TypeString).
			OptionalRelation("Material", Material).
			Relation("CompoundStructure", CompoundStructure),

		e.NewKind(CompoundStructure).
			Field("Width", e.TypeDouble).
			OptionalRelation("StructuralLayer", CompoundStructureLayer),

		e.NewKind(Node).WithElement(e.ElementOptional),

		e.NewKind(Geometry).
			Field("Box", e.TypeAABox).
			Field("VertexCount", e.TypeInt).
			Field("FaceCount", e.TypeInt),

		withElement(Shape),

		withElement(ShapeCollection),

		e.NewKind(ShapeInShapeCollection).
			Relation("Shape", Shape).
			Relation("ShapeCollection", ShapeCollection),
	}
}

var (
	schemaOnce sync.Once
	schema     *e.Schema
)

// Schema returns the shared object model schema.
func Schema() *e.Schema {
	schemaOnce.Do(func() {
		schema = e.NewSchema(Kinds()...)
	})

	return schema
}
