// Package objectmodel declares the VIM object model as entity kinds.
//
// The declarations are passive: they name each table, its fields and its
// relations, and are consumed by the document decoder through Schema.
package objectmodel

// Version is the object model version these kinds describe.
const Version = "4.1.0"

// Table names of the object model.
const (
	Asset                    = "Vim.Asset"
	DisplayUnit              = "Vim.DisplayUnit"
	ParameterDescriptor      = "Vim.ParameterDescriptor"
	Parameter                = "Vim.Parameter"
	Element                  = "Vim.Element"
	Workset                  = "Vim.Workset"
	AssemblyInstance         = "Vim.AssemblyInstance"
	Group                    = "Vim.Group"
	DesignOption             = "Vim.DesignOption"
	Level                    = "Vim.Level"
	Phase                    = "Vim.Phase"
	Room                     = "Vim.Room"
	BimDocument              = "Vim.BimDocument"
	DisplayUnitInBimDocument = "Vim.DisplayUnitInBimDocument"
	PhaseOrderInBimDocument  = "Vim.PhaseOrderInBimDocument"
	Category                 = "Vim.Category"
	Family                   = "Vim.Family"
	FamilyType               = "Vim.FamilyType"
	FamilyInstance           = "Vim.FamilyInstance"
	View                     = "Vim.View"
	ElementInView            = "Vim.ElementInView"
	ShapeInView              = "Vim.ShapeInView"
	AssetInView              = "Vim.AssetInView"
	Camera                   = "Vim.Camera"
	Material                 = "Vim.Material"
	CompoundStructureLayer   = "Vim.CompoundStructureLayer"
	CompoundStructure        = "Vim.CompoundStructure"
	Node                     = "Vim.Node"
	Geometry                 = "Vim.Geometry"
	Shape                    = "Vim.Shape"
	ShapeCollection          = "Vim.ShapeCollection"
	ShapeInShapeCollection   = "Vim.ShapeInShapeCollection"
)

// Material function assignments stored in CompoundStructureLayer.MaterialFunctionAssignment.
const (
	FunctionNone           = "None"
	FunctionStructure      = "Structure"
	FunctionSubstrate      = "Substrate"
	FunctionInsulation     = "Insulation"
	FunctionFinish1        = "Finish1"
	FunctionFinish2        = "Finish2"
	FunctionMembrane       = "Membrane"
	FunctionStructuralDeck = "StructuralDeck"
)
