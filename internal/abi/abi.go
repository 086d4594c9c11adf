// Package abi defines the data model used to size and align type descriptors.
// The values describe an LP64 target (64-bit long and pointers, 32-bit int).
package abi

// Target configuration
const (
	// DataModel names the C data model the sizes below follow.
	DataModel = "LP64"

	// TargetTriple is the reference target whose layout rules are mirrored.
	TargetTriple = "x86_64-unknown-linux-gnu"
)

// Basic type sizes in bytes
const (
	SizeBool       = 1
	SizeChar       = 1
	SizeChar16     = 2
	SizeChar32     = 4
	SizeWChar      = 4
	SizeShort      = 2
	SizeInt        = 4
	SizeLong       = 8
	SizeLongLong   = 8
	SizeFloat      = 4
	SizeDouble     = 8
	SizeLongDouble = 16
	SizePtr        = 8
	SizeNullPtr    = 8
	SizeMemberFunc = 16 // { fnptr, this-adjustment }
)

// Basic type alignments in bytes
const (
	AlignBool       = 1
	AlignChar       = 1
	AlignChar16     = 2
	AlignChar32     = 4
	AlignWChar      = 4
	AlignShort      = 2
	AlignInt        = 4
	AlignLong       = 8
	AlignLongLong   = 8
	AlignFloat      = 4
	AlignDouble     = 8
	AlignLongDouble = 16
	AlignPtr        = 8
	AlignNullPtr    = 8
	AlignMemberFunc = 8
)

// Integer widths in bits, used by constant promotion.
const (
	BitsInt  = SizeInt * 8
	BitsLong = SizeLong * 8
	BitsSize = SizePtr * 8 // size_t
)
