package config

// SourceFileExt is the canonical source file extension; ".tn" is the
// accepted short form.
const SourceFileExt = ".tarn"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{SourceFileExt, ".tn"}

// MacroFileExt marks units processed as macro-definition source. The
// core only consumes the convention; discovery lives in the build layer.
const MacroFileExt = ".mtarn"

// Built-in type names
const (
	BoolTypeName   = "bool"
	CharTypeName   = "char"
	RawPtrTypeName = "rawptr"
)

// IntTypeNames lists the built-in integer types in declaration order.
var IntTypeNames = []string{"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64"}

// FloatTypeNames lists the built-in floating point types.
var FloatTypeNames = []string{"f32", "f64"}

// PointerWidthBits is the word size all pointer-shaped types assume.
const PointerWidthBits = 64
