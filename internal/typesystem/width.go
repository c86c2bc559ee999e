package typesystem

import "github.com/tarn-lang/tarn/internal/config"

// Layout assumptions behind BitWidth: packed fields, a 32-bit tag for
// enums and choices, and a two-word slice header. These numbers only
// feed bit-cast legality; codegen owns the real ABI.
const tagWidthBits = 32

// BitWidth returns the fixed run-time width of t in bits. The second
// result is false for types without one (unresolved names, const slots,
// function types).
func BitWidth(t Type) (int, bool) {
	switch tt := t.(type) {
	case TInt:
		return tt.Width, true
	case TFloat:
		return tt.Width, true
	case TBool:
		return 8, true
	case TChar:
		return 32, true
	case TPointer, TRawPtr:
		return config.PointerWidthBits, true
	case TSlice:
		return 2 * config.PointerWidthBits, true
	case TArray:
		ew, ok := BitWidth(tt.Elem)
		if !ok {
			return 0, false
		}
		return int(tt.Length) * ew, true
	case TTuple:
		total := 0
		for _, e := range tt.Elements {
			w, ok := BitWidth(e)
			if !ok {
				return 0, false
			}
			total += w
		}
		return total, true
	case TStruct:
		total := 0
		for _, f := range tt.Fields {
			w, ok := BitWidth(f.Type)
			if !ok {
				return 0, false
			}
			total += w
		}
		return total, true
	case TUnion:
		max := 0
		for _, f := range tt.Fields {
			w, ok := BitWidth(f.Type)
			if !ok {
				return 0, false
			}
			if w > max {
				max = w
			}
		}
		return max, true
	case TEnum:
		return tagWidthBits, true
	case TChoice:
		max := 0
		for _, v := range tt.Variants {
			if v.Payload == nil {
				continue
			}
			w, ok := BitWidth(v.Payload)
			if !ok {
				return 0, false
			}
			if w > max {
				max = w
			}
		}
		return tagWidthBits + max, true
	case TNamed:
		if tt.Underlying == nil {
			return 0, false
		}
		return BitWidth(tt.Underlying)
	case TApp:
		return 0, false
	}
	return 0, false
}
