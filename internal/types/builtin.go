package types

// builtins maps the reserved type names to the concrete Type
// each denotes. `int`, `float`, `char`, `bool`, `void` are the unsized
// aliases; the sized names are explicit width/signedness.
var builtins = map[string]func() Type{
	"void":  func() Type { return VoidType{} },
	"bool":  func() Type { return BoolType{} },
	"char":  func() Type { return CharType{} },
	"int":   func() Type { return &IntegerType{Bits: 32, Signed: true} },
	"float": func() Type { return &FloatType{Bits: 64} },
	"i8":    func() Type { return &IntegerType{Bits: 8, Signed: true} },
	"i16":   func() Type { return &IntegerType{Bits: 16, Signed: true} },
	"i32":   func() Type { return &IntegerType{Bits: 32, Signed: true} },
	"i64":   func() Type { return &IntegerType{Bits: 64, Signed: true} },
	"u8":    func() Type { return &IntegerType{Bits: 8, Signed: false} },
	"u16":   func() Type { return &IntegerType{Bits: 16, Signed: false} },
	"u32":   func() Type { return &IntegerType{Bits: 32, Signed: false} },
	"u64":   func() Type { return &IntegerType{Bits: 64, Signed: false} },
	"f32":   func() Type { return &FloatType{Bits: 32} },
	"f64":   func() Type { return &FloatType{Bits: 64} },
}

// Builtin resolves a built-in type name. The analyzer tries it first when
// resolving a type identifier, before looking the name up in the symbol
// table.
func Builtin(name string) (Type, bool) {
	ctor, ok := builtins[name]
	if !ok {
		return nil, false
	}
	return ctor(), true
}

// IsBuiltinName reports whether name names a built-in type.
func IsBuiltinName(name string) bool {
	_, ok := builtins[name]
	return ok
}
