package interp

import (
	"fmt"

	"github.com/snek-lang/snek/internal/value"
)

// installGlobals populates it.Global with the small set of free functions
// every Snek program starts with (spec §4.6): print/write for output,
// typeOf for runtime introspection, and len as a cross-type length
// function (String `length`, List `size`, a Record's key count). Everything
// else lives on a
// prototype and is reached through method dispatch instead.
func (it *Interp) installGlobals() {
	declareNative := func(name string, fn value.NativeFunc) {
		it.Global.DeclareVariable(name, value.NewNativeFunction(name, fn, nil), nil, false, true, false)
	}

	declareNative("print", func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
		for i, a := range args {
			if i > 0 {
				fmt.Fprint(it.Stdout, " ")
			}
			fmt.Fprint(it.Stdout, value.Display(a))
		}
		fmt.Fprintln(it.Stdout)
		return value.TheNull, nil
	})

	declareNative("write", func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
		for i, a := range args {
			if i > 0 {
				fmt.Fprint(it.Stdout, " ")
			}
			fmt.Fprint(it.Stdout, value.Display(a))
		}
		return value.TheNull, nil
	})

	declareNative("typeOf", func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
		return value.NewString(kindName(arg(args, 0).Kind())), nil
	})

	declareNative("len", func(ctx value.CallContext, this value.Value, args []value.Value) (value.Value, error) {
		v := arg(args, 0)
		switch sv := v.(type) {
		case value.StringValue:
			return value.NewInt(int64(sv.Len())), nil
		case value.ListValue:
			return value.NewInt(int64(sv.Len())), nil
		case value.RecordValue:
			return value.NewInt(int64(len(sv.Keys()))), nil
		default:
			return nil, fmt.Errorf("len: value has no length")
		}
	})
}

func kindName(k value.Kind) string {
	switch k {
	case value.KindNull:
		return "Null"
	case value.KindBoolean:
		return "Boolean"
	case value.KindInt:
		return "Int"
	case value.KindFloat:
		return "Float"
	case value.KindString:
		return "String"
	case value.KindList:
		return "List"
	case value.KindRecord:
		return "Record"
	case value.KindFunction:
		return "Function"
	default:
		return "?"
	}
}
