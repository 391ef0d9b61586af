package value

import "github.com/snek-lang/snek/internal/types"

// RecordValue is satisfied by every record realization. GetOwn looks up a
// field declared directly on this record (not inherited); Prototype is the
// record's [[Prototype]] link, or nil at the chain's root (spec §3.4).
type RecordValue interface {
	Value
	Keys() []string
	GetOwn(key string) (Value, bool)
	Prototype() Value
}

// ProtoKey is the well-known Record field name whose value, if present and
// itself a Record, forms the prototype chain (spec §3.4, §4.4.3).
const ProtoKey = "[[Prototype]]"

// Record is an ordered field map with an optional [[Prototype]] link used
// for method dispatch (spec §3.4, §4.4.5).
type Record struct {
	base
	Order []string
	Data  map[string]Value
	Proto Value // chain-root fallback, used when no own [[Prototype]] field is set
}

// NewRecord builds a Record from ordered keys and a value map. proto is the
// fallback prototype used when data has no own "[[Prototype]]" field.
func NewRecord(order []string, data map[string]Value, proto Value) *Record {
	return &Record{Order: order, Data: data, Proto: proto}
}

func (r *Record) Kind() types.ValueKind { return KindRecord }
func (r *Record) Keys() []string        { return r.Order }
func (r *Record) GetOwn(key string) (Value, bool) {
	v, ok := r.Data[key]
	return v, ok
}

// Prototype returns the own "[[Prototype]]" field when it is itself a
// Record (spec §4.4.3), re-derived on every call so a `[]=` write to that
// key takes effect immediately; otherwise it falls back to r.Proto.
func (r *Record) Prototype() Value {
	if v, ok := r.Data[ProtoKey]; ok {
		if rv, ok := v.(RecordValue); ok {
			return rv
		}
	}
	return r.Proto
}

func (r *Record) RecordKeys() []string { return r.Order }
func (r *Record) RecordGet(key string) (types.Valued, bool) {
	v, ok := r.Data[key]
	if !ok {
		return nil, false
	}
	return v, true
}
func (r *Record) Inspect() string { return inspectRecord(r) }

// ConcatRecordView presents Left's fields overlaid with Right's (Right
// wins on key collision), without copying either's storage -- the result
// of the Record prototype's `+` (merge) method.
type ConcatRecordView struct {
	base
	Left, Right RecordValue
}

func (v *ConcatRecordView) Kind() types.ValueKind { return KindRecord }
func (v *ConcatRecordView) Keys() []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(v.Left.Keys())+len(v.Right.Keys()))
	for _, k := range v.Left.Keys() {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	for _, k := range v.Right.Keys() {
		if !seen[k] {
			seen[k] = true
			out = append(out, k)
		}
	}
	return out
}
func (v *ConcatRecordView) GetOwn(key string) (Value, bool) {
	if rv, ok := v.Right.GetOwn(key); ok {
		return rv, ok
	}
	return v.Left.GetOwn(key)
}
func (v *ConcatRecordView) Prototype() Value { return v.Right.Prototype() }
func (v *ConcatRecordView) RecordKeys() []string { return v.Keys() }
func (v *ConcatRecordView) RecordGet(key string) (types.Valued, bool) {
	val, ok := v.GetOwn(key)
	if !ok {
		return nil, false
	}
	return val, true
}
func (v *ConcatRecordView) Inspect() string { return inspectRecord(v) }

// RemoveRecordView presents Inner with one field removed (used by the
// Record prototype's `without` method).
type RemoveRecordView struct {
	base
	Inner   RecordValue
	Removed string
}

func (v *RemoveRecordView) Kind() types.ValueKind { return KindRecord }
func (v *RemoveRecordView) Keys() []string {
	src := v.Inner.Keys()
	out := make([]string, 0, len(src))
	for _, k := range src {
		if k != v.Removed {
			out = append(out, k)
		}
	}
	return out
}
func (v *RemoveRecordView) GetOwn(key string) (Value, bool) {
	if key == v.Removed {
		return nil, false
	}
	return v.Inner.GetOwn(key)
}
func (v *RemoveRecordView) Prototype() Value { return v.Inner.Prototype() }
func (v *RemoveRecordView) RecordKeys() []string { return v.Keys() }
func (v *RemoveRecordView) RecordGet(key string) (types.Valued, bool) {
	val, ok := v.GetOwn(key)
	if !ok {
		return nil, false
	}
	return val, true
}
func (v *RemoveRecordView) Inspect() string { return inspectRecord(v) }

func inspectRecord(r RecordValue) string {
	out := []byte{'{'}
	for i, k := range r.Keys() {
		if i > 0 {
			out = append(out, ", "...)
		}
		out = append(out, k...)
		out = append(out, ": "...)
		if fv, ok := r.GetOwn(k); ok {
			out = append(out, fv.Inspect()...)
		}
	}
	out = append(out, '}')
	return string(out)
}

// GetPrototypeOf walks one step up v's [[Prototype]] chain, or returns nil
// if v is not a record or has no prototype.
func GetPrototypeOf(v Value) Value {
	rv, ok := v.(RecordValue)
	if !ok {
		return nil
	}
	return rv.Prototype()
}
