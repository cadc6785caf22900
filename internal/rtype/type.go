// Package rtype implements the closed type lattice of the workflow
// compiler: the value types a task input or custom-type field can carry,
// and their canonical Rust textual rendering used by the code generator.
package rtype

import (
	"encoding/json"
	"fmt"
)

// Kind tags a Type's shape.
type Kind int

const (
	KString Kind = iota
	KInt
	KUint
	KFloat
	KBoolean
	KList
	KHashMap
	KTuple
	KStruct
)

// Type is a tagged variant over the compiler's value types. Compound
// cases own their inner types; Struct refers to a custom type by name.
type Type struct {
	Kind   Kind
	Elem   *Type  // List(Elem)
	Key    *Type  // HashMap(Key, Val)
	Val    *Type  // HashMap(Key, Val)
	First  *Type  // Tuple(First, Second)
	Second *Type  // Tuple(First, Second)
	Name   string // Struct(Name)
}

func String() Type  { return Type{Kind: KString} }
func Int() Type     { return Type{Kind: KInt} }
func Uint() Type    { return Type{Kind: KUint} }
func Float() Type   { return Type{Kind: KFloat} }
func Boolean() Type { return Type{Kind: KBoolean} }

func List(elem Type) Type {
	e := elem
	return Type{Kind: KList, Elem: &e}
}

func HashMap(key, val Type) Type {
	k, v := key, val
	return Type{Kind: KHashMap, Key: &k, Val: &v}
}

func Tuple(first, second Type) Type {
	f, s := first, second
	return Type{Kind: KTuple, First: &f, Second: &s}
}

func Struct(name string) Type {
	return Type{Kind: KStruct, Name: name}
}

// wireShape is the JSON wire shape the evaluator's builders (List,
// HashMap, Tuple, and primitive string tags) produce.
//
//	"Int"                                  -> primitive
//	{"List": <type>}
//	{"HashMap": [<key>, <val>]}
//	{"Tuple": [<first>, <second>]}
//	{"Struct": "Name"}
type wireShape struct {
	List    *json.RawMessage  `json:"List,omitempty"`
	HashMap []json.RawMessage `json:"HashMap,omitempty"`
	Tuple   []json.RawMessage `json:"Tuple,omitempty"`
	Struct  *string           `json:"Struct,omitempty"`
}

// Parse decodes the JSON wire shape produced by the evaluator's builder
// functions into a Type. Errors are malformed shape or unknown tag.
func Parse(raw json.RawMessage) (Type, error) {
	var primitive string
	if err := json.Unmarshal(raw, &primitive); err == nil {
		switch primitive {
		case "String":
			return String(), nil
		case "Int":
			return Int(), nil
		case "Uint":
			return Uint(), nil
		case "Float":
			return Float(), nil
		case "Boolean":
			return Boolean(), nil
		default:
			return Type{}, fmt.Errorf("rtype: unknown primitive tag %q", primitive)
		}
	}

	var shape wireShape
	if err := json.Unmarshal(raw, &shape); err != nil {
		return Type{}, fmt.Errorf("rtype: malformed type shape: %w", err)
	}

	switch {
	case shape.List != nil:
		elem, err := Parse(*shape.List)
		if err != nil {
			return Type{}, fmt.Errorf("rtype: in List: %w", err)
		}
		return List(elem), nil
	case len(shape.HashMap) == 2:
		key, err := Parse(shape.HashMap[0])
		if err != nil {
			return Type{}, fmt.Errorf("rtype: in HashMap key: %w", err)
		}
		val, err := Parse(shape.HashMap[1])
		if err != nil {
			return Type{}, fmt.Errorf("rtype: in HashMap val: %w", err)
		}
		return HashMap(key, val), nil
	case len(shape.Tuple) == 2:
		first, err := Parse(shape.Tuple[0])
		if err != nil {
			return Type{}, fmt.Errorf("rtype: in Tuple first: %w", err)
		}
		second, err := Parse(shape.Tuple[1])
		if err != nil {
			return Type{}, fmt.Errorf("rtype: in Tuple second: %w", err)
		}
		return Tuple(first, second), nil
	case shape.Struct != nil:
		return Struct(*shape.Struct), nil
	default:
		return Type{}, fmt.Errorf("rtype: unrecognized type shape %s", raw)
	}
}

// Render produces the canonical Rust textual form used in generated
// code. Rendering is total over the enumerated cases.
func (t Type) Render() string {
	switch t.Kind {
	case KString:
		return "String"
	case KInt:
		return "i32"
	case KUint:
		return "u32"
	case KFloat:
		return "f32"
	case KBoolean:
		return "bool"
	case KList:
		return fmt.Sprintf("Vec<%s>", t.Elem.Render())
	case KHashMap:
		return fmt.Sprintf("HashMap<%s,%s>", t.Key.Render(), t.Val.Render())
	case KTuple:
		return fmt.Sprintf("(%s,%s)", t.First.Render(), t.Second.Render())
	case KStruct:
		return t.Name
	default:
		return fmt.Sprintf("<unrendered-kind-%d>", t.Kind)
	}
}

// Equal reports structural equality between two types.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}
	switch t.Kind {
	case KList:
		return t.Elem.Equal(*other.Elem)
	case KHashMap:
		return t.Key.Equal(*other.Key) && t.Val.Equal(*other.Val)
	case KTuple:
		return t.First.Equal(*other.First) && t.Second.Equal(*other.Second)
	case KStruct:
		return t.Name == other.Name
	default:
		return true
	}
}

func (t Type) String() string { return t.Render() }
