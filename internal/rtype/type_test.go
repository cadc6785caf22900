package rtype

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	t.Run("Should render primitives to their Rust scalar names", func(t *testing.T) {
		assert.Equal(t, "String", String().Render())
		assert.Equal(t, "i32", Int().Render())
		assert.Equal(t, "u32", Uint().Render())
		assert.Equal(t, "f32", Float().Render())
		assert.Equal(t, "bool", Boolean().Render())
	})

	t.Run("Should render List(Int) as Vec<i32>", func(t *testing.T) {
		assert.Equal(t, "Vec<i32>", List(Int()).Render())
	})

	t.Run("Should render nested HashMap and Tuple types without spaces", func(t *testing.T) {
		got := HashMap(Int(), Tuple(Int(), String())).Render()
		assert.Equal(t, "HashMap<i32,(i32,String)>", got)
	})

	t.Run("Should render Struct by name", func(t *testing.T) {
		assert.Equal(t, "MyRec", Struct("MyRec").Render())
	})
}

func TestParseRenderRoundTrip(t *testing.T) {
	t.Run("Should satisfy render(parse(render(T))) = render(T)", func(t *testing.T) {
		cases := []Type{
			String(), Int(), Uint(), Float(), Boolean(),
			List(Int()),
			HashMap(Int(), Tuple(Int(), String())),
			Tuple(String(), List(Boolean())),
			Struct("Employee"),
		}
		for _, tc := range cases {
			rendered := tc.Render()
			raw := toWireJSON(t, tc)
			parsed, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, rendered, parsed.Render())
		}
	})
}

func TestParseErrors(t *testing.T) {
	t.Run("Should reject an unknown primitive tag", func(t *testing.T) {
		_, err := Parse(json.RawMessage(`"Decimal"`))
		assert.Error(t, err)
	})

	t.Run("Should reject a malformed shape", func(t *testing.T) {
		_, err := Parse(json.RawMessage(`{"List": }`))
		assert.Error(t, err)
	})

	t.Run("Should reject an empty object", func(t *testing.T) {
		_, err := Parse(json.RawMessage(`{}`))
		assert.Error(t, err)
	})
}

func TestEqual(t *testing.T) {
	t.Run("Should consider structurally identical compound types equal", func(t *testing.T) {
		a := List(HashMap(Int(), String()))
		b := List(HashMap(Int(), String()))
		assert.True(t, a.Equal(b))
	})

	t.Run("Should consider different struct names unequal", func(t *testing.T) {
		assert.False(t, Struct("A").Equal(Struct("B")))
	})
}

// toWireJSON mirrors the evaluator's wire shape for a Type so we can
// exercise Parse independently of the eval package.
func toWireJSON(t *testing.T, ty Type) json.RawMessage {
	t.Helper()
	switch ty.Kind {
	case KString:
		return json.RawMessage(`"String"`)
	case KInt:
		return json.RawMessage(`"Int"`)
	case KUint:
		return json.RawMessage(`"Uint"`)
	case KFloat:
		return json.RawMessage(`"Float"`)
	case KBoolean:
		return json.RawMessage(`"Boolean"`)
	case KList:
		inner := toWireJSON(t, *ty.Elem)
		b, err := json.Marshal(map[string]json.RawMessage{"List": inner})
		require.NoError(t, err)
		return b
	case KHashMap:
		k := toWireJSON(t, *ty.Key)
		v := toWireJSON(t, *ty.Val)
		b, err := json.Marshal(map[string][]json.RawMessage{"HashMap": {k, v}})
		require.NoError(t, err)
		return b
	case KTuple:
		f := toWireJSON(t, *ty.First)
		s := toWireJSON(t, *ty.Second)
		b, err := json.Marshal(map[string][]json.RawMessage{"Tuple": {f, s}})
		require.NoError(t, err)
		return b
	case KStruct:
		b, err := json.Marshal(map[string]string{"Struct": ty.Name})
		require.NoError(t, err)
		return b
	default:
		t.Fatalf("unhandled kind %d", ty.Kind)
		return nil
	}
}
