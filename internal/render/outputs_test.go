package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecideOutputStyle(t *testing.T) {
	cases := []struct {
		name      string
		known     int
		declared  int
		threshold int
		want      OutputStyle
	}{
		{"few outputs bind individually", 2, 2, 2, StyleIndividual},
		{"known above threshold groups", 3, 3, 2, StyleCollective},
		{"declared above five groups even when few recorded", 1, 6, 2, StyleCollective},
		{"declared exactly five stays individual", 1, 5, 2, StyleIndividual},
		{"raised threshold keeps individual binding", 3, 3, 4, StyleIndividual},
		{"no recorded outputs, small signature", 0, 1, 2, StyleIndividual},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DecideOutputStyle(tc.known, tc.declared, tc.threshold))
		})
	}
}

func TestBindOutputs(t *testing.T) {
	t.Run("follows declared order, not provenance order", func(t *testing.T) {
		outputs := OutputSet{
			{Name: "second", Variable: NewArtifactVariable("second_var")},
			{Name: "first", Variable: NewArtifactVariable("first_var")},
		}
		got := BindOutputs([]string{"first", "second"}, outputs)
		assert.Equal(t, []string{"first_var", "second_var"}, got)
	})

	t.Run("missing outputs become placeholders", func(t *testing.T) {
		outputs := OutputSet{
			{Name: "kept", Variable: NewArtifactVariable("kept_var")},
			{Name: "dropped", Variable: nil},
		}
		got := BindOutputs([]string{"kept", "dropped", "never_recorded"}, outputs)
		assert.Equal(t, []string{"kept_var", "_", "_"}, got)
	})

	t.Run("single output gains empty trailing entry", func(t *testing.T) {
		outputs := OutputSet{{Name: "only", Variable: NewArtifactVariable("only_var")}}
		got := BindOutputs([]string{"only"}, outputs)
		require.Len(t, got, 2)
		assert.Equal(t, []string{"only_var", ""}, got)
	})

	t.Run("single missing output still gains trailing entry", func(t *testing.T) {
		got := BindOutputs([]string{"only"}, nil)
		assert.Equal(t, []string{"_", ""}, got)
	})
}

func TestOutputSetAccessors(t *testing.T) {
	set := OutputSet{
		{Name: "a", Variable: NewArtifactVariable("a_var")},
		{Name: "b", Variable: nil},
		{Name: "c", Variable: NewArtifactVariable("c_var")},
	}

	assert.Equal(t, 2, set.Known())

	v, ok := set.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, "a_var", v.ToInterfaceName())

	_, ok = set.Lookup("b")
	assert.False(t, ok)

	_, ok = set.Lookup("missing")
	assert.False(t, ok)
}
