// SPDX-License-Identifier: GPL-3.0-or-later
package sieve

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariableCoercions(t *testing.T) {
	tests := []struct {
		name           string
		variable       Variable
		expectedString string
		expectedBool   bool
	}{
		{"empty", Variable{}, "", false},
		{"string", StringVar("hello"), "hello", true},
		{"emptystring", StringVar(""), "", false},
		{"zerostring", StringVar("0"), "0", false},
		{"falsestring", StringVar("false"), "false", false},
		{"number", FloatVar(0.25), "0.25", true},
		{"zeronumber", FloatVar(0), "0", false},
		{"booltrue", BoolVar(true), "true", true},
		{"boolfalse", BoolVar(false), "false", false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedString, tc.variable.ToString())
			assert.Equal(t, tc.expectedBool, tc.variable.ToBool())
		})
	}
}

func TestVariableToFloat(t *testing.T) {
	f, ok := FloatVar(0.75).ToFloat()
	assert.True(t, ok)
	assert.Equal(t, 0.75, f)

	f, ok = StringVar("1.5").ToFloat()
	assert.True(t, ok)
	assert.Equal(t, 1.5, f)

	_, ok = StringVar("not a number").ToFloat()
	assert.False(t, ok)

	_, ok = Variable{}.ToFloat()
	assert.False(t, ok, "the absent value has no numeric reading")

	f, ok = BoolVar(true).ToFloat()
	assert.True(t, ok)
	assert.Equal(t, 1.0, f)
}

func TestVariableIsEmpty(t *testing.T) {
	assert.True(t, Variable{}.IsEmpty())
	assert.False(t, StringVar("").IsEmpty(), "an empty string is still a value")
	assert.False(t, FloatVar(0).IsEmpty())
}

func TestFunctionMapRegisterDuplicate(t *testing.T) {
	functions := NewFunctionMap()

	err := functions.Register("fn", 1, 2, func(ctx *PluginContext) Variable { return Variable{} })
	assert.NoError(t, err)

	err = functions.Register("fn", 2, 2, func(ctx *PluginContext) Variable { return Variable{} })
	assert.Error(t, err, "double registration should fail")
}

func TestFunctionMapCallUnknown(t *testing.T) {
	functions := NewFunctionMap()

	_, err := functions.Call("missing", &PluginContext{})
	assert.Error(t, err)
}

func TestFunctionMapCallCoercesArity(t *testing.T) {
	functions := NewFunctionMap()

	var seen []Variable
	err := functions.Register("fn", 1, 3, func(ctx *PluginContext) Variable {
		seen = ctx.Arguments
		return BoolVar(true)
	})
	assert.NoError(t, err)

	// Too few arguments are padded with absent values
	result, err := functions.Call("fn", &PluginContext{Arguments: []Variable{StringVar("a")}})
	assert.NoError(t, err)
	assert.True(t, result.ToBool())
	assert.Len(t, seen, 3)
	assert.Equal(t, "a", seen[0].ToString())
	assert.True(t, seen[1].IsEmpty())
	assert.True(t, seen[2].IsEmpty())

	// Extra arguments are dropped
	_, err = functions.Call("fn", &PluginContext{Arguments: []Variable{
		StringVar("a"), StringVar("b"), StringVar("c"), StringVar("d"),
	}})
	assert.NoError(t, err)
	assert.Len(t, seen, 3)
}
