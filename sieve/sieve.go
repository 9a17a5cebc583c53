// SPDX-License-Identifier: GPL-3.0-or-later

// Package sieve models the surface the embedding script host presents to
// plugins: coercible values, a function registry with fixed ids and arities,
// and the per-invocation context handed to each plugin call.
package sieve

import (
	"context"
	"fmt"

	"github.com/sievekit/go-sieve-bayes/bayes"
	"github.com/sievekit/go-sieve-bayes/domain"
	"github.com/sievekit/go-sieve-bayes/tokenize"
)

// PluginContext is the per-call view a plugin function receives. The cache,
// classifier kernel, suffix list and lookup registry are configuration
// acquired once per call and treated as immutable for its duration.
type PluginContext struct {
	Context   context.Context
	Arguments []Variable

	Lookups  domain.LookupResolver
	Psl      tokenize.SuffixList
	Cache    domain.WeightCache
	Classify *bayes.Classifier
}

type PluginFunc func(ctx *PluginContext) Variable

type externalFunction struct {
	id    int
	arity int
	fn    PluginFunc
}

// FunctionMap registers the external functions a plugin exposes to scripts,
// each under a fixed (name, id, arity).
type FunctionMap struct {
	functions map[string]externalFunction
}

func NewFunctionMap() *FunctionMap {
	return &FunctionMap{
		functions: make(map[string]externalFunction),
	}
}

func (m *FunctionMap) Register(name string, id, arity int, fn PluginFunc) error {
	if _, exists := m.functions[name]; exists {
		return fmt.Errorf("function %s is already registered", name)
	}

	m.functions[name] = externalFunction{
		id:    id,
		arity: arity,
		fn:    fn,
	}
	return nil
}

// Call invokes a registered function, coercing the argument list to the
// registered arity: extra arguments are dropped, missing ones arrive as
// empty Variables.
func (m *FunctionMap) Call(name string, ctx *PluginContext) (Variable, error) {
	function, ok := m.functions[name]
	if !ok {
		return Variable{}, fmt.Errorf("unknown function %s", name)
	}

	arguments := make([]Variable, function.arity)
	copy(arguments, ctx.Arguments)
	ctx.Arguments = arguments

	return function.fn(ctx), nil
}
