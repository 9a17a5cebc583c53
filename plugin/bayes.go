// SPDX-License-Identifier: GPL-3.0-or-later

// Package plugin implements the bayes classifier functions exposed to the
// script host: bayes_train, bayes_untrain and bayes_classify. All failures
// are encoded in the returned Variable; nothing propagates to the host.
package plugin

import (
	"github.com/sirupsen/logrus"

	"github.com/sievekit/go-sieve-bayes/bayes"
	"github.com/sievekit/go-sieve-bayes/cache"
	"github.com/sievekit/go-sieve-bayes/domain"
	"github.com/sievekit/go-sieve-bayes/log"
	"github.com/sievekit/go-sieve-bayes/sieve"
	"github.com/sievekit/go-sieve-bayes/tokenize"
)

const (
	FnTrain    = "bayes_train"
	FnUntrain  = "bayes_untrain"
	FnClassify = "bayes_classify"
)

func RegisterTrain(id int, functions *sieve.FunctionMap) error {
	return functions.Register(FnTrain, id, 3, ExecTrain)
}

func RegisterUntrain(id int, functions *sieve.FunctionMap) error {
	return functions.Register(FnUntrain, id, 3, ExecUntrain)
}

func RegisterClassify(id int, functions *sieve.FunctionMap) error {
	return functions.Register(FnClassify, id, 2, ExecClassify)
}

func ExecTrain(ctx *sieve.PluginContext) sieve.Variable {
	return train(ctx, FnTrain, true)
}

func ExecUntrain(ctx *sieve.PluginContext) sieve.Variable {
	return train(ctx, FnUntrain, false)
}

func train(ctx *sieve.PluginContext, fn string, isTrain bool) sieve.Variable {
	lookupID := ctx.Arguments[0].ToString()
	store, ok := ctx.Lookups.Get(lookupID)
	if !ok {
		warnUnknownLookup(fn, lookupID)
		return sieve.BoolVar(false)
	}

	text := ctx.Arguments[1].ToString()
	isSpam := ctx.Arguments[2].ToBool()
	if text == "" {
		return sieve.BoolVar(false)
	}

	// Fold the document into per-token deltas
	model := bayes.NewModel()
	model.Train(osbTokens(text, ctx.Psl), isSpam)
	if model.Empty() {
		return sieve.BoolVar(false)
	}

	// Apply the deltas and invalidate the touched cache entries. A failed
	// write aborts; the store may be left partially updated, it stays the
	// source of truth either way.
	for hash, weights := range model.Weights {
		deltaSpam, deltaHam := int64(weights.Spam), int64(weights.Ham)
		if !isTrain {
			deltaSpam, deltaHam = -deltaSpam, -deltaHam
		}

		_, found, err := store.Lookup(ctx.Context, []int64{int64(hash.H1), int64(hash.H2), deltaSpam, deltaHam})
		if err != nil || !found {
			return sieve.BoolVar(false)
		}
		ctx.Cache.Invalidate(hash)
	}

	// Count the document on the totals row
	learned := int64(1)
	if !isTrain {
		learned = -1
	}
	deltaSpam, deltaHam := int64(0), learned
	if isSpam {
		deltaSpam, deltaHam = learned, 0
	}
	_, found, err := store.Lookup(ctx.Context, []int64{0, 0, deltaSpam, deltaHam})
	if err != nil || !found {
		return sieve.BoolVar(false)
	}
	ctx.Cache.Invalidate(domain.TotalsKey)

	return sieve.BoolVar(true)
}

func ExecClassify(ctx *sieve.PluginContext) sieve.Variable {
	lookupID := ctx.Arguments[0].ToString()
	store, ok := ctx.Lookups.Get(lookupID)
	if !ok {
		warnUnknownLookup(FnClassify, lookupID)
		return sieve.Variable{}
	}

	text := ctx.Arguments[1].ToString()
	if text == "" {
		return sieve.Variable{}
	}

	// Corpus totals gate classification entirely
	totals, ok := cache.GetOrFetch(ctx.Context, ctx.Cache, store, domain.TotalsKey)
	if !ok {
		return sieve.Variable{}
	}
	spamLearns, hamLearns := totals.Spam, totals.Ham
	if spamLearns < ctx.Classify.MinLearns() || hamLearns < ctx.Classify.MinLearns() {
		return sieve.Variable{}
	}

	// Tokens whose store read fails drop out of the sequence: a lost token
	// only weakens precision, while a lost write would corrupt the model.
	tokens := osbTokens(text, ctx.Psl)
	next := func() (bayes.TokenWeight, bool) {
		for {
			token, ok := tokens.Next()
			if !ok {
				return bayes.TokenWeight{}, false
			}
			weights, ok := cache.GetOrFetch(ctx.Context, ctx.Cache, store, token.Hash)
			if !ok {
				continue
			}
			return bayes.TokenWeight{Idx: token.Idx, Weights: weights}, true
		}
	}

	probability, ok := ctx.Classify.Classify(next, hamLearns, spamLearns)
	if !ok {
		return sieve.Variable{}
	}
	return sieve.FloatVar(probability)
}

func osbTokens(text string, psl tokenize.SuffixList) *tokenize.OsbTokenizer {
	return tokenize.NewOsbTokenizer(tokenize.NewWordTokenizer(text, psl), tokenize.DefaultWindow)
}

func warnUnknownLookup(fn, lookupID string) {
	log.Logger(log.LOG_PLUGIN).WithFields(logrus.Fields{
		"context":  "sieve:" + fn,
		"event":    "failed",
		"reason":   "Unknown lookup id",
		"lookupid": lookupID,
	}).Warn("Could not resolve lookup store")
}
