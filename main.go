// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/sievekit/go-sieve-bayes/bayes"
	"github.com/sievekit/go-sieve-bayes/cache"
	"github.com/sievekit/go-sieve-bayes/config"
	"github.com/sievekit/go-sieve-bayes/log"
	"github.com/sievekit/go-sieve-bayes/mail"
	"github.com/sievekit/go-sieve-bayes/plugin"
	"github.com/sievekit/go-sieve-bayes/sieve"
	"github.com/sievekit/go-sieve-bayes/store"
	"github.com/sievekit/go-sieve-bayes/tokenize"
)

const LearnConcurrency = 8

func main() {
	log.InitLogging("debug")
	logger := log.Logger(log.LOG_MAIN)

	configFile := flag.String("config", "config.toml", "path to the config file")
	rawMail := flag.Bool("mail", false, "treat input files as raw rfc822 messages")
	flag.Parse()

	conf, err := config.ReadConfig(*configFile)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load config")
	}

	if conf.Loglevel != nil {
		log.SetLogLevel(*conf.Loglevel)
	}

	st, err := store.NewSqliteStore(conf.Database)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not connect to database")
	}
	defer st.Close()

	tokenCache, err := cache.NewTokenCache(conf.CachePositive, conf.CacheNegative)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not create token cache")
	}

	classifier, err := bayes.NewClassifier(
		bayes.MinLearns(conf.MinLearns),
		bayes.MinTokenHits(conf.MinTokenHits),
		bayes.MinProbStrength(conf.MinProbStrength),
	)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not create classifier")
	}

	registry := plugin.NewRegistry()
	registry.Add(conf.LookupId, st)

	functions := sieve.NewFunctionMap()
	for _, register := range []func() error{
		func() error { return plugin.RegisterTrain(1, functions) },
		func() error { return plugin.RegisterUntrain(2, functions) },
		func() error { return plugin.RegisterClassify(3, functions) },
	} {
		if err := register(); err != nil {
			logger.WithField("error", err).Fatal("Could not register plugin functions")
		}
	}

	pluginContext := func(arguments ...sieve.Variable) *sieve.PluginContext {
		return &sieve.PluginContext{
			Context:   context.Background(),
			Arguments: arguments,
			Lookups:   registry,
			Psl:       tokenize.PublicSuffixList{},
			Cache:     tokenCache,
			Classify:  classifier,
		}
	}

	switch flag.Arg(0) {
	case "train", "untrain":
		fn := plugin.FnTrain
		if flag.Arg(0) == "untrain" {
			fn = plugin.FnUntrain
		}

		isSpam := false
		switch flag.Arg(1) {
		case "spam":
			isSpam = true
		case "ham":
		default:
			logger.Fatal("Class must be spam or ham")
		}

		texts := readInputs(logger, flag.Args()[2:], *rawMail)
		logger.WithFields(logrus.Fields{"command": flag.Arg(0), "class": flag.Arg(1), "documents": len(texts)}).Info("Learning documents")

		failed := 0
		for _, learned := range learnAll(functions, fn, pluginContext, conf.LookupId, texts, isSpam) {
			if !learned {
				failed++
			}
		}
		if failed > 0 {
			logger.WithField("failed", failed).Fatal("Some documents could not be learned")
		}
		logger.Info("Done")
	case "classify":
		texts := readInputs(logger, flag.Args()[1:], *rawMail)
		for _, text := range texts {
			result, err := functions.Call(plugin.FnClassify, pluginContext(
				sieve.StringVar(conf.LookupId),
				sieve.StringVar(text),
			))
			if err != nil {
				logger.WithField("error", err).Fatal("Could not call classifier")
			}

			if probability, ok := result.ToFloat(); ok {
				fmt.Printf("%.4f\n", probability)
			} else {
				fmt.Println("unsure")
			}
		}
	default:
		logger.Fatal("Usage: go-sieve-bayes [-config file] [-mail] train|untrain spam|ham [files...] | classify [files...]")
	}
}

// learnAll pushes documents through the train function with bounded
// concurrency. The store resolves concurrent counter deltas commutatively,
// so document order does not matter.
func learnAll(functions *sieve.FunctionMap, fn string, pluginContext func(...sieve.Variable) *sieve.PluginContext, lookupID string, texts []string, isSpam bool) []bool {
	semaphore := make(chan bool, LearnConcurrency)
	results := make([]bool, len(texts))
	for i := 0; i < len(texts); i++ {
		semaphore <- true
		go func(index int) {
			result, err := functions.Call(fn, pluginContext(
				sieve.StringVar(lookupID),
				sieve.StringVar(texts[index]),
				sieve.BoolVar(isSpam),
			))
			results[index] = err == nil && result.ToBool()
			<-semaphore
		}(i)
	}

	for i := 0; i < LearnConcurrency; i++ {
		semaphore <- true
	}

	return results
}

func readInputs(logger *logrus.Logger, files []string, rawMail bool) []string {
	if len(files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			logger.WithField("error", err).Fatal("Could not read stdin")
		}
		return []string{asText(logger, data, rawMail)}
	}

	texts := make([]string, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.WithFields(logrus.Fields{"file": file, "error": err}).Fatal("Could not read input file")
		}
		texts = append(texts, asText(logger, data, rawMail))
	}

	return texts
}

func asText(logger *logrus.Logger, data []byte, rawMail bool) string {
	if !rawMail {
		return string(data)
	}

	text, err := mail.ExtractText(data)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not extract text from mail")
	}
	return text
}
