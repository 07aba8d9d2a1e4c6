// Copyright 2023 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2023 Institute of the Czech National Corpus,
//                Faculty of Arts, Charles University
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/czcorpus/cnc-gokit/logging"
	"github.com/czcorpus/cnc-gokit/uniresp"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"bilbo/cnf"
	"bilbo/corpus"
	"bilbo/debug"
	"bilbo/general"
	"bilbo/jobs"
	"bilbo/root"
)

var (
	version   string
	buildDate string
	gitCommit string
)

func main() {
	version := general.VersionInfo{
		Version:   version,
		BuildDate: buildDate,
		GitCommit: gitCommit,
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "BILBO - Bank of Interlinked Linguistic Blocks and Observations\n\nUsage:\n\t%s [options] start [config.json]\n\t%s [options] version\n",
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	action := flag.Arg(0)
	if action == "version" {
		fmt.Printf("bilbo %s\nbuild date: %s\nlast commit: %s\n", version.Version, version.BuildDate, version.GitCommit)
		return

	} else if action != "start" {
		log.Fatal().Msgf("Unknown action %s", action)
	}
	conf := cnf.LoadConfig(flag.Arg(1))
	logging.SetupLogging(conf.Logging)
	if conf.CorporaSetup == nil {
		log.Fatal().Msg("missing corporaSetup configuration")
	}
	if err := conf.CorporaSetup.Load(); err != nil {
		log.Fatal().
			Err(err).
			Msg("failed to load corpora configs")
	}
	log.Info().Msg("Starting BILBO")
	cnf.ApplyDefaults(conf)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if !conf.Logging.Level.IsDebugMode() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(logging.GinMiddleware())
	engine.Use(uniresp.AlwaysJSONContentType())
	engine.NoMethod(uniresp.NoMethodHandler)
	engine.NoRoute(uniresp.NotFoundHandler)

	rootActions := root.Actions{Version: version, Conf: conf}
	jobActions := jobs.NewActions(conf.Jobs, conf.Language)
	corpusActions := corpus.NewActions(conf.CorporaSetup, jobActions, ctx)
	debugActions := debug.NewActions(jobActions)

	engine.GET(
		"/", rootActions.RootAction)
	engine.GET(
		"/corpora", corpusActions.CorporaList)
	engine.GET(
		"/corpora/:corpusId", corpusActions.CorpusInfo)
	engine.GET(
		"/corpora/:corpusId/sentences/:sentIdx", corpusActions.GetSentence)
	engine.POST(
		"/corpora/:corpusId/load", corpusActions.LoadCorpus)
	engine.POST(
		"/corpora/:corpusId/importVertical", corpusActions.ImportVertical)

	engine.GET(
		"/jobs", jobActions.JobList)
	engine.GET(
		"/jobs/:jobId", jobActions.JobInfo)

	engine.GET(
		"/debug/sentencePreview", debugActions.SentencePreview)
	engine.POST(
		"/debug/dummyJob", debugActions.CreateDummyJob)
	engine.POST(
		"/debug/dummyJob/:jobId/finish", debugActions.FinishDummyJob)

	srv := &http.Server{
		Handler:      engine,
		Addr:         fmt.Sprintf("%s:%d", conf.ListenAddress, conf.ListenPort),
		WriteTimeout: time.Duration(conf.ServerWriteTimeoutSecs) * time.Second,
		ReadTimeout:  time.Duration(conf.ServerReadTimeoutSecs) * time.Second,
	}
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("")
		}
	}()

	<-ctx.Done()
	log.Info().Err(ctx.Err()).Msg("Shutdown request error")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Info().Err(err).Msg("Shutdown error")
	}
}
