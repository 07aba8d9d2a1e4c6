// Copyright 2024 Tomas Machalek <tomas.machalek@gmail.com>
// Copyright 2024 Institute of the Czech National Corpus,
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
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/rs/zerolog/log"

	"bilbo/conllu"
	"bilbo/dataset"
	"bilbo/vertical"
)

func inspect(path string, lazy bool, dumpIdx int) error {
	ds, err := dataset.New(path, dataset.WithInMemory(!lazy))
	if err != nil {
		return err
	}
	fmt.Printf("file: %s\n", ds.Path())
	fmt.Printf("schema: %s\n", strings.Join(ds.Schema(), ", "))
	fmt.Printf("access mode: in-memory=%t\n", ds.InMemory())
	fmt.Printf("sentences: %d\n", ds.Len())
	if dumpIdx >= 0 {
		sent, err := ds.Get(dumpIdx)
		if err != nil {
			return err
		}
		fmt.Println(spew.Sdump(sent))
	}
	return nil
}

// verify re-reads a file in both access modes and compares the
// results sentence by sentence.
func verify(path string) error {
	eager, err := dataset.New(path, dataset.WithInMemory(true))
	if err != nil {
		return err
	}
	lazy, err := dataset.New(path, dataset.WithInMemory(false))
	if err != nil {
		return err
	}
	if eager.Len() != lazy.Len() {
		return fmt.Errorf("sentence counts differ: in-memory %d vs. lazy %d", eager.Len(), lazy.Len())
	}
	for i := 0; i < eager.Len(); i++ {
		s1, err := eager.Get(i)
		if err != nil {
			return err
		}
		s2, err := lazy.Get(i)
		if err != nil {
			return err
		}
		if s1.Text() != s2.Text() {
			return fmt.Errorf("sentence %d differs between access modes", i)
		}
	}
	fmt.Printf("OK, %d sentences, both access modes agree\n", eager.Len())
	return nil
}

func convert(verticalPaths []string, sentenceStruct string, wordCol, lemmaCol, tagCol int, outPath string) error {
	conf := &vertical.Conf{
		FilePaths:      verticalPaths,
		SentenceStruct: sentenceStruct,
		WordColIdx:     wordCol,
		LemmaColIdx:    lemmaCol,
		TagColIdx:      tagCol,
	}
	ds, err := vertical.Read(context.Background(), conf)
	if err != nil {
		return err
	}
	out := os.Stdout
	if outPath != "" {
		out, err = os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()
	}
	return conllu.Export(out, ds)
}

func main() {
	lazy := flag.Bool("lazy", false, "use the offset-indexed lazy access mode")
	dumpIdx := flag.Int("dump", -1, "dump the sentence with the provided index")
	sentenceStruct := flag.String("sentence-struct", "s", "vertical structure marking sentences")
	wordCol := flag.Int("word-col", 0, "vertical column with the word form")
	lemmaCol := flag.Int("lemma-col", 1, "vertical column with the lemma")
	tagCol := flag.Int("tag-col", 2, "vertical column with the tag")
	outPath := flag.String("o", "", "output file ('convert' action; stdout if empty)")
	flag.Usage = func() {
		fmt.Fprintf(
			os.Stderr,
			"tbtool - inspect and convert annotated corpus files\n\nUsage:\n\t%s [options] inspect [file.conllu]\n\t%s [options] verify [file.conllu]\n\t%s [options] convert [file.vert]+\n",
			filepath.Base(os.Args[0]), filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	var err error
	switch flag.Arg(0) {
	case "inspect":
		err = inspect(flag.Arg(1), *lazy, *dumpIdx)
	case "verify":
		err = verify(flag.Arg(1))
	case "convert":
		err = convert(flag.Args()[1:], *sentenceStruct, *wordCol, *lemmaCol, *tagCol, *outPath)
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("action failed")
	}
}
