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

package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/czcorpus/cnc-gokit/fs"
)

// split name markers tested against lowercased file names
var (
	trainMarkers = []string{"train"}
	devMarkers   = []string{"dev", "testa"}
	testMarkers  = []string{"test", "testb"}
)

func matchesAny(name string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// FindTrainDevTestFiles resolves the data files of a corpus stored
// in dataDir. Explicitly provided file names are joined with dataDir
// and must exist; empty ones are discovered by the usual naming
// convention (a file name containing "train", "dev"/"testa",
// "test"/"testb"). Only the train file is mandatory. Missing dev and
// test resolve to empty paths.
func FindTrainDevTestFiles(
	dataDir string,
	trainFile, devFile, testFile string,
) (string, string, string, error) {
	trainPath, err := resolveSplitFile(dataDir, trainFile, trainMarkers, nil)
	if err != nil {
		return "", "", "", err
	}
	if trainPath == "" {
		return "", "", "", fmt.Errorf("no train data found in %s", dataDir)
	}
	devPath, err := resolveSplitFile(dataDir, devFile, devMarkers, trainMarkers)
	if err != nil {
		return "", "", "", err
	}
	// "testa" would match the "test" marker so dev names must be
	// excluded when searching for the test file
	testPath, err := resolveSplitFile(dataDir, testFile, testMarkers, append([]string{"testa"}, trainMarkers...))
	if err != nil {
		return "", "", "", err
	}
	return trainPath, devPath, testPath, nil
}

func resolveSplitFile(dataDir, fileName string, markers, exclude []string) (string, error) {
	if fileName != "" {
		path := filepath.Join(dataDir, fileName)
		if isFile, _ := fs.IsFile(path); !isFile {
			return "", fmt.Errorf("data file %s does not exist", path)
		}
		return path, nil
	}
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return "", fmt.Errorf("failed to search data files: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if matchesAny(name, exclude) {
			continue
		}
		if matchesAny(name, markers) {
			return filepath.Join(dataDir, entry.Name()), nil
		}
	}
	return "", nil
}
