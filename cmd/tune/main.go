// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command tune runs the Texel tuner over a FENS dataset and reports the
// tuned term table.
package main

import (
	"flag"
	"fmt"
	"os"

	"mateline.dev/x/chess/pkg/search/eval/classical/tuner"
)

func main() {
	epochs := flag.Int("epochs", 5000, "number of training epochs to run")
	batchSize := flag.Int("batch-size", tuner.DefaultConfig.BatchSize, "positions per SGD batch")
	learningRate := flag.Float64("lr", tuner.DefaultConfig.LearningRate, "initial learning rate")
	reporting := flag.Int("report-every", tuner.DefaultConfig.Reporting, "epochs between MSE reports")
	seed := flag.Int64("seed", tuner.DefaultConfig.Seed, "shuffle seed")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: tune [flags] <fens-file>")
		os.Exit(1)
	}
	dataPath := flag.Arg(0)

	fmt.Printf("tune: loading dataset %s\n", dataPath)
	dataset, err := tuner.LoadDataset(dataPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tune: failed to load dataset: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("tune: loaded %d entries\n", len(dataset))

	cfg := tuner.DefaultConfig
	cfg.BatchSize = *batchSize
	cfg.LearningRate = *learningRate
	cfg.Reporting = *reporting
	cfg.Seed = *seed

	t := tuner.NewTuner(dataset, cfg)
	t.Tune(*epochs)
}
