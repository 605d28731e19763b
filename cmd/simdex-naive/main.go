// Copyright 2026 gorse Project Authors
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
	"fmt"
	"runtime"
	"time"

	"github.com/gorse-io/simdex/base/log"
	"github.com/gorse-io/simdex/dataset"
	"github.com/gorse-io/simdex/ranking"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var naiveCommand = &cobra.Command{
	Use:   "simdex-naive",
	Short: "Dense brute-force top-K baseline",
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.PersistentFlags()
		debug, _ := flags.GetBool("debug")
		log.SetLogger(flags, debug)

		userWeights, _ := flags.GetString("user-weights")
		itemWeights, _ := flags.GetString("item-weights")
		topK, _ := flags.GetInt("top-k")
		numUsers, _ := flags.GetInt("num-users")
		numItems, _ := flags.GetInt("num-items")
		numFactors, _ := flags.GetInt("num-latent-factors")
		jobs, _ := flags.GetInt("jobs")
		output, _ := flags.GetString("output")
		baseName, _ := flags.GetString("base-name")

		users, err := dataset.LoadWeights(userWeights, numUsers, numFactors)
		if err != nil {
			log.Logger().Fatal("failed to load user weights", zap.Error(err))
		}
		items, err := dataset.LoadWeights(itemWeights, numItems, numFactors)
		if err != nil {
			log.Logger().Fatal("failed to load item weights", zap.Error(err))
		}

		start := time.Now()
		topKItems, err := ranking.NaiveTopK(context.Background(), users, items, topK, jobs)
		if err != nil {
			log.Logger().Fatal("failed to rank items", zap.Error(err))
		}
		compTime := time.Since(start)

		if output != "" {
			if err = dataset.SaveTopK(output, topKItems, topK); err != nil {
				log.Logger().Fatal("failed to save ranking", zap.Error(err))
			}
		}
		log.Logger().Info("ranking complete",
			zap.Int("num_users", users.Rows),
			zap.Int("num_items", items.Rows),
			zap.Int("top_k", topK),
			zap.Duration("comp_time", compTime))
		if baseName != "" {
			row := fmt.Sprintf("%s,%d,%d,%d,%f", baseName, numFactors, jobs, topK, compTime.Seconds())
			name, err := ranking.AppendTiming(baseName,
				"model,num_latent_factors,num_threads,K,comp_time", row)
			if err != nil {
				log.Logger().Fatal("failed to write timing statistics", zap.Error(err))
			}
			log.Logger().Info("timing statistics written", zap.String("path", name))
		}
	},
}

func init() {
	flags := naiveCommand.PersistentFlags()
	flags.StringP("user-weights", "q", "", "user weights file")
	flags.StringP("item-weights", "p", "", "item weights file")
	flags.IntP("top-k", "k", 10, "top K items to return per user")
	flags.IntP("num-users", "m", 0, "number of users")
	flags.IntP("num-items", "n", 0, "number of items")
	flags.IntP("num-latent-factors", "f", 0, "number of latent factors")
	flags.IntP("jobs", "j", runtime.NumCPU(), "number of working jobs")
	flags.StringP("output", "o", "", "write top K item ids as CSV")
	flags.String("base-name", "", "base name for timing statistics output")
	flags.Bool("debug", false, "use debug log mode")
	log.AddFlags(flags)
}

func main() {
	if err := naiveCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute command", zap.Error(err))
	}
}
