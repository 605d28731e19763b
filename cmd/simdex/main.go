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
	"math/rand"
	"runtime"
	"time"

	"github.com/gorse-io/simdex/base/log"
	"github.com/gorse-io/simdex/cluster"
	"github.com/gorse-io/simdex/config"
	"github.com/gorse-io/simdex/dataset"
	"github.com/gorse-io/simdex/ranking"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

var simdexCommand = &cobra.Command{
	Use:   "simdex",
	Short: "Exact top-K item ranking for matrix factorization models",
	Run: func(cmd *cobra.Command, args []string) {
		flags := cmd.PersistentFlags()
		debug, _ := flags.GetBool("debug")
		log.SetLogger(flags, debug)
		conf := loadConfig(flags)
		if err := conf.Validate(); err != nil {
			log.Logger().Fatal("invalid configuration", zap.Error(err))
		}

		users, err := dataset.LoadWeights(conf.Data.UserWeights, conf.Data.NumUsers, conf.Data.NumFactors)
		if err != nil {
			log.Logger().Fatal("failed to load user weights", zap.Error(err))
		}
		items, err := dataset.LoadWeights(conf.Data.ItemWeights, conf.Data.NumItems, conf.Data.NumFactors)
		if err != nil {
			log.Logger().Fatal("failed to load item weights", zap.Error(err))
		}

		ctx := context.Background()
		clusterStart := time.Now()
		var assignments []int32
		var centroids *dataset.Matrix
		if conf.Index.ClustersDir != "" {
			assignments, err = dataset.LoadAssignments(conf.AssignmentsPath(), users.Rows)
			if err != nil {
				log.Logger().Fatal("failed to load cluster assignments", zap.Error(err))
			}
			numClusters := 0
			for _, c := range assignments {
				if int(c) >= numClusters {
					numClusters = int(c) + 1
				}
			}
			centroids, err = dataset.LoadWeights(conf.CentroidsPath(), numClusters, conf.Data.NumFactors)
			if err != nil {
				log.Logger().Fatal("failed to load centroids", zap.Error(err))
			}
		} else {
			rng := rand.New(rand.NewSource(conf.Index.Seed))
			assignments, centroids, err = cluster.KMeans(ctx, users,
				conf.Index.NumClusters, conf.Index.MaxIter, conf.Runtime.Jobs, rng)
			if err != nil {
				log.Logger().Fatal("failed to cluster users", zap.Error(err))
			}
		}
		idx, err := cluster.Build(users, assignments, centroids)
		if err != nil {
			log.Logger().Fatal("failed to build cluster index", zap.Error(err))
		}
		clusterTime := time.Since(clusterStart)

		var collector *ranking.Collector
		if conf.Output.UserStats != "" {
			if collector, err = ranking.NewCollector(conf.Output.UserStats); err != nil {
				log.Logger().Fatal("failed to create statistics collector", zap.Error(err))
			}
		}
		ranker := &ranking.Ranker{
			TopK:      conf.Index.TopK,
			BatchSize: conf.Index.BatchSize,
			Jobs:      conf.Runtime.Jobs,
			Progress:  true,
			Collector: collector,
		}
		rankStart := time.Now()
		topK, err := ranker.Rank(ctx, items, idx)
		if err != nil {
			log.Logger().Fatal("failed to rank items", zap.Error(err))
		}
		rankTime := time.Since(rankStart)
		if collector != nil {
			log.Logger().Info("early termination",
				zap.Int64("items_visited", collector.ItemsVisited()),
				zap.Int64("items_total", int64(users.Rows)*int64(items.Rows)))
			if err = collector.Close(); err != nil {
				log.Logger().Error("failed to close statistics collector", zap.Error(err))
			}
		}

		if conf.Output.TopK != "" {
			if err = dataset.SaveTopK(conf.Output.TopK, topK, conf.Index.TopK); err != nil {
				log.Logger().Fatal("failed to save ranking", zap.Error(err))
			}
		}
		log.Logger().Info("ranking complete",
			zap.Int("num_users", users.Rows),
			zap.Int("num_items", items.Rows),
			zap.Int("num_clusters", idx.NumClusters),
			zap.Int("top_k", conf.Index.TopK),
			zap.Duration("cluster_time", clusterTime),
			zap.Duration("rank_time", rankTime))
		if conf.Output.BaseName != "" {
			row := fmt.Sprintf("%s,%d,%d,%d,%f,%f,%f",
				conf.Output.BaseName, conf.Data.NumFactors, conf.Runtime.Jobs, conf.Index.TopK,
				clusterTime.Seconds(), rankTime.Seconds(), (clusterTime + rankTime).Seconds())
			name, err := ranking.AppendTiming(conf.Output.BaseName,
				"model,num_latent_factors,num_threads,K,cluster_time,rank_time,comp_time", row)
			if err != nil {
				log.Logger().Fatal("failed to write timing statistics", zap.Error(err))
			}
			log.Logger().Info("timing statistics written", zap.String("path", name))
		}
	},
}

func loadConfig(flags *pflag.FlagSet) *config.Config {
	conf := &config.Config{}
	if path, _ := flags.GetString("config"); path != "" {
		var err error
		if conf, err = config.LoadConfig(path); err != nil {
			log.Logger().Fatal("failed to load config", zap.Error(err))
		}
	}
	overrideString := func(dst *string, name string) {
		if v, _ := flags.GetString(name); flags.Changed(name) || *dst == "" {
			*dst = v
		}
	}
	overrideInt := func(dst *int, name string) {
		if v, _ := flags.GetInt(name); flags.Changed(name) || *dst == 0 {
			*dst = v
		}
	}
	overrideString(&conf.Data.UserWeights, "user-weights")
	overrideString(&conf.Data.ItemWeights, "item-weights")
	overrideInt(&conf.Data.NumUsers, "num-users")
	overrideInt(&conf.Data.NumItems, "num-items")
	overrideInt(&conf.Data.NumFactors, "num-latent-factors")
	overrideInt(&conf.Index.TopK, "top-k")
	overrideInt(&conf.Index.BatchSize, "batch-size")
	overrideInt(&conf.Index.NumClusters, "num-clusters")
	overrideString(&conf.Index.ClustersDir, "clusters-dir")
	overrideInt(&conf.Index.MaxIter, "max-iterations")
	overrideInt(&conf.Runtime.Jobs, "jobs")
	overrideString(&conf.Output.TopK, "output")
	overrideString(&conf.Output.UserStats, "user-stats")
	overrideString(&conf.Output.BaseName, "base-name")
	if flags.Changed("seed") {
		conf.Index.Seed, _ = flags.GetInt64("seed")
	}
	return conf
}

func init() {
	flags := simdexCommand.PersistentFlags()
	flags.String("config", "", "path to configuration file")
	flags.StringP("user-weights", "q", "", "user weights file")
	flags.StringP("item-weights", "p", "", "item weights file")
	flags.IntP("top-k", "k", 10, "top K items to return per user")
	flags.IntP("num-users", "m", 0, "number of users")
	flags.IntP("num-items", "n", 0, "number of items")
	flags.IntP("num-latent-factors", "f", 0, "number of latent factors")
	flags.IntP("num-clusters", "c", 8, "number of user clusters")
	flags.String("clusters-dir", "", "directory holding precomputed centroids.csv and assignments.csv")
	flags.IntP("batch-size", "b", 256, "number of items scored per batch, a power of two")
	flags.Int("max-iterations", 100, "maximum k-means iterations")
	flags.Int64("seed", 0, "random seed for k-means")
	flags.IntP("jobs", "j", runtime.NumCPU(), "number of working jobs")
	flags.StringP("output", "o", "", "write top K item ids as CSV")
	flags.String("user-stats", "", "write per-user ranking statistics as CSV")
	flags.String("base-name", "", "base name for timing statistics output")
	flags.Bool("debug", false, "use debug log mode")
	log.AddFlags(flags)
}

func main() {
	if err := simdexCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute command", zap.Error(err))
	}
}
