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

package config

import (
	"path/filepath"
	"runtime"

	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/spf13/viper"
)

// Config is the configuration of a ranking run.
type Config struct {
	Data    DataConfig    `mapstructure:"data"`
	Index   IndexConfig   `mapstructure:"index"`
	Runtime RuntimeConfig `mapstructure:"runtime"`
	Output  OutputConfig  `mapstructure:"output"`
}

// DataConfig locates the factor matrices.
type DataConfig struct {
	UserWeights string `mapstructure:"user_weights" validate:"required"`
	ItemWeights string `mapstructure:"item_weights" validate:"required"`
	NumUsers    int    `mapstructure:"num_users" validate:"gt=0"`
	NumItems    int    `mapstructure:"num_items" validate:"gt=0"`
	NumFactors  int    `mapstructure:"num_latent_factors" validate:"gt=0"`
}

// IndexConfig controls the ranking index.
type IndexConfig struct {
	TopK        int    `mapstructure:"top_k" validate:"gt=0"`
	BatchSize   int    `mapstructure:"batch_size" validate:"gt=0"`
	NumClusters int    `mapstructure:"num_clusters" validate:"gte=0"`
	ClustersDir string `mapstructure:"clusters_dir"`
	MaxIter     int    `mapstructure:"max_iterations" validate:"gt=0"`
	Seed        int64  `mapstructure:"seed"`
}

// RuntimeConfig controls scheduling.
type RuntimeConfig struct {
	Jobs int `mapstructure:"jobs" validate:"gt=0"`
}

// OutputConfig locates run artifacts. Empty paths disable the artifact.
type OutputConfig struct {
	TopK      string `mapstructure:"top_k"`
	UserStats string `mapstructure:"user_stats"`
	BaseName  string `mapstructure:"base_name"`
}

func setDefault() {
	viper.SetDefault("index.top_k", 10)
	viper.SetDefault("index.batch_size", 256)
	viper.SetDefault("index.num_clusters", 8)
	viper.SetDefault("index.max_iterations", 100)
	viper.SetDefault("runtime.jobs", runtime.NumCPU())
}

// LoadConfig loads a configuration from a TOML file.
func LoadConfig(path string) (*Config, error) {
	setDefault()
	viper.SetConfigType("toml")
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, errors.Annotatef(err, "failed to load config %s", path)
	}
	var conf Config
	if err := viper.Unmarshal(&conf); err != nil {
		return nil, errors.Trace(err)
	}
	return &conf, nil
}

// Validate checks that the configuration describes a feasible run.
func (config *Config) Validate() error {
	if err := validator.New().Struct(config); err != nil {
		return errors.Trace(err)
	}
	if config.Index.BatchSize&(config.Index.BatchSize-1) != 0 {
		return errors.Errorf("batch size %d is not a power of two", config.Index.BatchSize)
	}
	if config.Index.TopK > config.Data.NumItems {
		return errors.Errorf("top k %d exceeds %d items", config.Index.TopK, config.Data.NumItems)
	}
	if config.Index.ClustersDir == "" && config.Index.NumClusters < 1 {
		return errors.New("either clusters_dir or a positive num_clusters is required")
	}
	if config.Index.ClustersDir == "" && config.Index.NumClusters > config.Data.NumUsers {
		return errors.Errorf("%d clusters exceed %d users", config.Index.NumClusters, config.Data.NumUsers)
	}
	return nil
}

// CentroidsPath returns the centroid CSV inside the clusters directory.
func (config *Config) CentroidsPath() string {
	return filepath.Join(config.Index.ClustersDir, "centroids.csv")
}

// AssignmentsPath returns the assignment CSV inside the clusters directory.
func (config *Config) AssignmentsPath() string {
	return filepath.Join(config.Index.ClustersDir, "assignments.csv")
}
