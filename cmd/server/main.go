/*
 * Copyright (c) 2025, Voxkit. (https://voxkit.io).
 *
 * Voxkit licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package main is the entry point for starting the Crossbar flow engine.
package main

import (
	"flag"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/voxkit/crossbar/internal/flow"
	"github.com/voxkit/crossbar/internal/provider"
	"github.com/voxkit/crossbar/internal/system/config"
	dbprovider "github.com/voxkit/crossbar/internal/system/database/provider"
	"github.com/voxkit/crossbar/internal/system/database/seeder"
	"github.com/voxkit/crossbar/internal/system/log"
)

func main() {
	logger := log.GetLogger()

	crossbarHome := getCrossbarHome(logger)

	cfg := initConfigurations(logger, crossbarHome)
	if cfg == nil {
		logger.Fatal("Failed to initialize configurations")
	}

	if cfg.Database.Runtime.Type != "" {
		seedRuntimeSchema(logger)
	}

	initFlowService(logger)

	logger.Info("Crossbar flow engine started", log.String("hostname", cfg.Server.Hostname),
		log.Int("port", cfg.Server.Port))

	waitForShutdown(logger)
}

// getCrossbarHome retrieves and returns the Crossbar home directory.
func getCrossbarHome(logger *log.Logger) string {
	projectHome := ""
	projectHomeFlag := flag.String("crossbarHome", "", "Path to Crossbar home directory")
	flag.Parse()

	if *projectHomeFlag != "" {
		logger.Info("Using crossbarHome from command line argument",
			log.String("crossbarHome", *projectHomeFlag))
		projectHome = *projectHomeFlag
	} else {
		dir, dirErr := os.Getwd()
		if dirErr != nil {
			logger.Fatal("Failed to get current working directory", log.Error(dirErr))
		}
		projectHome = dir
	}

	return projectHome
}

// initConfigurations loads the deployment configuration and initializes the runtime.
func initConfigurations(logger *log.Logger, crossbarHome string) *config.Config {
	configFilePath := path.Join(crossbarHome, "repository/conf/deployment.yaml")
	cfg, err := config.LoadConfig(configFilePath)
	if err != nil {
		logger.Fatal("Failed to load configurations", log.Error(err))
	}

	if err := config.InitializeCrossbarRuntime(crossbarHome, cfg); err != nil {
		logger.Fatal("Failed to initialize crossbar runtime", log.Error(err))
	}

	return cfg
}

// seedRuntimeSchema creates the runtime database tables if they do not exist.
func seedRuntimeSchema(logger *log.Logger) {
	dbClient, err := dbprovider.NewDBProvider().GetDBClient("runtime")
	if err != nil {
		logger.Fatal("Failed to connect to the runtime database", log.Error(err))
	}
	defer func() {
		if closeErr := dbClient.Close(); closeErr != nil {
			logger.Error("Failed to close database client", log.Error(closeErr))
		}
	}()

	if err := seeder.NewDBSeeder(dbClient).SeedSchema(); err != nil {
		logger.Fatal("Failed to initialize runtime database schema", log.Error(err))
	}
}

// initFlowService initializes the flow execution service with the in-memory
// provider backends.
func initFlowService(logger *log.Logger) {
	providers := provider.Providers{
		Telephony: provider.NewInMemoryTelephonyProvider(),
		Media:     provider.NewInMemoryMediaProvider(),
		Queue:     provider.NewInMemoryQueueProvider(),
		Input:     provider.NewInMemoryInputProvider(),
	}

	if err := flow.GetFlowExecService().Init(providers); err != nil {
		logger.Fatal("Failed to initialize the flow execution service", log.Error(err))
	}
}

func waitForShutdown(logger *log.Logger) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	received := <-signals

	logger.Info("Shutting down", log.String("signal", received.String()))
	_ = log.GetLogger().Sync()
}
