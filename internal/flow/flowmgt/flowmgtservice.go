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

// Package flowmgt provides the flow management service implementation.
package flowmgt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/goccy/go-json"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/jsonmodel"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/flow/utils"
	"github.com/voxkit/crossbar/internal/system/config"
	"github.com/voxkit/crossbar/internal/system/error/serviceerror"
	"github.com/voxkit/crossbar/internal/system/log"
)

var (
	flowMgtInstance *FlowMgtService
	flowMgtOnce     sync.Once
)

// FlowMgtServiceInterface defines the interface for the flow management service.
type FlowMgtServiceInterface interface {
	Init() error
	RegisterFlow(flow *model.Flow)
	GetFlow(flowID string) (*model.Flow, bool)
	Resolve(flowID string) (*model.Flow, *model.FlowVersion, *model.FlowNode, *serviceerror.ServiceError)
}

// FlowMgtService holds the flow definitions known to the runtime.
type FlowMgtService struct {
	flows map[string]*model.Flow
	mu    sync.RWMutex
}

// GetFlowMgtService returns a singleton instance of FlowMgtServiceInterface.
func GetFlowMgtService() FlowMgtServiceInterface {
	flowMgtOnce.Do(func() {
		flowMgtInstance = &FlowMgtService{
			flows: make(map[string]*model.Flow),
		}
	})
	return flowMgtInstance
}

// Init loads the flow definitions from the configured graph directory.
func (s *FlowMgtService) Init() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowMgtService"))
	logger.Debug("Initializing the flow management service")

	graphDir := config.GetCrossbarRuntime().Config.Flow.GraphDirectory
	if graphDir == "" {
		logger.Info("Graph directory is not set. No flows will be loaded.")
		return nil
	}

	graphDir = filepath.Clean(filepath.Join(config.GetCrossbarRuntime().CrossbarHome, graphDir))
	logger.Debug("Loading flow definitions", log.String("graphDir", graphDir))

	files, err := os.ReadDir(graphDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("Graph directory does not exist. No flows will be loaded.",
				log.String("graphDir", graphDir))
			return nil
		}
		return fmt.Errorf("failed to read graph directory %s: %w", graphDir, err)
	}

	loadedCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}
		filePath := filepath.Clean(filepath.Join(graphDir, file.Name()))

		fileContent, err := os.ReadFile(filePath)
		if err != nil {
			logger.Warn("Failed to read flow definition file", log.String("filePath", filePath),
				log.Error(err))
			continue
		}

		var definition jsonmodel.FlowDefinition
		if err := json.Unmarshal(fileContent, &definition); err != nil {
			logger.Warn("Failed to parse flow definition file", log.String("filePath", filePath),
				log.Error(err))
			continue
		}

		flow, err := utils.BuildFlowFromDefinition(&definition)
		if err != nil {
			logger.Warn("Failed to build flow from definition", log.String("filePath", filePath),
				log.Error(err))
			continue
		}

		s.RegisterFlow(flow)
		loadedCount++
	}

	logger.Debug("Flow management service initialized successfully", log.Int("flowCount", loadedCount))
	return nil
}

// RegisterFlow registers a flow with the service, replacing any flow with the same ID.
func (s *FlowMgtService) RegisterFlow(flow *model.Flow) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flows[flow.ID] = flow
}

// GetFlow returns the flow with the given ID.
func (s *FlowMgtService) GetFlow(flowID string) (*model.Flow, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flow, ok := s.flows[flowID]
	return flow, ok
}

// Resolve looks the flow up and returns its active version together with the
// version's single entry node. The lookup happens on every call so a definition
// swapped between two invocations takes effect on the next one.
func (s *FlowMgtService) Resolve(flowID string) (*model.Flow, *model.FlowVersion, *model.FlowNode,
	*serviceerror.ServiceError) {
	flow, ok := s.GetFlow(flowID)
	if !ok || flow.Status != constants.FlowStatusActive {
		return nil, nil, nil, &constants.ErrorFlowNotFound
	}

	version := flow.ActiveVersion()
	if version == nil {
		return nil, nil, nil, &constants.ErrorNoActiveVersion
	}

	entryNodes := version.EntryNodes()
	if len(entryNodes) == 0 {
		return nil, nil, nil, &constants.ErrorNoEntryNode
	}
	if len(entryNodes) > 1 {
		return nil, nil, nil, &constants.ErrorAmbiguousEntryNode
	}

	return flow, version, entryNodes[0], nil
}
