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

// Package flow provides the flow execution service, the entry point for running
// call treatment flows.
package flow

import (
	"context"
	"sync"
	"time"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/engine"
	"github.com/voxkit/crossbar/internal/flow/events"
	"github.com/voxkit/crossbar/internal/flow/flowmgt"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/flow/registry"
	"github.com/voxkit/crossbar/internal/flow/store"
	"github.com/voxkit/crossbar/internal/provider"
	"github.com/voxkit/crossbar/internal/system/config"
	"github.com/voxkit/crossbar/internal/system/error/serviceerror"
	"github.com/voxkit/crossbar/internal/system/log"
	sysutils "github.com/voxkit/crossbar/internal/system/utils"
)

var (
	instance *FlowExecService
	once     sync.Once
)

// FlowExecServiceInterface defines the entry point for flow execution.
type FlowExecServiceInterface interface {
	Init(providers provider.Providers, observers ...events.ExecutionObserverInterface) error
	Execute(ctx context.Context, flowID string, execCtx *model.ExecutionContext) (
		*model.FlowExecutionResult, *serviceerror.ServiceError)
}

// FlowExecService coordinates flow resolution, concurrency exclusivity, suspension
// persistence, and lifecycle events around the flow engine.
type FlowExecService struct {
	flowMgtService   flowmgt.FlowMgtServiceInterface
	flowEngine       engine.FlowEngineInterface
	callContextStore store.CallContextStoreInterface
	execRegistry     *ExecutionRegistry
	observer         events.ExecutionObserverInterface
	executionTimeout time.Duration
	initialized      bool
	initMu           sync.Mutex
}

// GetFlowExecService returns a singleton instance of FlowExecServiceInterface.
func GetFlowExecService() FlowExecServiceInterface {
	once.Do(func() {
		instance = &FlowExecService{
			flowMgtService: flowmgt.GetFlowMgtService(),
		}
	})
	return instance
}

// Init wires the service with the given providers and observers. The flow
// definitions are loaded from the configured graph directory, and suspended call
// contexts go to the runtime database when one is configured.
func (s *FlowExecService) Init(providers provider.Providers,
	observers ...events.ExecutionObserverInterface) error {
	s.initMu.Lock()
	defer s.initMu.Unlock()

	if err := s.flowMgtService.Init(); err != nil {
		return err
	}

	cfg := config.GetCrossbarRuntime().Config

	handlerRegistry := registry.NewHandlerRegistry(providers)
	s.flowEngine = engine.NewFlowEngine(handlerRegistry)

	if cfg.Database.Runtime.Type != "" {
		s.callContextStore = store.NewCallContextStore()
	} else {
		s.callContextStore = store.NewInMemoryCallContextStore()
	}

	s.execRegistry = NewExecutionRegistry(time.Duration(cfg.Flow.ExecutionLockTTLSeconds) * time.Second)
	s.executionTimeout = time.Duration(cfg.Flow.ExecutionTimeoutSeconds) * time.Second

	allObservers := append([]events.ExecutionObserverInterface{events.NewLoggingObserver()}, observers...)
	s.observer = events.NewCompositeObserver(allObservers...)

	s.initialized = true
	return nil
}

// Execute runs one invocation of the flow for the given call. A call with a
// suspended context resumes at the node that asked for input; any other call
// starts at the entry node of the flow's active version.
func (s *FlowExecService) Execute(ctx context.Context, flowID string,
	execCtx *model.ExecutionContext) (*model.FlowExecutionResult, *serviceerror.ServiceError) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowExecService"))

	if !s.initialized {
		return nil, &constants.ErrorFlowEngineNotInitialized
	}
	if flowID == "" {
		return nil, &constants.ErrorInvalidFlowID
	}
	if execCtx == nil || execCtx.CallID == "" {
		return nil, &constants.ErrorInvalidCallID
	}

	if !s.execRegistry.Acquire(flowID, execCtx.CallID) {
		logger.Warn("Rejecting concurrent execution", log.String(log.LoggerKeyFlowID, flowID),
			log.String(log.LoggerKeyCallID, execCtx.CallID))
		return nil, &constants.ErrorConcurrentExecution
	}
	defer s.execRegistry.Release(flowID, execCtx.CallID)

	flow, version, entryNode, svcErr := s.flowMgtService.Resolve(flowID)
	if svcErr != nil {
		logger.Debug("Flow resolution failed", log.String(log.LoggerKeyFlowID, flowID),
			log.String("errorCode", svcErr.Code))
		s.emitFailureEvent(flowID, execCtx.CallID, svcErr, "")
		return nil, svcErr
	}

	currentNode, svcErr := s.prepareExecution(flowID, version, entryNode, execCtx, logger)
	if svcErr != nil {
		s.emitFailureEvent(flowID, execCtx.CallID, svcErr, "")
		return nil, svcErr
	}

	if execCtx.CurrentTime.IsZero() {
		execCtx.CurrentTime = time.Now()
	}
	if execCtx.Variables == nil {
		execCtx.Variables = make(map[string]interface{})
	}

	if s.executionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.executionTimeout)
		defer cancel()
	}

	engineCtx := &model.EngineContext{
		Flow:        flow,
		Version:     version,
		Context:     execCtx,
		CurrentNode: currentNode,
	}

	s.observer.OnExecutionStarted(flowID, execCtx.CallID)
	result := s.flowEngine.Execute(ctx, engineCtx, s.observer)

	return s.finishExecution(version, execCtx, result, logger)
}

// prepareExecution determines the node the invocation starts at, restoring the
// suspended call context when one exists for the call.
func (s *FlowExecService) prepareExecution(flowID string, version *model.FlowVersion,
	entryNode *model.FlowNode, execCtx *model.ExecutionContext,
	logger *log.Logger) (*model.FlowNode, *serviceerror.ServiceError) {
	stored, err := s.callContextStore.Get(execCtx.CallID)
	if err != nil {
		logger.Error("Failed to retrieve call context", log.Error(err))
		return nil, &constants.ErrorWhileRetrievingCallContext
	}
	if stored == nil || stored.FlowID != flowID {
		return entryNode, nil
	}

	resumeNode := version.NodeByID(stored.CurrentNodeID)
	if resumeNode == nil || stored.VersionID != version.ID {
		// The definition changed underneath the suspended call. Drop the stale
		// context and fail the resume.
		logger.Warn("Suspended node is gone from the active version",
			log.String(log.LoggerKeyCallID, execCtx.CallID),
			log.String(log.LoggerKeyNodeID, stored.CurrentNodeID))
		if err := s.callContextStore.Delete(execCtx.CallID); err != nil {
			logger.Error("Failed to delete stale call context", log.Error(err))
		}
		return nil, &constants.ErrorResumeNodeNotFound
	}

	logger.Debug("Resuming suspended execution", log.String(log.LoggerKeyCallID, execCtx.CallID),
		log.String(log.LoggerKeyNodeID, resumeNode.ID))

	// Attributes supplied on the resume invocation override the stored ones.
	resumeAttributes := execCtx.Caller.Attributes
	execCtx.Caller = stored.Caller
	execCtx.Caller.Attributes = sysutils.MergeStringMaps(execCtx.Caller.Attributes, resumeAttributes)
	execCtx.Variables = stored.Variables
	if execCtx.Timezone == "" {
		execCtx.Timezone = stored.Timezone
	}
	return resumeNode, nil
}

// finishExecution persists or clears the call context and emits the terminal
// lifecycle event for the invocation.
func (s *FlowExecService) finishExecution(version *model.FlowVersion,
	execCtx *model.ExecutionContext, result *model.FlowExecutionResult,
	logger *log.Logger) (*model.FlowExecutionResult, *serviceerror.ServiceError) {
	switch result.Status {
	case constants.ExecutionStatusSuspended:
		callCtx := &store.CallContext{
			CallID:        execCtx.CallID,
			FlowID:        result.FlowID,
			VersionID:     version.ID,
			CurrentNodeID: result.SuspendedNodeID,
			Caller:        execCtx.Caller,
			Variables:     execCtx.Variables,
			Timezone:      execCtx.Timezone,
		}
		if err := s.callContextStore.Store(callCtx); err != nil {
			logger.Error("Failed to store call context", log.Error(err))
			// The invocation already emitted a started event, so it still owes
			// observers a terminal one.
			s.emitFailureEvent(result.FlowID, result.CallID,
				&constants.ErrorWhileStoringCallContext, result.SuspendedNodeID)
			return nil, &constants.ErrorWhileStoringCallContext
		}
		s.observer.OnExecutionSuspended(result.FlowID, result.CallID, result)

	case constants.ExecutionStatusCompleted:
		s.clearContext(execCtx.CallID, logger)
		s.observer.OnExecutionCompleted(result.FlowID, result.CallID, result)

	case constants.ExecutionStatusFailed:
		s.clearContext(execCtx.CallID, logger)
		s.observer.OnExecutionFailed(result.FlowID, result.CallID, result.Failure)

	case constants.ExecutionStatusAborted:
		s.clearContext(execCtx.CallID, logger)
		s.observer.OnExecutionAborted(result.FlowID, result.CallID, result.Failure)
	}

	return result, nil
}

// emitFailureEvent reports an execution that failed outside the engine loop,
// so observers still see a terminal event for the invocation.
func (s *FlowExecService) emitFailureEvent(flowID, callID string,
	svcErr *serviceerror.ServiceError, nodeID string) {
	s.observer.OnExecutionFailed(flowID, callID, &model.ExecutionFailure{
		Code:    constants.FailureCode(svcErr.Code),
		Message: svcErr.ErrorDescription,
		NodeID:  nodeID,
	})
}

func (s *FlowExecService) clearContext(callID string, logger *log.Logger) {
	if err := s.callContextStore.Delete(callID); err != nil {
		logger.Error("Failed to delete call context", log.String(log.LoggerKeyCallID, callID),
			log.Error(err))
	}
}
