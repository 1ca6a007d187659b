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

// Package events defines the execution lifecycle observer and its built-in implementations.
package events

import (
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/system/log"
)

// ExecutionObserverInterface receives the lifecycle events of flow executions.
// The engine emits exactly one terminal event per invocation: completed, failed,
// suspended, or aborted.
type ExecutionObserverInterface interface {
	OnExecutionStarted(flowID, callID string)
	OnNodeExecuted(flowID, callID string, result model.NodeResult)
	OnExecutionCompleted(flowID, callID string, result *model.FlowExecutionResult)
	OnExecutionSuspended(flowID, callID string, result *model.FlowExecutionResult)
	OnExecutionFailed(flowID, callID string, failure *model.ExecutionFailure)
	OnExecutionAborted(flowID, callID string, failure *model.ExecutionFailure)
}

// NoopObserver ignores all lifecycle events.
type NoopObserver struct{}

// NewNoopObserver creates an observer that ignores all events.
func NewNoopObserver() *NoopObserver {
	return &NoopObserver{}
}

// OnExecutionStarted implements ExecutionObserverInterface.
func (o *NoopObserver) OnExecutionStarted(flowID, callID string) {}

// OnNodeExecuted implements ExecutionObserverInterface.
func (o *NoopObserver) OnNodeExecuted(flowID, callID string, result model.NodeResult) {}

// OnExecutionCompleted implements ExecutionObserverInterface.
func (o *NoopObserver) OnExecutionCompleted(flowID, callID string, result *model.FlowExecutionResult) {}

// OnExecutionSuspended implements ExecutionObserverInterface.
func (o *NoopObserver) OnExecutionSuspended(flowID, callID string, result *model.FlowExecutionResult) {}

// OnExecutionFailed implements ExecutionObserverInterface.
func (o *NoopObserver) OnExecutionFailed(flowID, callID string, failure *model.ExecutionFailure) {}

// OnExecutionAborted implements ExecutionObserverInterface.
func (o *NoopObserver) OnExecutionAborted(flowID, callID string, failure *model.ExecutionFailure) {}

// CompositeObserver fans every event out to a list of observers in order.
type CompositeObserver struct {
	observers []ExecutionObserverInterface
}

// NewCompositeObserver creates an observer that delegates to the given observers.
func NewCompositeObserver(observers ...ExecutionObserverInterface) *CompositeObserver {
	return &CompositeObserver{
		observers: observers,
	}
}

// OnExecutionStarted implements ExecutionObserverInterface.
func (o *CompositeObserver) OnExecutionStarted(flowID, callID string) {
	for _, observer := range o.observers {
		observer.OnExecutionStarted(flowID, callID)
	}
}

// OnNodeExecuted implements ExecutionObserverInterface.
func (o *CompositeObserver) OnNodeExecuted(flowID, callID string, result model.NodeResult) {
	for _, observer := range o.observers {
		observer.OnNodeExecuted(flowID, callID, result)
	}
}

// OnExecutionCompleted implements ExecutionObserverInterface.
func (o *CompositeObserver) OnExecutionCompleted(flowID, callID string, result *model.FlowExecutionResult) {
	for _, observer := range o.observers {
		observer.OnExecutionCompleted(flowID, callID, result)
	}
}

// OnExecutionSuspended implements ExecutionObserverInterface.
func (o *CompositeObserver) OnExecutionSuspended(flowID, callID string, result *model.FlowExecutionResult) {
	for _, observer := range o.observers {
		observer.OnExecutionSuspended(flowID, callID, result)
	}
}

// OnExecutionFailed implements ExecutionObserverInterface.
func (o *CompositeObserver) OnExecutionFailed(flowID, callID string, failure *model.ExecutionFailure) {
	for _, observer := range o.observers {
		observer.OnExecutionFailed(flowID, callID, failure)
	}
}

// OnExecutionAborted implements ExecutionObserverInterface.
func (o *CompositeObserver) OnExecutionAborted(flowID, callID string, failure *model.ExecutionFailure) {
	for _, observer := range o.observers {
		observer.OnExecutionAborted(flowID, callID, failure)
	}
}

// LoggingObserver writes every lifecycle event to the structured log.
type LoggingObserver struct {
	logger *log.Logger
}

// NewLoggingObserver creates an observer that logs all events.
func NewLoggingObserver() *LoggingObserver {
	return &LoggingObserver{
		logger: log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ExecutionObserver")),
	}
}

// OnExecutionStarted implements ExecutionObserverInterface.
func (o *LoggingObserver) OnExecutionStarted(flowID, callID string) {
	o.logger.Info("Flow execution started", log.String(log.LoggerKeyFlowID, flowID),
		log.String(log.LoggerKeyCallID, callID))
}

// OnNodeExecuted implements ExecutionObserverInterface.
func (o *LoggingObserver) OnNodeExecuted(flowID, callID string, result model.NodeResult) {
	o.logger.Debug("Node executed", log.String(log.LoggerKeyFlowID, flowID),
		log.String(log.LoggerKeyCallID, callID), log.String(log.LoggerKeyNodeID, result.NodeID),
		log.Bool("success", result.Success))
}

// OnExecutionCompleted implements ExecutionObserverInterface.
func (o *LoggingObserver) OnExecutionCompleted(flowID, callID string, result *model.FlowExecutionResult) {
	o.logger.Info("Flow execution completed", log.String(log.LoggerKeyFlowID, flowID),
		log.String(log.LoggerKeyCallID, callID), log.Int("executedNodes", len(result.NodeResults)))
}

// OnExecutionSuspended implements ExecutionObserverInterface.
func (o *LoggingObserver) OnExecutionSuspended(flowID, callID string, result *model.FlowExecutionResult) {
	o.logger.Info("Flow execution suspended", log.String(log.LoggerKeyFlowID, flowID),
		log.String(log.LoggerKeyCallID, callID), log.String(log.LoggerKeyNodeID, result.SuspendedNodeID))
}

// OnExecutionFailed implements ExecutionObserverInterface.
func (o *LoggingObserver) OnExecutionFailed(flowID, callID string, failure *model.ExecutionFailure) {
	o.logger.Warn("Flow execution failed", log.String(log.LoggerKeyFlowID, flowID),
		log.String(log.LoggerKeyCallID, callID), log.String("failureCode", string(failure.Code)),
		log.String(log.LoggerKeyNodeID, failure.NodeID))
}

// OnExecutionAborted implements ExecutionObserverInterface.
func (o *LoggingObserver) OnExecutionAborted(flowID, callID string, failure *model.ExecutionFailure) {
	o.logger.Warn("Flow execution aborted", log.String(log.LoggerKeyFlowID, flowID),
		log.String(log.LoggerKeyCallID, callID), log.String("failureCode", string(failure.Code)))
}
