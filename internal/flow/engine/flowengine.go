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

// Package engine provides the flow engine that interprets call flow graphs.
package engine

import (
	"context"
	"errors"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/events"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/flow/registry"
	"github.com/voxkit/crossbar/internal/system/log"
	sysutils "github.com/voxkit/crossbar/internal/system/utils"
)

// FlowEngineInterface defines the interface for the flow engine.
type FlowEngineInterface interface {
	Execute(ctx context.Context, engineCtx *model.EngineContext,
		observer events.ExecutionObserverInterface) *model.FlowExecutionResult
}

// FlowEngine interprets a flow graph for a single call, one invocation at a time.
type FlowEngine struct {
	registry registry.HandlerRegistryInterface
}

// NewFlowEngine creates a flow engine backed by the given handler registry.
func NewFlowEngine(handlerRegistry registry.HandlerRegistryInterface) *FlowEngine {
	return &FlowEngine{
		registry: handlerRegistry,
	}
}

// Execute walks the graph from the current node until it reaches a terminal node,
// a node fails, a node suspends on caller input, or the context ends. Each node is
// visited at most once per invocation.
func (fe *FlowEngine) Execute(ctx context.Context, engineCtx *model.EngineContext,
	observer events.ExecutionObserverInterface) *model.FlowExecutionResult {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "FlowEngine"),
		log.String(log.LoggerKeyFlowID, engineCtx.Flow.ID),
		log.String(log.LoggerKeyCallID, engineCtx.Context.CallID))

	result := &model.FlowExecutionResult{
		FlowID:      engineCtx.Flow.ID,
		CallID:      engineCtx.Context.CallID,
		NodeResults: make([]model.NodeResult, 0),
	}
	if engineCtx.Context.Variables == nil {
		engineCtx.Context.Variables = make(map[string]interface{})
	}

	visited := make(map[string]bool)
	currentNode := engineCtx.CurrentNode

	for currentNode != nil {
		if err := ctx.Err(); err != nil {
			return fe.failContext(result, engineCtx.Context.Variables, err)
		}

		if visited[currentNode.ID] {
			logger.Warn("Traversal revisited a node", log.String(log.LoggerKeyNodeID, currentNode.ID))
			return failResult(result, engineCtx.Context.Variables, constants.FailureCodeLoopDetected,
				"node "+currentNode.ID+" was visited twice in one invocation", currentNode.ID)
		}
		visited[currentNode.ID] = true

		logger.Debug("Executing node", log.String(log.LoggerKeyNodeID, currentNode.ID),
			log.String(log.LoggerKeyHandlerType, string(currentNode.Type)))

		handler, svcErr := fe.registry.Resolve(currentNode)
		if svcErr != nil {
			return failResult(result, engineCtx.Context.Variables, constants.FailureCodeHandlerNotFound,
				"no handler registered for node type "+string(currentNode.Type), currentNode.ID)
		}

		nodeCtx := &model.NodeContext{
			FlowID:  engineCtx.Flow.ID,
			Node:    currentNode,
			Context: engineCtx.Context,
		}

		nodeResp, err := handler.Execute(ctx, nodeCtx)
		if err != nil {
			logger.Error("Node handler returned an error", log.String(log.LoggerKeyNodeID, currentNode.ID),
				log.Error(err))
			nodeResp = model.NewFailureResponse(constants.FailureCodeHandlerError, err.Error())
		}

		switch nodeResp.Status {
		case constants.NodeStatusFailure:
			nodeResult := model.NodeResult{
				NodeID:  currentNode.ID,
				Type:    currentNode.Type,
				Success: false,
				Output:  nodeResp.Output,
				Error:   nodeResp.FailureReason,
			}
			result.NodeResults = append(result.NodeResults, nodeResult)
			observer.OnNodeExecuted(engineCtx.Flow.ID, engineCtx.Context.CallID, nodeResult)

			code := nodeResp.FailureCode
			if code == "" {
				code = constants.FailureCodeHandlerError
			}
			return failResult(result, engineCtx.Context.Variables, code,
				nodeResp.FailureReason, currentNode.ID)

		case constants.NodeStatusInputRequired:
			result.Status = constants.ExecutionStatusSuspended
			result.Prompt = nodeResp.Prompt
			result.SuspendedNodeID = currentNode.ID
			result.Variables = engineCtx.Context.Variables
			return result

		case constants.NodeStatusComplete:
			nodeResult := model.NodeResult{
				NodeID:  currentNode.ID,
				Type:    currentNode.Type,
				Success: true,
				Output:  nodeResp.Output,
			}
			result.NodeResults = append(result.NodeResults, nodeResult)
			observer.OnNodeExecuted(engineCtx.Flow.ID, engineCtx.Context.CallID, nodeResult)

			if len(nodeResp.Output) > 0 {
				merged, err := sysutils.MergeVariableMaps(engineCtx.Context.Variables, nodeResp.Output)
				if err != nil {
					return failResult(result, engineCtx.Context.Variables, constants.FailureCodeHandlerError,
						"error merging node output: "+err.Error(), currentNode.ID)
				}
				engineCtx.Context.Variables = merged
			}

			nextNode, ok := resolveNextNode(engineCtx.Version, currentNode, nodeResp.Output)
			if !ok {
				return failResult(result, engineCtx.Context.Variables, constants.FailureCodeInvalidEdgeTarget,
					"outgoing edge of node "+currentNode.ID+" points outside the graph", currentNode.ID)
			}
			currentNode = nextNode

		default:
			return failResult(result, engineCtx.Context.Variables, constants.FailureCodeHandlerError,
				"unknown node status "+string(nodeResp.Status), currentNode.ID)
		}
	}

	result.Status = constants.ExecutionStatusCompleted
	result.Success = true
	result.Variables = engineCtx.Context.Variables
	return result
}

// failContext maps a context error to an aborted or timed out result.
func (fe *FlowEngine) failContext(result *model.FlowExecutionResult,
	variables map[string]interface{}, err error) *model.FlowExecutionResult {
	if errors.Is(err, context.DeadlineExceeded) {
		return failResult(result, variables, constants.FailureCodeTraversalTimeout,
			"traversal exceeded the execution deadline", "")
	}
	result.Status = constants.ExecutionStatusAborted
	result.Variables = variables
	result.Failure = &model.ExecutionFailure{
		Code:    constants.FailureCodeAborted,
		Message: "execution context was cancelled",
	}
	return result
}

// failResult marks the result failed, keeping the variables accumulated so far
// so failed traversals still carry their final context snapshot.
func failResult(result *model.FlowExecutionResult, variables map[string]interface{},
	code constants.FailureCode, message, nodeID string) *model.FlowExecutionResult {
	result.Status = constants.ExecutionStatusFailed
	result.Variables = variables
	result.Failure = &model.ExecutionFailure{
		Code:    code,
		Message: message,
		NodeID:  nodeID,
	}
	return result
}
