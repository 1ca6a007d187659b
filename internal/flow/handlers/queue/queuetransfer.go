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

// Package queue implements the node handlers that hand calls to agent queues.
package queue

import (
	"context"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/provider"
	"github.com/voxkit/crossbar/internal/system/log"
)

// QueueTransferHandler places the call into an agent queue.
type QueueTransferHandler struct {
	queues provider.QueueProviderInterface
}

// NewQueueTransferHandler creates a new queue transfer handler.
func NewQueueTransferHandler(queues provider.QueueProviderInterface) *QueueTransferHandler {
	return &QueueTransferHandler{
		queues: queues,
	}
}

// Type returns the node type of the handler.
func (h *QueueTransferHandler) Type() constants.NodeType {
	return constants.NodeTypeQueueTransfer
}

// Category returns the node category of the handler.
func (h *QueueTransferHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryQueue
}

// Execute looks the queue up, verifies it can take the call, and enqueues it.
func (h *QueueTransferHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "QueueTransferHandler"),
		log.String(log.LoggerKeyCallID, nodeCtx.Context.CallID))

	config, err := model.DecodeNodeConfig[model.QueueTransferConfig](nodeCtx.Node)
	if err != nil {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig, err.Error()), nil
	}
	if config.QueueID == "" {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig,
			"queue transfer node has no queue ID"), nil
	}

	info, err := h.queues.Lookup(ctx, config.QueueID)
	if err != nil {
		logger.Error("Error while looking up queue", log.String("queueId", config.QueueID), log.Error(err))
		return model.NewFailureResponse(constants.FailureCodeQueueLookupFailed, err.Error()), nil
	}
	if info == nil {
		return model.NewFailureResponse(constants.FailureCodeQueueNotFound,
			"queue "+config.QueueID+" does not exist"), nil
	}
	if !info.Active {
		return model.NewFailureResponse(constants.FailureCodeQueueInactive,
			"queue "+config.QueueID+" is not accepting calls"), nil
	}
	if info.Capacity <= 0 {
		return &model.NodeResponse{
			Status: constants.NodeStatusFailure,
			Output: map[string]interface{}{
				"queueId":               config.QueueID,
				"estimatedWaitPosition": info.WaitingCalls + 1,
			},
			FailureCode:   constants.FailureCodeNoAgentsAvailable,
			FailureReason: "queue " + config.QueueID + " has no agents available",
		}, nil
	}

	if err := h.queues.Enqueue(ctx, nodeCtx.Context.CallID, config.QueueID, config.Priority); err != nil {
		logger.Error("Error while enqueueing call", log.String("queueId", config.QueueID), log.Error(err))
		return model.NewFailureResponse(constants.FailureCodeQueueLookupFailed, err.Error()), nil
	}

	return model.NewCompleteResponse(map[string]interface{}{
		"queueId":              config.QueueID,
		"queueName":            info.Name,
		"priority":             config.Priority,
		"estimatedWaitSeconds": info.EstimatedWaitSec,
	}), nil
}
