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

// Package integration implements the passthrough handler for integration nodes.
package integration

import (
	"context"

	"github.com/goccy/go-json"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/system/log"
)

// PassthroughHandler completes any integration node without invoking an external
// system, surfacing the node type and configuration in its output so downstream
// consumers can see what was skipped.
type PassthroughHandler struct{}

// NewPassthroughHandler creates a new integration passthrough handler.
func NewPassthroughHandler() *PassthroughHandler {
	return &PassthroughHandler{}
}

// Type returns the node type of the handler.
func (h *PassthroughHandler) Type() constants.NodeType {
	return constants.NodeTypePassthrough
}

// Category returns the node category of the handler.
func (h *PassthroughHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryIntegration
}

// Execute records the skipped integration and completes.
func (h *PassthroughHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "PassthroughHandler"),
		log.String(log.LoggerKeyCallID, nodeCtx.Context.CallID))
	logger.Debug("Passing through integration node", log.String(log.LoggerKeyNodeID, nodeCtx.Node.ID),
		log.String(log.LoggerKeyHandlerType, string(nodeCtx.Node.Type)))

	output := map[string]interface{}{
		"passthrough": true,
		"nodeType":    string(nodeCtx.Node.Type),
	}
	if len(nodeCtx.Node.Config) > 0 {
		var config map[string]interface{}
		if err := json.Unmarshal(nodeCtx.Node.Config, &config); err == nil {
			output["config"] = config
		}
	}

	return model.NewCompleteResponse(output), nil
}
