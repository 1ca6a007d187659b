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

package model

import (
	"context"

	"github.com/voxkit/crossbar/internal/flow/constants"
)

// NodeResponse is the response a node handler returns to the flow engine.
type NodeResponse struct {
	Status        constants.NodeStatus
	Output        map[string]interface{}
	FailureCode   constants.FailureCode
	FailureReason string
	Prompt        *InputPrompt
}

// NodeHandlerInterface defines the contract for node handlers invoked by the flow engine.
type NodeHandlerInterface interface {
	Type() constants.NodeType
	Category() constants.NodeCategory
	Execute(ctx context.Context, nodeCtx *NodeContext) (*NodeResponse, error)
}

// NewCompleteResponse builds a successful node response with the given output.
func NewCompleteResponse(output map[string]interface{}) *NodeResponse {
	return &NodeResponse{
		Status: constants.NodeStatusComplete,
		Output: output,
	}
}

// NewFailureResponse builds a failed node response with the given code and reason.
func NewFailureResponse(code constants.FailureCode, reason string) *NodeResponse {
	return &NodeResponse{
		Status:        constants.NodeStatusFailure,
		FailureCode:   code,
		FailureReason: reason,
	}
}

// NewInputRequiredResponse builds a node response that suspends the execution on the given prompt.
func NewInputRequiredResponse(prompt *InputPrompt) *NodeResponse {
	return &NodeResponse{
		Status: constants.NodeStatusInputRequired,
		Prompt: prompt,
	}
}
