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
	"github.com/voxkit/crossbar/internal/flow/constants"
)

// NodeResult records the outcome of a single node execution in the traversal trace.
type NodeResult struct {
	NodeID  string                 `json:"nodeId"`
	Type    constants.NodeType     `json:"type"`
	Success bool                   `json:"success"`
	Output  map[string]interface{} `json:"output,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

// ExecutionFailure describes why a flow execution stopped without completing.
type ExecutionFailure struct {
	Code    constants.FailureCode `json:"code"`
	Message string                `json:"message"`
	NodeID  string                `json:"nodeId,omitempty"`
}

// MenuOption describes a single selectable entry of an IVR menu prompt.
type MenuOption struct {
	Digit string `json:"digit"`
	Label string `json:"label"`
}

// InputPrompt describes the input a suspended execution is waiting for.
type InputPrompt struct {
	Type      string       `json:"type"`
	Variable  string       `json:"variable"`
	Message   string       `json:"message,omitempty"`
	Options   []MenuOption `json:"options,omitempty"`
	MinLength int          `json:"minLength,omitempty"`
	MaxLength int          `json:"maxLength,omitempty"`
}

// FlowExecutionResult is the outcome of one flow execution invocation.
type FlowExecutionResult struct {
	FlowID          string                    `json:"flowId"`
	CallID          string                    `json:"callId"`
	Status          constants.ExecutionStatus `json:"status"`
	Success         bool                      `json:"success"`
	Failure         *ExecutionFailure         `json:"failure,omitempty"`
	Variables       map[string]interface{}    `json:"variables,omitempty"`
	NodeResults     []NodeResult              `json:"nodeResults"`
	Prompt          *InputPrompt              `json:"prompt,omitempty"`
	SuspendedNodeID string                    `json:"suspendedNodeId,omitempty"`
}
