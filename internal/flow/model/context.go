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
	"time"
)

// CallerProfile carries the attributes of the calling party known at call setup time.
type CallerProfile struct {
	PhoneNumber string            `json:"phoneNumber"`
	Name        string            `json:"name,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// ExecutionContext carries the mutable state of a single call through the flow traversal.
type ExecutionContext struct {
	CallID      string                 `json:"callId"`
	Caller      CallerProfile          `json:"caller"`
	Variables   map[string]interface{} `json:"variables"`
	UserInput   map[string]string      `json:"userInput,omitempty"`
	CurrentTime time.Time              `json:"currentTime"`
	Timezone    string                 `json:"timezone,omitempty"`
}

// EngineContext carries everything the flow engine needs for one traversal invocation.
type EngineContext struct {
	Flow        *Flow
	Version     *FlowVersion
	Context     *ExecutionContext
	CurrentNode *FlowNode
}

// NodeContext carries the data passed to a node handler for a single node execution.
type NodeContext struct {
	FlowID  string
	Node    *FlowNode
	Context *ExecutionContext
}
