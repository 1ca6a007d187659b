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

package condition

import (
	"context"

	"github.com/voxkit/crossbar/internal/flow/conditions"
	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
)

// ConditionalHandler branches on the execution variables using the condition evaluator.
type ConditionalHandler struct{}

// NewConditionalHandler creates a new conditional handler.
func NewConditionalHandler() *ConditionalHandler {
	return &ConditionalHandler{}
}

// Type returns the node type of the handler.
func (h *ConditionalHandler) Type() constants.NodeType {
	return constants.NodeTypeConditional
}

// Category returns the node category of the handler.
func (h *ConditionalHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryCondition
}

// Execute evaluates the configured conditions in order and reports the first match.
func (h *ConditionalHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	config, err := model.DecodeNodeConfig[model.ConditionalConfig](nodeCtx.Node)
	if err != nil {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig, err.Error()), nil
	}
	if len(config.Conditions) == 0 {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig,
			"conditional node has no conditions"), nil
	}

	for i, cond := range config.Conditions {
		if conditions.Evaluate(cond, nodeCtx.Context.Variables) {
			matched := cond.Name
			if matched == "" {
				matched = cond.Variable
			}
			return model.NewCompleteResponse(map[string]interface{}{
				constants.OutputKeyConditionMet: true,
				"matchedCondition":              matched,
				"matchedIndex":                  i,
			}), nil
		}
	}

	return model.NewCompleteResponse(map[string]interface{}{
		constants.OutputKeyConditionMet: false,
	}), nil
}
