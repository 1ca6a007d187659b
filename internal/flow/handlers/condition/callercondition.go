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
	"strings"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
)

// Caller attributes the caller condition node can branch on.
const (
	AttributePhoneNumber = "phone_number"
	AttributeCallerName  = "caller_name"
	AttributeCountryCode = "country_code"
)

// CallerConditionHandler branches on an attribute of the calling party.
type CallerConditionHandler struct{}

// NewCallerConditionHandler creates a new caller condition handler.
func NewCallerConditionHandler() *CallerConditionHandler {
	return &CallerConditionHandler{}
}

// Type returns the node type of the handler.
func (h *CallerConditionHandler) Type() constants.NodeType {
	return constants.NodeTypeCallerCondition
}

// Category returns the node category of the handler.
func (h *CallerConditionHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryCondition
}

// Execute resolves the configured caller attribute and applies the operator against it.
func (h *CallerConditionHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	config, err := model.DecodeNodeConfig[model.CallerConditionConfig](nodeCtx.Node)
	if err != nil {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig, err.Error()), nil
	}

	attributeValue := resolveCallerAttribute(&nodeCtx.Context.Caller, config.Attribute)
	conditionMet := applyStringOperator(attributeValue, config)

	return model.NewCompleteResponse(map[string]interface{}{
		"attribute":                     config.Attribute,
		"attributeValue":                attributeValue,
		constants.OutputKeyConditionMet: conditionMet,
	}), nil
}

// resolveCallerAttribute looks the attribute up on the profile. Unknown attribute
// names fall through to the free-form attribute map, and a miss resolves to an
// empty string so the condition evaluates to false.
func resolveCallerAttribute(caller *model.CallerProfile, attribute string) string {
	switch attribute {
	case AttributePhoneNumber:
		return caller.PhoneNumber
	case AttributeCallerName:
		return caller.Name
	case AttributeCountryCode:
		// The leading 3 characters of the number, "+" included.
		number := caller.PhoneNumber
		if len(number) > 3 {
			number = number[:3]
		}
		return number
	default:
		return caller.Attributes[attribute]
	}
}

func applyStringOperator(value string, config *model.CallerConditionConfig) bool {
	switch config.Operator {
	case "equals":
		return value == config.Value
	case "notEquals":
		return value != config.Value
	case "startsWith":
		return strings.HasPrefix(value, config.Value)
	case "contains":
		return strings.Contains(value, config.Value)
	case "inList":
		for _, candidate := range config.Values {
			if value == candidate {
				return true
			}
		}
		return false
	default:
		return false
	}
}
