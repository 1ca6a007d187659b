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

// Package ivr implements the node handlers that present menus to the caller.
package ivr

import (
	"context"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/system/log"
)

// PromptTypeMenu is the prompt type reported for suspended menu nodes.
const PromptTypeMenu = "menu"

// IVRMenuHandler offers a digit menu to the caller. The first execution suspends
// the flow on a prompt describing the options; the node completes on the resume
// request that carries the caller's selection.
type IVRMenuHandler struct{}

// NewIVRMenuHandler creates a new IVR menu handler.
func NewIVRMenuHandler() *IVRMenuHandler {
	return &IVRMenuHandler{}
}

// Type returns the node type of the handler.
func (h *IVRMenuHandler) Type() constants.NodeType {
	return constants.NodeTypeIVRMenu
}

// Category returns the node category of the handler.
func (h *IVRMenuHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryIVR
}

// Execute suspends on the menu prompt or consumes the caller's selection.
func (h *IVRMenuHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "IVRMenuHandler"),
		log.String(log.LoggerKeyCallID, nodeCtx.Context.CallID))

	config, err := model.DecodeNodeConfig[model.IVRMenuConfig](nodeCtx.Node)
	if err != nil {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig, err.Error()), nil
	}
	if config.Variable == "" || len(config.Options) == 0 {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig,
			"ivr menu node needs a variable and at least one option"), nil
	}

	selection, provided := nodeCtx.Context.UserInput[config.Variable]
	if !provided {
		logger.Debug("Suspending execution on menu prompt",
			log.String(log.LoggerKeyNodeID, nodeCtx.Node.ID))
		return model.NewInputRequiredResponse(&model.InputPrompt{
			Type:     PromptTypeMenu,
			Variable: config.Variable,
			Message:  config.Prompt,
			Options:  config.Options,
		}), nil
	}

	for _, option := range config.Options {
		if option.Digit == selection {
			return model.NewCompleteResponse(map[string]interface{}{
				config.Variable:  selection,
				"selection":      selection,
				"selectionLabel": option.Label,
			}), nil
		}
	}

	return model.NewFailureResponse(constants.FailureCodeInvalidMenuSelection,
		"selection "+selection+" is not offered by the menu"), nil
}
