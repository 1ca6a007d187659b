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

// Package data implements the node handlers that gather data from the caller.
package data

import (
	"context"
	"fmt"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/provider"
	"github.com/voxkit/crossbar/internal/system/log"
)

// Input types accepted by the collect input node.
const (
	InputTypeDigits = "digits"
	InputTypeSpeech = "speech"
)

// CollectInputHandler gathers digits or speech from the caller and stores the
// value under the configured variable.
type CollectInputHandler struct {
	input provider.InputProviderInterface
}

// NewCollectInputHandler creates a new collect input handler.
func NewCollectInputHandler(input provider.InputProviderInterface) *CollectInputHandler {
	return &CollectInputHandler{
		input: input,
	}
}

// Type returns the node type of the handler.
func (h *CollectInputHandler) Type() constants.NodeType {
	return constants.NodeTypeCollectInput
}

// Category returns the node category of the handler.
func (h *CollectInputHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryData
}

// Execute resolves the input value from the resume payload or the input provider
// and validates its length.
func (h *CollectInputHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "CollectInputHandler"),
		log.String(log.LoggerKeyCallID, nodeCtx.Context.CallID))

	config, err := model.DecodeNodeConfig[model.CollectInputConfig](nodeCtx.Node)
	if err != nil {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig, err.Error()), nil
	}
	if config.Variable == "" {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig,
			"collect input node has no target variable"), nil
	}
	if config.InputType != InputTypeDigits && config.InputType != InputTypeSpeech {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig,
			"unsupported input type: "+config.InputType), nil
	}

	value, provided := nodeCtx.Context.UserInput[config.Variable]
	if !provided {
		value, err = h.input.Collect(ctx, provider.CollectRequest{
			CallID:     nodeCtx.Context.CallID,
			InputType:  config.InputType,
			Prompt:     config.Prompt,
			MaxLength:  config.MaxLength,
			TimeoutSec: config.TimeoutSec,
		})
		if err != nil {
			logger.Error("Error while collecting caller input", log.Error(err))
			return model.NewFailureResponse(constants.FailureCodeInputFailed, err.Error()), nil
		}
	}

	if len(value) < config.MinLength {
		return model.NewFailureResponse(constants.FailureCodeInputTooShort,
			fmt.Sprintf("collected input has %d characters, minimum is %d", len(value), config.MinLength)), nil
	}
	if config.MaxLength > 0 && len(value) > config.MaxLength {
		value = value[:config.MaxLength]
	}

	return model.NewCompleteResponse(map[string]interface{}{
		config.Variable:   value,
		"collectedLength": len(value),
	}), nil
}
