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

// Package workflow implements the node handlers that control the call lifecycle.
package workflow

import (
	"context"
	"time"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/provider"
	"github.com/voxkit/crossbar/internal/system/log"
)

const defaultDisposition = "completed"

// HangupHandler terminates the call, optionally playing a farewell first.
// A hangup never fails: a broken farewell is logged and the call still ends.
type HangupHandler struct {
	media provider.MediaProviderInterface
}

// NewHangupHandler creates a new hangup handler.
func NewHangupHandler(media provider.MediaProviderInterface) *HangupHandler {
	return &HangupHandler{
		media: media,
	}
}

// Type returns the node type of the handler.
func (h *HangupHandler) Type() constants.NodeType {
	return constants.NodeTypeHangup
}

// Category returns the node category of the handler.
func (h *HangupHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryWorkflow
}

// Execute plays the farewell if one is configured and records the disposition.
func (h *HangupHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "HangupHandler"),
		log.String(log.LoggerKeyCallID, nodeCtx.Context.CallID))

	config := &model.HangupConfig{}
	if len(nodeCtx.Node.Config) > 0 {
		decoded, err := model.DecodeNodeConfig[model.HangupConfig](nodeCtx.Node)
		if err != nil {
			return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig, err.Error()), nil
		}
		config = decoded
	}

	farewellPlayed := false
	if config.FarewellClipRef != "" {
		if _, err := h.media.Play(ctx, nodeCtx.Context.CallID, config.FarewellClipRef); err != nil {
			logger.Warn("Farewell clip playback failed", log.Error(err))
		} else {
			farewellPlayed = true
		}
	} else if config.FarewellText != "" {
		if _, err := h.media.Synthesize(ctx, nodeCtx.Context.CallID, config.FarewellText,
			provider.SynthesisParams{}); err != nil {
			logger.Warn("Farewell synthesis failed", log.Error(err))
		} else {
			farewellPlayed = true
		}
	}

	disposition := config.DispositionCode
	if disposition == "" {
		disposition = defaultDisposition
	}

	return model.NewCompleteResponse(map[string]interface{}{
		"disposition":    disposition,
		"farewellPlayed": farewellPlayed,
		"hangupAt":       time.Now().UTC().Format(time.RFC3339),
	}), nil
}
