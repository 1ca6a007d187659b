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

// Package media implements the node handlers that play or synthesize audio on a call.
package media

import (
	"context"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/provider"
	"github.com/voxkit/crossbar/internal/system/log"
)

// AudioPlaybackHandler plays a pre-recorded clip to the call.
type AudioPlaybackHandler struct {
	media provider.MediaProviderInterface
}

// NewAudioPlaybackHandler creates a new audio playback handler.
func NewAudioPlaybackHandler(media provider.MediaProviderInterface) *AudioPlaybackHandler {
	return &AudioPlaybackHandler{
		media: media,
	}
}

// Type returns the node type of the handler.
func (h *AudioPlaybackHandler) Type() constants.NodeType {
	return constants.NodeTypeAudioPlayback
}

// Category returns the node category of the handler.
func (h *AudioPlaybackHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryMedia
}

// Execute plays the configured clip through the media provider.
func (h *AudioPlaybackHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "AudioPlaybackHandler"),
		log.String(log.LoggerKeyCallID, nodeCtx.Context.CallID))

	config, err := model.DecodeNodeConfig[model.AudioPlaybackConfig](nodeCtx.Node)
	if err != nil {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig, err.Error()), nil
	}
	if config.ClipRef == "" {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig,
			"audio playback node has no clip reference"), nil
	}

	plays := 1
	if config.Loop > 1 {
		plays = config.Loop
	}

	totalSeconds := 0.0
	for i := 0; i < plays; i++ {
		duration, err := h.media.Play(ctx, nodeCtx.Context.CallID, config.ClipRef)
		if err != nil {
			logger.Error("Error while playing clip", log.String("clipRef", config.ClipRef), log.Error(err))
			return model.NewFailureResponse(constants.FailureCodeMediaFailed, err.Error()), nil
		}
		totalSeconds += duration.Seconds()
	}

	return model.NewCompleteResponse(map[string]interface{}{
		"playedClip":      config.ClipRef,
		"playCount":       plays,
		"durationSeconds": totalSeconds,
	}), nil
}
