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

package media

import (
	"context"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/provider"
	"github.com/voxkit/crossbar/internal/system/log"
)

const (
	defaultVoice    = "neutral"
	defaultLanguage = "en-US"
)

// TextToSpeechHandler synthesizes spoken audio from configured text.
type TextToSpeechHandler struct {
	media provider.MediaProviderInterface
}

// NewTextToSpeechHandler creates a new text to speech handler.
func NewTextToSpeechHandler(media provider.MediaProviderInterface) *TextToSpeechHandler {
	return &TextToSpeechHandler{
		media: media,
	}
}

// Type returns the node type of the handler.
func (h *TextToSpeechHandler) Type() constants.NodeType {
	return constants.NodeTypeTextToSpeech
}

// Category returns the node category of the handler.
func (h *TextToSpeechHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryMedia
}

// Execute synthesizes the configured text through the media provider.
func (h *TextToSpeechHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "TextToSpeechHandler"),
		log.String(log.LoggerKeyCallID, nodeCtx.Context.CallID))

	config, err := model.DecodeNodeConfig[model.TextToSpeechConfig](nodeCtx.Node)
	if err != nil {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig, err.Error()), nil
	}
	if config.Text == "" {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig,
			"text to speech node has no text"), nil
	}

	params := provider.SynthesisParams{
		Voice:    config.Voice,
		Language: config.Language,
		Speed:    config.Speed,
	}
	if params.Voice == "" {
		params.Voice = defaultVoice
	}
	if params.Language == "" {
		params.Language = defaultLanguage
	}

	duration, err := h.media.Synthesize(ctx, nodeCtx.Context.CallID, config.Text, params)
	if err != nil {
		logger.Error("Error while synthesizing speech", log.Error(err))
		return model.NewFailureResponse(constants.FailureCodeMediaFailed, err.Error()), nil
	}

	return model.NewCompleteResponse(map[string]interface{}{
		"spokenText":               config.Text,
		"voice":                    params.Voice,
		"language":                 params.Language,
		"estimatedDurationSeconds": duration.Seconds(),
	}), nil
}
