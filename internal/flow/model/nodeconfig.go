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
	"errors"

	"github.com/goccy/go-json"

	"github.com/voxkit/crossbar/internal/flow/conditions"
)

// DecodeNodeConfig decodes the raw node configuration into the typed config struct
// expected by a handler.
func DecodeNodeConfig[T any](node *FlowNode) (*T, error) {
	config := new(T)
	if len(node.Config) == 0 {
		return nil, errors.New("node configuration is empty")
	}
	if err := json.Unmarshal(node.Config, config); err != nil {
		return nil, err
	}
	return config, nil
}

// ExternalTransferConfig configures an external_transfer node.
type ExternalTransferConfig struct {
	Destination    string `json:"destination"`
	CallerIDMode   string `json:"callerIdMode,omitempty"`
	RingTimeoutSec int    `json:"ringTimeoutSeconds,omitempty"`
}

// AudioPlaybackConfig configures an audio_playback node.
type AudioPlaybackConfig struct {
	ClipRef string `json:"clipRef"`
	Loop    int    `json:"loop,omitempty"`
}

// TextToSpeechConfig configures a text_to_speech node.
type TextToSpeechConfig struct {
	Text     string  `json:"text"`
	Voice    string  `json:"voice,omitempty"`
	Language string  `json:"language,omitempty"`
	Speed    float64 `json:"speed,omitempty"`
}

// BusinessHoursConfig configures a business_hours node.
type BusinessHoursConfig struct {
	BusinessDays []string `json:"businessDays"`
	OpenTime     string   `json:"openTime"`
	CloseTime    string   `json:"closeTime"`
	Timezone     string   `json:"timezone,omitempty"`
	Holidays     []string `json:"holidays,omitempty"`
}

// CallerConditionConfig configures a caller_condition node.
type CallerConditionConfig struct {
	Attribute string   `json:"attribute"`
	Operator  string   `json:"operator"`
	Value     string   `json:"value,omitempty"`
	Values    []string `json:"values,omitempty"`
}

// ConditionalConfig configures a conditional node.
type ConditionalConfig struct {
	Conditions []conditions.Condition `json:"conditions"`
}

// IVRMenuConfig configures an ivr_menu node.
type IVRMenuConfig struct {
	Prompt   string       `json:"prompt"`
	Variable string       `json:"variable"`
	Options  []MenuOption `json:"options"`
}

// QueueTransferConfig configures a queue_transfer node.
type QueueTransferConfig struct {
	QueueID  string `json:"queueId"`
	Priority int    `json:"priority,omitempty"`
}

// CollectInputConfig configures a collect_input node.
type CollectInputConfig struct {
	InputType  string `json:"inputType"`
	Variable   string `json:"variable"`
	Prompt     string `json:"prompt,omitempty"`
	MinLength  int    `json:"minLength,omitempty"`
	MaxLength  int    `json:"maxLength,omitempty"`
	TimeoutSec int    `json:"timeoutSeconds,omitempty"`
}

// HangupConfig configures a hangup node.
type HangupConfig struct {
	FarewellText    string `json:"farewellText,omitempty"`
	FarewellClipRef string `json:"farewellClipRef,omitempty"`
	DispositionCode string `json:"dispositionCode,omitempty"`
}
