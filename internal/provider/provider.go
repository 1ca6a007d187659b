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

// Package provider defines the abstract interfaces for the telephony, media,
// queue, and input backends the flow engine delegates to.
package provider

import (
	"context"
	"time"
)

// DialOutcome is the result of dialing an external destination.
type DialOutcome string

const (
	// DialOutcomeConnected indicates that the far end answered.
	DialOutcomeConnected DialOutcome = "connected"
	// DialOutcomeBusy indicates that the far end was busy.
	DialOutcomeBusy DialOutcome = "busy"
	// DialOutcomeNoAnswer indicates that the far end did not answer in time.
	DialOutcomeNoAnswer DialOutcome = "no_answer"
	// DialOutcomeFailed indicates that the dial attempt could not be placed.
	DialOutcomeFailed DialOutcome = "failed"
)

// TelephonyProviderInterface abstracts the telephony backend used for call transfers.
type TelephonyProviderInterface interface {
	// Dial attempts to bridge the call to the given destination number.
	Dial(ctx context.Context, callID, destination string) (DialOutcome, error)
}

// SynthesisParams carries the voice parameters for text to speech synthesis.
type SynthesisParams struct {
	Voice    string
	Language string
	Speed    float64
}

// MediaProviderInterface abstracts the media backend used for audio playback and synthesis.
type MediaProviderInterface interface {
	// Play plays a pre-recorded clip to the call and returns the playback duration.
	Play(ctx context.Context, callID, clipRef string) (time.Duration, error)
	// Synthesize speaks the given text to the call and returns the estimated duration.
	Synthesize(ctx context.Context, callID, text string, params SynthesisParams) (time.Duration, error)
}

// QueueInfo describes an agent queue known to the queue backend.
type QueueInfo struct {
	ID               string
	Name             string
	Active           bool
	Capacity         int
	WaitingCalls     int
	EstimatedWaitSec int
}

// QueueProviderInterface abstracts the agent queue backend.
type QueueProviderInterface interface {
	// Lookup returns the queue with the given ID, or nil if no such queue exists.
	Lookup(ctx context.Context, queueID string) (*QueueInfo, error)
	// Enqueue places the call into the queue with the given priority.
	Enqueue(ctx context.Context, callID, queueID string, priority int) error
}

// CollectRequest describes the input a collect operation should gather from the caller.
type CollectRequest struct {
	CallID     string
	InputType  string
	Prompt     string
	MaxLength  int
	TimeoutSec int
}

// InputProviderInterface abstracts the caller input backend.
type InputProviderInterface interface {
	// Collect gathers digits or speech from the caller.
	Collect(ctx context.Context, req CollectRequest) (string, error)
}

// Providers bundles the backend implementations the flow engine is wired with.
type Providers struct {
	Telephony TelephonyProviderInterface
	Media     MediaProviderInterface
	Queue     QueueProviderInterface
	Input     InputProviderInterface
}
