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

package provider

import (
	"context"
	"errors"
	"sync"
	"time"
)

// InMemoryTelephonyProvider is a telephony backend that resolves dial attempts
// from a scripted outcome table. Destinations without a scripted outcome connect.
type InMemoryTelephonyProvider struct {
	mu       sync.RWMutex
	outcomes map[string]DialOutcome
	dialed   []string
}

// NewInMemoryTelephonyProvider creates an in-memory telephony provider.
func NewInMemoryTelephonyProvider() *InMemoryTelephonyProvider {
	return &InMemoryTelephonyProvider{
		outcomes: make(map[string]DialOutcome),
	}
}

// ScriptOutcome fixes the dial outcome for the given destination.
func (p *InMemoryTelephonyProvider) ScriptOutcome(destination string, outcome DialOutcome) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.outcomes[destination] = outcome
}

// Dial resolves the scripted outcome for the destination.
func (p *InMemoryTelephonyProvider) Dial(ctx context.Context, callID, destination string) (DialOutcome, error) {
	if err := ctx.Err(); err != nil {
		return DialOutcomeFailed, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialed = append(p.dialed, destination)
	if outcome, ok := p.outcomes[destination]; ok {
		return outcome, nil
	}
	return DialOutcomeConnected, nil
}

// Dialed returns the destinations dialed so far.
func (p *InMemoryTelephonyProvider) Dialed() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	dialed := make([]string, len(p.dialed))
	copy(dialed, p.dialed)
	return dialed
}

// InMemoryMediaProvider is a media backend that reports fixed durations without
// touching any audio path.
type InMemoryMediaProvider struct {
	mu            sync.RWMutex
	clipDurations map[string]time.Duration
	failingClips  map[string]bool
	played        []string
	spoken        []string
}

// NewInMemoryMediaProvider creates an in-memory media provider.
func NewInMemoryMediaProvider() *InMemoryMediaProvider {
	return &InMemoryMediaProvider{
		clipDurations: make(map[string]time.Duration),
		failingClips:  make(map[string]bool),
	}
}

// RegisterClip fixes the playback duration reported for the given clip.
func (p *InMemoryMediaProvider) RegisterClip(clipRef string, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.clipDurations[clipRef] = duration
}

// FailClip makes playback of the given clip return an error.
func (p *InMemoryMediaProvider) FailClip(clipRef string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failingClips[clipRef] = true
}

// Play records the playback and returns the registered duration.
func (p *InMemoryMediaProvider) Play(ctx context.Context, callID, clipRef string) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failingClips[clipRef] {
		return 0, errors.New("clip not available: " + clipRef)
	}
	p.played = append(p.played, clipRef)
	if duration, ok := p.clipDurations[clipRef]; ok {
		return duration, nil
	}
	return 5 * time.Second, nil
}

// Synthesize records the utterance and estimates the duration from the text length.
func (p *InMemoryMediaProvider) Synthesize(ctx context.Context, callID, text string,
	params SynthesisParams) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.spoken = append(p.spoken, text)

	// Rough estimate of 15 characters of text per second of speech.
	seconds := float64(len(text)) / 15.0
	if params.Speed > 0 {
		seconds /= params.Speed
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// Played returns the clips played so far.
func (p *InMemoryMediaProvider) Played() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	played := make([]string, len(p.played))
	copy(played, p.played)
	return played
}

// Spoken returns the texts synthesized so far.
func (p *InMemoryMediaProvider) Spoken() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	spoken := make([]string, len(p.spoken))
	copy(spoken, p.spoken)
	return spoken
}

// InMemoryQueueProvider is a queue backend serving a registered queue table.
type InMemoryQueueProvider struct {
	mu       sync.RWMutex
	queues   map[string]QueueInfo
	enqueued map[string][]string
}

// NewInMemoryQueueProvider creates an in-memory queue provider.
func NewInMemoryQueueProvider() *InMemoryQueueProvider {
	return &InMemoryQueueProvider{
		queues:   make(map[string]QueueInfo),
		enqueued: make(map[string][]string),
	}
}

// RegisterQueue adds or replaces a queue in the table.
func (p *InMemoryQueueProvider) RegisterQueue(info QueueInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queues[info.ID] = info
}

// Lookup returns the registered queue, or nil when the ID is unknown.
func (p *InMemoryQueueProvider) Lookup(ctx context.Context, queueID string) (*QueueInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if info, ok := p.queues[queueID]; ok {
		return &info, nil
	}
	return nil, nil
}

// Enqueue records the call against the queue.
func (p *InMemoryQueueProvider) Enqueue(ctx context.Context, callID, queueID string, priority int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.queues[queueID]; !ok {
		return errors.New("queue not registered: " + queueID)
	}
	p.enqueued[queueID] = append(p.enqueued[queueID], callID)
	return nil
}

// EnqueuedCalls returns the calls enqueued to the given queue so far.
func (p *InMemoryQueueProvider) EnqueuedCalls(queueID string) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	calls := make([]string, len(p.enqueued[queueID]))
	copy(calls, p.enqueued[queueID])
	return calls
}

// InMemoryInputProvider is an input backend that serves values from a queued
// script per call.
type InMemoryInputProvider struct {
	mu     sync.Mutex
	inputs map[string][]string
}

// NewInMemoryInputProvider creates an in-memory input provider.
func NewInMemoryInputProvider() *InMemoryInputProvider {
	return &InMemoryInputProvider{
		inputs: make(map[string][]string),
	}
}

// QueueInput appends a value to the input script for the given call.
func (p *InMemoryInputProvider) QueueInput(callID, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.inputs[callID] = append(p.inputs[callID], value)
}

// Collect pops the next scripted value for the call. An empty script yields an error,
// mirroring a caller that never entered anything before the timeout.
func (p *InMemoryInputProvider) Collect(ctx context.Context, req CollectRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	queued := p.inputs[req.CallID]
	if len(queued) == 0 {
		return "", errors.New("input collection timed out")
	}
	value := queued[0]
	p.inputs[req.CallID] = queued[1:]
	if req.MaxLength > 0 && len(value) > req.MaxLength {
		value = value[:req.MaxLength]
	}
	return value, nil
}
