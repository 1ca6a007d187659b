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

package flow

import (
	"sync"
	"time"
)

const defaultExecutionLockTTL = 5 * time.Minute

type executionKey struct {
	flowID string
	callID string
}

// ExecutionRegistry tracks in-flight executions per flow and call pair. Slots
// expire after a TTL so a crashed execution cannot block the pair forever.
type ExecutionRegistry struct {
	mu       sync.Mutex
	inflight map[executionKey]time.Time
	ttl      time.Duration
}

// NewExecutionRegistry creates an execution registry with the given slot TTL.
// A non-positive TTL falls back to the default.
func NewExecutionRegistry(ttl time.Duration) *ExecutionRegistry {
	if ttl <= 0 {
		ttl = defaultExecutionLockTTL
	}
	return &ExecutionRegistry{
		inflight: make(map[executionKey]time.Time),
		ttl:      ttl,
	}
}

// Acquire claims the slot for the flow and call pair. It returns false when a
// live execution already holds the slot.
func (r *ExecutionRegistry) Acquire(flowID, callID string) bool {
	key := executionKey{flowID: flowID, callID: callID}
	now := time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	if expiry, ok := r.inflight[key]; ok && now.Before(expiry) {
		return false
	}
	r.inflight[key] = now.Add(r.ttl)
	return true
}

// Release frees the slot for the flow and call pair.
func (r *ExecutionRegistry) Release(flowID, callID string) {
	key := executionKey{flowID: flowID, callID: callID}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inflight, key)
}
