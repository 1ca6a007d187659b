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

// Package registry provides the node handler registry used by the flow engine.
package registry

import (
	"sync"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/handlers/condition"
	"github.com/voxkit/crossbar/internal/flow/handlers/data"
	"github.com/voxkit/crossbar/internal/flow/handlers/integration"
	"github.com/voxkit/crossbar/internal/flow/handlers/ivr"
	"github.com/voxkit/crossbar/internal/flow/handlers/media"
	"github.com/voxkit/crossbar/internal/flow/handlers/queue"
	"github.com/voxkit/crossbar/internal/flow/handlers/routing"
	"github.com/voxkit/crossbar/internal/flow/handlers/workflow"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/provider"
	"github.com/voxkit/crossbar/internal/system/error/serviceerror"
)

// HandlerRegistryInterface defines the contract for resolving node handlers.
type HandlerRegistryInterface interface {
	Register(handler model.NodeHandlerInterface)
	Resolve(node *model.FlowNode) (model.NodeHandlerInterface, *serviceerror.ServiceError)
}

// HandlerRegistry maps node types to their handlers. Integration nodes without
// a dedicated handler fall back to the passthrough handler.
type HandlerRegistry struct {
	mu          sync.RWMutex
	handlers    map[constants.NodeType]model.NodeHandlerInterface
	passthrough model.NodeHandlerInterface
}

// NewHandlerRegistry creates a registry pre-populated with the built-in handlers
// wired against the given providers.
func NewHandlerRegistry(providers provider.Providers) *HandlerRegistry {
	registry := &HandlerRegistry{
		handlers:    make(map[constants.NodeType]model.NodeHandlerInterface),
		passthrough: integration.NewPassthroughHandler(),
	}

	registry.Register(routing.NewExternalTransferHandler(providers.Telephony))
	registry.Register(media.NewAudioPlaybackHandler(providers.Media))
	registry.Register(media.NewTextToSpeechHandler(providers.Media))
	registry.Register(condition.NewBusinessHoursHandler())
	registry.Register(condition.NewCallerConditionHandler())
	registry.Register(condition.NewConditionalHandler())
	registry.Register(ivr.NewIVRMenuHandler())
	registry.Register(queue.NewQueueTransferHandler(providers.Queue))
	registry.Register(data.NewCollectInputHandler(providers.Input))
	registry.Register(workflow.NewHangupHandler(providers.Media))

	return registry
}

// Register adds or replaces the handler for its node type.
func (r *HandlerRegistry) Register(handler model.NodeHandlerInterface) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[handler.Type()] = handler
}

// Resolve returns the handler responsible for the given node.
func (r *HandlerRegistry) Resolve(node *model.FlowNode) (model.NodeHandlerInterface,
	*serviceerror.ServiceError) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if handler, ok := r.handlers[node.Type]; ok {
		return handler, nil
	}
	if node.Category == constants.NodeCategoryIntegration {
		return r.passthrough, nil
	}
	return nil, &constants.ErrorUnsupportedNodeType
}
