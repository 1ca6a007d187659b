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

package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/provider"
)

type HandlerRegistryTestSuite struct {
	suite.Suite
	registry *HandlerRegistry
}

func TestHandlerRegistrySuite(t *testing.T) {
	suite.Run(t, new(HandlerRegistryTestSuite))
}

func (suite *HandlerRegistryTestSuite) SetupTest() {
	suite.registry = NewHandlerRegistry(provider.Providers{
		Telephony: provider.NewInMemoryTelephonyProvider(),
		Media:     provider.NewInMemoryMediaProvider(),
		Queue:     provider.NewInMemoryQueueProvider(),
		Input:     provider.NewInMemoryInputProvider(),
	})
}

func (suite *HandlerRegistryTestSuite) TestResolvesBuiltInHandlers() {
	builtIn := []constants.NodeType{
		constants.NodeTypeExternalTransfer,
		constants.NodeTypeAudioPlayback,
		constants.NodeTypeTextToSpeech,
		constants.NodeTypeBusinessHours,
		constants.NodeTypeCallerCondition,
		constants.NodeTypeConditional,
		constants.NodeTypeIVRMenu,
		constants.NodeTypeQueueTransfer,
		constants.NodeTypeCollectInput,
		constants.NodeTypeHangup,
	}

	for _, nodeType := range builtIn {
		handler, svcErr := suite.registry.Resolve(&model.FlowNode{ID: "n", Type: nodeType})
		assert.Nil(suite.T(), svcErr, "no handler for %s", nodeType)
		assert.Equal(suite.T(), nodeType, handler.Type())
	}
}

func (suite *HandlerRegistryTestSuite) TestIntegrationFallsBackToPassthrough() {
	node := &model.FlowNode{
		ID:       "crm-lookup",
		Type:     constants.NodeType("crm_lookup"),
		Category: constants.NodeCategoryIntegration,
	}

	handler, svcErr := suite.registry.Resolve(node)

	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.NodeTypePassthrough, handler.Type())
}

func (suite *HandlerRegistryTestSuite) TestUnknownTypeFails() {
	node := &model.FlowNode{
		ID:       "mystery",
		Type:     constants.NodeType("mystery_node"),
		Category: constants.NodeCategoryMedia,
	}

	handler, svcErr := suite.registry.Resolve(node)

	assert.Nil(suite.T(), handler)
	assert.Equal(suite.T(), &constants.ErrorUnsupportedNodeType, svcErr)
}

type stubHandler struct{}

func (h *stubHandler) Type() constants.NodeType {
	return constants.NodeType("stub_node")
}

func (h *stubHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryIntegration
}

func (h *stubHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	return model.NewCompleteResponse(nil), nil
}

func (suite *HandlerRegistryTestSuite) TestRegisterCustomHandler() {
	suite.registry.Register(&stubHandler{})

	handler, svcErr := suite.registry.Resolve(&model.FlowNode{
		ID:   "custom",
		Type: constants.NodeType("stub_node"),
	})

	assert.Nil(suite.T(), svcErr)
	assert.IsType(suite.T(), &stubHandler{}, handler)
}
