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

package workflow

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/provider"
)

type HangupHandlerTestSuite struct {
	suite.Suite
	media   *provider.InMemoryMediaProvider
	handler *HangupHandler
}

func TestHangupHandlerSuite(t *testing.T) {
	suite.Run(t, new(HangupHandlerTestSuite))
}

func (suite *HangupHandlerTestSuite) SetupTest() {
	suite.media = provider.NewInMemoryMediaProvider()
	suite.handler = NewHangupHandler(suite.media)
}

func (suite *HangupHandlerTestSuite) execute(config string) *model.NodeResponse {
	node := &model.FlowNode{
		ID:       "bye",
		Type:     constants.NodeTypeHangup,
		Category: constants.NodeCategoryWorkflow,
	}
	if config != "" {
		node.Config = json.RawMessage(config)
	}
	nodeCtx := &model.NodeContext{
		FlowID:  "flow-1",
		Node:    node,
		Context: &model.ExecutionContext{CallID: "call-1"},
	}

	resp, err := suite.handler.Execute(context.Background(), nodeCtx)
	assert.NoError(suite.T(), err)
	return resp
}

func (suite *HangupHandlerTestSuite) TestHangupWithoutConfig() {
	resp := suite.execute("")

	assert.Equal(suite.T(), constants.NodeStatusComplete, resp.Status)
	assert.Equal(suite.T(), "completed", resp.Output["disposition"])
	assert.Equal(suite.T(), false, resp.Output["farewellPlayed"])
	assert.NotEmpty(suite.T(), resp.Output["hangupAt"])
}

func (suite *HangupHandlerTestSuite) TestHangupWithFarewellText() {
	resp := suite.execute(`{"farewellText": "Goodbye", "dispositionCode": "resolved"}`)

	assert.Equal(suite.T(), constants.NodeStatusComplete, resp.Status)
	assert.Equal(suite.T(), "resolved", resp.Output["disposition"])
	assert.Equal(suite.T(), true, resp.Output["farewellPlayed"])
	assert.Equal(suite.T(), []string{"Goodbye"}, suite.media.Spoken())
}

func (suite *HangupHandlerTestSuite) TestHangupWithFarewellClip() {
	resp := suite.execute(`{"farewellClipRef": "bye.wav"}`)

	assert.Equal(suite.T(), true, resp.Output["farewellPlayed"])
	assert.Equal(suite.T(), []string{"bye.wav"}, suite.media.Played())
}

func (suite *HangupHandlerTestSuite) TestHangupCompletesWhenFarewellFails() {
	suite.media.FailClip("bye.wav")

	resp := suite.execute(`{"farewellClipRef": "bye.wav", "dispositionCode": "abandoned"}`)

	assert.Equal(suite.T(), constants.NodeStatusComplete, resp.Status)
	assert.Equal(suite.T(), "abandoned", resp.Output["disposition"])
	assert.Equal(suite.T(), false, resp.Output["farewellPlayed"])
}
