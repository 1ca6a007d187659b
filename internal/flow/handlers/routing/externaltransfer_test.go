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

package routing

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

type ExternalTransferHandlerTestSuite struct {
	suite.Suite
	telephony *provider.InMemoryTelephonyProvider
	handler   *ExternalTransferHandler
}

func TestExternalTransferHandlerSuite(t *testing.T) {
	suite.Run(t, new(ExternalTransferHandlerTestSuite))
}

func (suite *ExternalTransferHandlerTestSuite) SetupTest() {
	suite.telephony = provider.NewInMemoryTelephonyProvider()
	suite.handler = NewExternalTransferHandler(suite.telephony)
}

func (suite *ExternalTransferHandlerTestSuite) execute(config string) *model.NodeResponse {
	node := &model.FlowNode{
		ID:       "transfer",
		Type:     constants.NodeTypeExternalTransfer,
		Category: constants.NodeCategoryRouting,
		Config:   json.RawMessage(config),
	}
	nodeCtx := &model.NodeContext{
		FlowID: "flow-1",
		Node:   node,
		Context: &model.ExecutionContext{
			CallID:    "call-1",
			Variables: map[string]interface{}{},
		},
	}

	resp, err := suite.handler.Execute(context.Background(), nodeCtx)
	assert.NoError(suite.T(), err)
	return resp
}

func (suite *ExternalTransferHandlerTestSuite) TestConnectedTransfer() {
	resp := suite.execute(`{"destination": "+14155550100"}`)

	assert.Equal(suite.T(), constants.NodeStatusComplete, resp.Status)
	assert.Equal(suite.T(), "connected", resp.Output["transferOutcome"])
	assert.Equal(suite.T(), []string{"+14155550100"}, suite.telephony.Dialed())
}

func (suite *ExternalTransferHandlerTestSuite) TestBusyTransferFails() {
	suite.telephony.ScriptOutcome("+14155550100", provider.DialOutcomeBusy)
	resp := suite.execute(`{"destination": "+14155550100"}`)

	assert.Equal(suite.T(), constants.NodeStatusFailure, resp.Status)
	assert.Equal(suite.T(), constants.FailureCodeTransferFailed, resp.FailureCode)
	// The outcome is still reported in the output.
	assert.Equal(suite.T(), "busy", resp.Output["transferOutcome"])
}

func (suite *ExternalTransferHandlerTestSuite) TestInvalidDestinationSkipsDial() {
	resp := suite.execute(`{"destination": "not-a-number"}`)

	assert.Equal(suite.T(), constants.NodeStatusFailure, resp.Status)
	assert.Equal(suite.T(), constants.FailureCodeInvalidPhoneNumber, resp.FailureCode)
	assert.Empty(suite.T(), suite.telephony.Dialed())
}

func (suite *ExternalTransferHandlerTestSuite) TestDestinationWithLeadingZero() {
	resp := suite.execute(`{"destination": "+04155550100"}`)

	assert.Equal(suite.T(), constants.NodeStatusFailure, resp.Status)
	assert.Equal(suite.T(), constants.FailureCodeInvalidPhoneNumber, resp.FailureCode)
}

func (suite *ExternalTransferHandlerTestSuite) TestMissingConfig() {
	node := &model.FlowNode{ID: "transfer", Type: constants.NodeTypeExternalTransfer}
	nodeCtx := &model.NodeContext{
		FlowID:  "flow-1",
		Node:    node,
		Context: &model.ExecutionContext{CallID: "call-1"},
	}

	resp, err := suite.handler.Execute(context.Background(), nodeCtx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), constants.NodeStatusFailure, resp.Status)
	assert.Equal(suite.T(), constants.FailureCodeInvalidNodeConfig, resp.FailureCode)
}
