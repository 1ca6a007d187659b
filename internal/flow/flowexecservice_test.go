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
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/engine"
	"github.com/voxkit/crossbar/internal/flow/events"
	"github.com/voxkit/crossbar/internal/flow/flowmgt"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/flow/registry"
	"github.com/voxkit/crossbar/internal/flow/store"
	"github.com/voxkit/crossbar/internal/provider"
)

type FlowExecServiceTestSuite struct {
	suite.Suite
	flowMgt  flowmgt.FlowMgtServiceInterface
	registry *registry.HandlerRegistry
	store    *store.InMemoryCallContextStore
	service  *FlowExecService
}

func TestFlowExecServiceSuite(t *testing.T) {
	suite.Run(t, new(FlowExecServiceTestSuite))
}

func (suite *FlowExecServiceTestSuite) SetupTest() {
	suite.flowMgt = flowmgt.GetFlowMgtService()
	suite.registry = registry.NewHandlerRegistry(provider.Providers{
		Telephony: provider.NewInMemoryTelephonyProvider(),
		Media:     provider.NewInMemoryMediaProvider(),
		Queue:     provider.NewInMemoryQueueProvider(),
		Input:     provider.NewInMemoryInputProvider(),
	})
	suite.store = store.NewInMemoryCallContextStore()
	suite.service = &FlowExecService{
		flowMgtService:   suite.flowMgt,
		flowEngine:       engine.NewFlowEngine(suite.registry),
		callContextStore: suite.store,
		execRegistry:     NewExecutionRegistry(0),
		observer:         events.NewNoopObserver(),
		initialized:      true,
	}
}

func (suite *FlowExecServiceTestSuite) registerFlow(flowID, versionID string,
	nodes []model.FlowNode, edges []model.FlowEdge) {
	nodes[0].IsEntry = true
	suite.flowMgt.RegisterFlow(&model.Flow{
		ID:     flowID,
		Status: constants.FlowStatusActive,
		Versions: []model.FlowVersion{{
			ID:       versionID,
			Number:   1,
			IsActive: true,
			Nodes:    nodes,
			Edges:    edges,
		}},
	})
}

func announceNode(id, text string) model.FlowNode {
	return model.FlowNode{
		ID:       id,
		Type:     constants.NodeTypeTextToSpeech,
		Category: constants.NodeCategoryMedia,
		Config:   json.RawMessage(`{"text": "` + text + `"}`),
	}
}

func endNode(id string) model.FlowNode {
	return model.FlowNode{
		ID:       id,
		Type:     constants.NodeTypeHangup,
		Category: constants.NodeCategoryWorkflow,
		Config:   json.RawMessage(`{"dispositionCode": "completed"}`),
	}
}

func menuNode(id string) model.FlowNode {
	return model.FlowNode{
		ID:       id,
		Type:     constants.NodeTypeIVRMenu,
		Category: constants.NodeCategoryIVR,
		Config: json.RawMessage(`{
			"prompt": "Press one for sales, two for support",
			"variable": "choice",
			"options": [
				{"digit": "1", "label": "Sales"},
				{"digit": "2", "label": "Support"}
			]
		}`),
	}
}

func callContext(callID string) *model.ExecutionContext {
	return &model.ExecutionContext{
		CallID:      callID,
		Caller:      model.CallerProfile{PhoneNumber: "+14155550123", Name: "Riley"},
		CurrentTime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (suite *FlowExecServiceTestSuite) TestExecuteNotInitialized() {
	suite.service.initialized = false

	result, svcErr := suite.service.Execute(context.Background(), "any-flow", callContext("call-1"))

	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), &constants.ErrorFlowEngineNotInitialized, svcErr)
}

func (suite *FlowExecServiceTestSuite) TestExecuteEmptyFlowID() {
	result, svcErr := suite.service.Execute(context.Background(), "", callContext("call-1"))

	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), &constants.ErrorInvalidFlowID, svcErr)
}

func (suite *FlowExecServiceTestSuite) TestExecuteMissingCallID() {
	result, svcErr := suite.service.Execute(context.Background(), "any-flow", nil)
	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), &constants.ErrorInvalidCallID, svcErr)

	result, svcErr = suite.service.Execute(context.Background(), "any-flow",
		&model.ExecutionContext{})
	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), &constants.ErrorInvalidCallID, svcErr)
}

func (suite *FlowExecServiceTestSuite) TestExecuteFlowNotFound() {
	result, svcErr := suite.service.Execute(context.Background(), "no-such-flow",
		callContext("call-1"))

	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), &constants.ErrorFlowNotFound, svcErr)
}

func (suite *FlowExecServiceTestSuite) TestExecuteLinearFlow() {
	suite.registerFlow("svc-linear", "v1",
		[]model.FlowNode{
			announceNode("greet", "Welcome to Voxkit"),
			endNode("bye"),
		},
		[]model.FlowEdge{
			{SourceNodeID: "greet", TargetNodeID: "bye"},
		})

	result, svcErr := suite.service.Execute(context.Background(), "svc-linear",
		callContext("call-linear"))

	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ExecutionStatusCompleted, result.Status)
	assert.True(suite.T(), result.Success)
	assert.Len(suite.T(), result.NodeResults, 2)
	assert.Equal(suite.T(), "completed", result.Variables["disposition"])

	stored, err := suite.store.Get("call-linear")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), stored)
}

func (suite *FlowExecServiceTestSuite) TestSuspendAndResume() {
	suite.registerFlow("svc-menu", "v1",
		[]model.FlowNode{
			announceNode("greet", "Welcome"),
			menuNode("menu"),
			endNode("bye"),
		},
		[]model.FlowEdge{
			{SourceNodeID: "greet", TargetNodeID: "menu"},
			{SourceNodeID: "menu", TargetNodeID: "bye"},
		})

	first, svcErr := suite.service.Execute(context.Background(), "svc-menu",
		callContext("call-menu"))

	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ExecutionStatusSuspended, first.Status)
	assert.Equal(suite.T(), "menu", first.SuspendedNodeID)
	assert.NotNil(suite.T(), first.Prompt)
	assert.Equal(suite.T(), "choice", first.Prompt.Variable)
	assert.Len(suite.T(), first.Prompt.Options, 2)

	stored, err := suite.store.Get("call-menu")
	assert.NoError(suite.T(), err)
	if assert.NotNil(suite.T(), stored) {
		assert.Equal(suite.T(), "svc-menu", stored.FlowID)
		assert.Equal(suite.T(), "v1", stored.VersionID)
		assert.Equal(suite.T(), "menu", stored.CurrentNodeID)
		assert.Equal(suite.T(), "+14155550123", stored.Caller.PhoneNumber)
	}

	resumeCtx := callContext("call-menu")
	resumeCtx.UserInput = map[string]string{"choice": "2"}
	second, svcErr := suite.service.Execute(context.Background(), "svc-menu", resumeCtx)

	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ExecutionStatusCompleted, second.Status)
	assert.Equal(suite.T(), "2", second.Variables["choice"])
	assert.Equal(suite.T(), "Support", second.Variables["selectionLabel"])
	assert.Equal(suite.T(), "menu", second.NodeResults[0].NodeID)
	assert.Equal(suite.T(), "bye", second.NodeResults[1].NodeID)

	stored, err = suite.store.Get("call-menu")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), stored)
}

func (suite *FlowExecServiceTestSuite) TestResumePreservesVariables() {
	suite.registerFlow("svc-vars", "v1",
		[]model.FlowNode{
			announceNode("greet", "Welcome"),
			menuNode("menu"),
			endNode("bye"),
		},
		[]model.FlowEdge{
			{SourceNodeID: "greet", TargetNodeID: "menu"},
			{SourceNodeID: "menu", TargetNodeID: "bye"},
		})

	firstCtx := callContext("call-vars")
	firstCtx.Variables = map[string]interface{}{"accountTier": "gold"}
	_, svcErr := suite.service.Execute(context.Background(), "svc-vars", firstCtx)
	assert.Nil(suite.T(), svcErr)

	resumeCtx := callContext("call-vars")
	resumeCtx.UserInput = map[string]string{"choice": "1"}
	result, svcErr := suite.service.Execute(context.Background(), "svc-vars", resumeCtx)

	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ExecutionStatusCompleted, result.Status)
	assert.Equal(suite.T(), "gold", result.Variables["accountTier"])
	assert.Equal(suite.T(), "Welcome", result.Variables["spokenText"])
}

func (suite *FlowExecServiceTestSuite) TestResumeNodeGone() {
	suite.registerFlow("svc-redeploy", "v1",
		[]model.FlowNode{menuNode("menu")},
		nil)

	first, svcErr := suite.service.Execute(context.Background(), "svc-redeploy",
		callContext("call-redeploy"))
	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ExecutionStatusSuspended, first.Status)

	// Swap the flow definition while the call is suspended.
	suite.registerFlow("svc-redeploy", "v2",
		[]model.FlowNode{endNode("bye")},
		nil)

	resumeCtx := callContext("call-redeploy")
	resumeCtx.UserInput = map[string]string{"choice": "1"}
	result, svcErr := suite.service.Execute(context.Background(), "svc-redeploy", resumeCtx)

	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), &constants.ErrorResumeNodeNotFound, svcErr)

	stored, err := suite.store.Get("call-redeploy")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), stored)
}

type countingObserver struct {
	started   int
	nodes     int
	completed int
	suspended int
	failed    int
	aborted   int
	lastCode  constants.FailureCode
}

func (o *countingObserver) OnExecutionStarted(flowID, callID string) { o.started++ }

func (o *countingObserver) OnNodeExecuted(flowID, callID string, result model.NodeResult) {
	o.nodes++
}

func (o *countingObserver) OnExecutionCompleted(flowID, callID string,
	result *model.FlowExecutionResult) {
	o.completed++
}

func (o *countingObserver) OnExecutionSuspended(flowID, callID string,
	result *model.FlowExecutionResult) {
	o.suspended++
}

func (o *countingObserver) OnExecutionFailed(flowID, callID string,
	failure *model.ExecutionFailure) {
	o.failed++
	o.lastCode = failure.Code
}

func (o *countingObserver) OnExecutionAborted(flowID, callID string,
	failure *model.ExecutionFailure) {
	o.aborted++
}

func (o *countingObserver) terminals() int {
	return o.completed + o.suspended + o.failed + o.aborted
}

// Every invocation that starts must end with exactly one terminal event.
func (suite *FlowExecServiceTestSuite) TestExactlyOneTerminalEventPerStart() {
	observer := &countingObserver{}
	suite.service.observer = observer

	suite.registerFlow("svc-ev-done", "v1",
		[]model.FlowNode{endNode("bye")},
		nil)
	suite.registerFlow("svc-ev-fail", "v1",
		[]model.FlowNode{{
			ID:       "to-queue",
			Type:     constants.NodeTypeQueueTransfer,
			Category: constants.NodeCategoryQueue,
			Config:   json.RawMessage(`{"queueId": "missing"}`),
		}},
		nil)
	suite.registerFlow("svc-ev-menu", "v1",
		[]model.FlowNode{menuNode("menu")},
		nil)

	result, svcErr := suite.service.Execute(context.Background(), "svc-ev-done",
		callContext("call-ev-done"))
	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ExecutionStatusCompleted, result.Status)
	assert.Equal(suite.T(), 1, observer.started)
	assert.Equal(suite.T(), 1, observer.completed)

	result, svcErr = suite.service.Execute(context.Background(), "svc-ev-fail",
		callContext("call-ev-fail"))
	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ExecutionStatusFailed, result.Status)
	assert.Equal(suite.T(), 2, observer.started)
	assert.Equal(suite.T(), 1, observer.failed)

	result, svcErr = suite.service.Execute(context.Background(), "svc-ev-menu",
		callContext("call-ev-menu"))
	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ExecutionStatusSuspended, result.Status)
	assert.Equal(suite.T(), 3, observer.started)
	assert.Equal(suite.T(), 1, observer.suspended)

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	result, svcErr = suite.service.Execute(cancelled, "svc-ev-done", callContext("call-ev-abort"))
	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ExecutionStatusAborted, result.Status)
	assert.Equal(suite.T(), 4, observer.started)
	assert.Equal(suite.T(), 1, observer.aborted)

	assert.Equal(suite.T(), observer.started, observer.terminals())
}

func (suite *FlowExecServiceTestSuite) TestDefinitionErrorEmitsFailureEvent() {
	observer := &countingObserver{}
	suite.service.observer = observer

	result, svcErr := suite.service.Execute(context.Background(), "no-such-flow",
		callContext("call-ev-missing"))

	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), &constants.ErrorFlowNotFound, svcErr)
	// A flow that never resolves emits a failure event but no started event.
	assert.Equal(suite.T(), 0, observer.started)
	assert.Equal(suite.T(), 1, observer.failed)
	assert.Equal(suite.T(), constants.FailureCode(constants.ErrorFlowNotFound.Code), observer.lastCode)
}

type failingStore struct{}

func (f *failingStore) Store(callCtx *store.CallContext) error {
	return errors.New("runtime database is unavailable")
}

func (f *failingStore) Get(callID string) (*store.CallContext, error) {
	return nil, nil
}

func (f *failingStore) Delete(callID string) error {
	return nil
}

func (suite *FlowExecServiceTestSuite) TestStoreFailureStillEmitsTerminalEvent() {
	observer := &countingObserver{}
	suite.service.observer = observer
	suite.service.callContextStore = &failingStore{}

	suite.registerFlow("svc-store-fail", "v1",
		[]model.FlowNode{menuNode("menu")},
		nil)

	result, svcErr := suite.service.Execute(context.Background(), "svc-store-fail",
		callContext("call-store-fail"))

	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), &constants.ErrorWhileStoringCallContext, svcErr)
	assert.Equal(suite.T(), 1, observer.started)
	assert.Equal(suite.T(), 1, observer.failed)
	assert.Equal(suite.T(), observer.started, observer.terminals())
	assert.Equal(suite.T(), constants.FailureCode(constants.ErrorWhileStoringCallContext.Code),
		observer.lastCode)
}

type blockingHandler struct {
	entered chan struct{}
	release chan struct{}
}

func (h *blockingHandler) Type() constants.NodeType {
	return constants.NodeType("blocking_gate")
}

func (h *blockingHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryIntegration
}

func (h *blockingHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	close(h.entered)
	<-h.release
	return model.NewCompleteResponse(map[string]interface{}{"released": true}), nil
}

func (suite *FlowExecServiceTestSuite) TestConcurrentExecutionRejected() {
	handler := &blockingHandler{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	suite.registry.Register(handler)
	suite.registerFlow("svc-exclusive", "v1",
		[]model.FlowNode{{
			ID:       "gate",
			Type:     handler.Type(),
			Category: constants.NodeCategoryIntegration,
		}},
		nil)

	done := make(chan *model.FlowExecutionResult, 1)
	go func() {
		result, _ := suite.service.Execute(context.Background(), "svc-exclusive",
			callContext("call-exclusive"))
		done <- result
	}()

	<-handler.entered
	result, svcErr := suite.service.Execute(context.Background(), "svc-exclusive",
		callContext("call-exclusive"))
	assert.Nil(suite.T(), result)
	assert.Equal(suite.T(), &constants.ErrorConcurrentExecution, svcErr)

	close(handler.release)
	first := <-done
	assert.Equal(suite.T(), constants.ExecutionStatusCompleted, first.Status)
}

func (suite *FlowExecServiceTestSuite) TestIndependentCallsRunConcurrently() {
	handler := &blockingHandler{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	suite.registry.Register(handler)
	suite.registerFlow("svc-parallel", "v1",
		[]model.FlowNode{{
			ID:       "gate",
			Type:     handler.Type(),
			Category: constants.NodeCategoryIntegration,
		}},
		nil)
	suite.registerFlow("svc-parallel-2", "v1",
		[]model.FlowNode{endNode("bye")},
		nil)

	done := make(chan struct{})
	go func() {
		_, _ = suite.service.Execute(context.Background(), "svc-parallel",
			callContext("call-a"))
		close(done)
	}()

	<-handler.entered

	// A different call on the same flow and a different flow for the same
	// call both proceed while the first invocation is still running.
	result, svcErr := suite.service.Execute(context.Background(), "svc-parallel-2",
		callContext("call-a"))
	assert.Nil(suite.T(), svcErr)
	assert.Equal(suite.T(), constants.ExecutionStatusCompleted, result.Status)

	close(handler.release)
	<-done
}
