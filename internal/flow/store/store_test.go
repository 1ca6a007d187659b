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

package store

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/system/database/client"
	dbmodel "github.com/voxkit/crossbar/internal/system/database/model"
)

type CallContextStoreTestSuite struct {
	suite.Suite
	callCtx *CallContext
}

func TestCallContextStoreSuite(t *testing.T) {
	suite.Run(t, new(CallContextStoreTestSuite))
}

func (suite *CallContextStoreTestSuite) SetupTest() {
	suite.callCtx = &CallContext{
		CallID:        "call-1",
		FlowID:        "support-line",
		VersionID:     "v1",
		CurrentNodeID: "menu",
		Caller: model.CallerProfile{
			PhoneNumber: "+14155550123",
			Name:        "Ada",
			Attributes:  map[string]string{"vipTier": "gold"},
		},
		Variables: map[string]interface{}{
			"spokenText": "Welcome",
			"nested":     map[string]interface{}{"a": float64(1)},
		},
		Timezone: "America/New_York",
	}
}

func (suite *CallContextStoreTestSuite) TestDatabaseModelRoundTrip() {
	dbModel, err := FromCallContext(suite.callCtx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "call-1", dbModel.CallID)
	assert.Equal(suite.T(), "+14155550123", dbModel.PhoneNumber)
	assert.NotEmpty(suite.T(), dbModel.CallerData)
	assert.NotEmpty(suite.T(), dbModel.Variables)

	restored, err := dbModel.ToCallContext()
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), suite.callCtx.CallID, restored.CallID)
	assert.Equal(suite.T(), suite.callCtx.CurrentNodeID, restored.CurrentNodeID)
	assert.Equal(suite.T(), suite.callCtx.Caller, restored.Caller)
	assert.Equal(suite.T(), suite.callCtx.Variables, restored.Variables)
	assert.Equal(suite.T(), suite.callCtx.Timezone, restored.Timezone)
}

func (suite *CallContextStoreTestSuite) TestFromCallContextNilVariables() {
	suite.callCtx.Variables = nil
	dbModel, err := FromCallContext(suite.callCtx)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "{}", dbModel.Variables)
}

func (suite *CallContextStoreTestSuite) TestBuildFromResultRow() {
	row := map[string]interface{}{
		"call_id":         "call-1",
		"flow_id":         "support-line",
		"version_id":      "v1",
		"current_node_id": "menu",
		"phone_number":    "+14155550123",
		"caller_data":     []byte(`{"phoneNumber":"+14155550123"}`),
		"variables":       `{"spokenText":"Welcome"}`,
		"timezone":        "UTC",
	}

	dbModel, err := buildCallContextFromResultRow(row)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "menu", dbModel.CurrentNodeID)
	assert.Equal(suite.T(), `{"phoneNumber":"+14155550123"}`, dbModel.CallerData)
}

func (suite *CallContextStoreTestSuite) TestBuildFromResultRowMissingCallID() {
	_, err := buildCallContextFromResultRow(map[string]interface{}{"flow_id": "f"})
	assert.Error(suite.T(), err)
}

type stubDBProvider struct {
	client client.DBClientInterface
}

func (p *stubDBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	return p.client, nil
}

type stubTx struct {
	queries    []string
	failQuery  string
	committed  bool
	rolledBack bool
}

func (t *stubTx) Exec(query string, args ...any) (sql.Result, error) {
	t.queries = append(t.queries, query)
	if query == t.failQuery {
		return nil, errors.New("exec failed")
	}
	return nil, nil
}

func (t *stubTx) Commit() error {
	t.committed = true
	return nil
}

func (t *stubTx) Rollback() error {
	t.rolledBack = true
	return nil
}

type stubDBClient struct {
	tx *stubTx
}

func (c *stubDBClient) Query(query dbmodel.DBQuery, args ...interface{}) ([]map[string]interface{}, error) {
	return nil, nil
}

func (c *stubDBClient) Execute(query dbmodel.DBQuery, args ...interface{}) (int64, error) {
	return 0, nil
}

func (c *stubDBClient) BeginTx() (dbmodel.TxInterface, error) {
	return c.tx, nil
}

func (c *stubDBClient) Close() error {
	return nil
}

func (suite *CallContextStoreTestSuite) TestStoreReplacesInOneTransaction() {
	tx := &stubTx{}
	dbStore := &CallContextStore{
		dbProvider: &stubDBProvider{client: &stubDBClient{tx: tx}},
	}

	assert.NoError(suite.T(), dbStore.Store(suite.callCtx))

	// The old row is cleared and the new one written in the same transaction.
	assert.Equal(suite.T(), []string{QueryDeleteCallContext.Query, QueryCreateCallContext.Query},
		tx.queries)
	assert.True(suite.T(), tx.committed)
	assert.False(suite.T(), tx.rolledBack)
}

func (suite *CallContextStoreTestSuite) TestStoreRollsBackOnInsertFailure() {
	tx := &stubTx{failQuery: QueryCreateCallContext.Query}
	dbStore := &CallContextStore{
		dbProvider: &stubDBProvider{client: &stubDBClient{tx: tx}},
	}

	err := dbStore.Store(suite.callCtx)

	assert.Error(suite.T(), err)
	assert.True(suite.T(), tx.rolledBack)
	assert.False(suite.T(), tx.committed)
}

func (suite *CallContextStoreTestSuite) TestInMemoryStoreLifecycle() {
	memStore := NewInMemoryCallContextStore()

	stored, err := memStore.Get("call-1")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), stored)

	assert.NoError(suite.T(), memStore.Store(suite.callCtx))

	stored, err = memStore.Get("call-1")
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), stored)
	assert.Equal(suite.T(), "menu", stored.CurrentNodeID)

	assert.NoError(suite.T(), memStore.Delete("call-1"))
	stored, err = memStore.Get("call-1")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), stored)
}

func (suite *CallContextStoreTestSuite) TestInMemoryStoreDetachesMaps() {
	memStore := NewInMemoryCallContextStore()
	assert.NoError(suite.T(), memStore.Store(suite.callCtx))

	suite.callCtx.Variables["spokenText"] = "mutated"

	stored, err := memStore.Get("call-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "Welcome", stored.Variables["spokenText"])
}

func (suite *CallContextStoreTestSuite) TestInMemoryStoreReplaces() {
	memStore := NewInMemoryCallContextStore()
	assert.NoError(suite.T(), memStore.Store(suite.callCtx))

	updated := *suite.callCtx
	updated.CurrentNodeID = "collect"
	assert.NoError(suite.T(), memStore.Store(&updated))

	stored, err := memStore.Get("call-1")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), "collect", stored.CurrentNodeID)
}
