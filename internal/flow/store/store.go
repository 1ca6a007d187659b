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
	"errors"
	"fmt"
	"sync"

	"github.com/voxkit/crossbar/internal/system/database/client"
	dbmodel "github.com/voxkit/crossbar/internal/system/database/model"
	"github.com/voxkit/crossbar/internal/system/database/provider"
	"github.com/voxkit/crossbar/internal/system/log"
	"github.com/voxkit/crossbar/internal/system/utils"
)

const loggerComponentName = "CallContextStore"

// CallContextStoreInterface defines the persistence contract for suspended call contexts.
type CallContextStoreInterface interface {
	Store(callCtx *CallContext) error
	Get(callID string) (*CallContext, error)
	Delete(callID string) error
}

// CallContextStore is the database backed implementation of CallContextStoreInterface.
type CallContextStore struct {
	dbProvider provider.DBProviderInterface
}

// NewCallContextStore creates a database backed call context store.
func NewCallContextStore() *CallContextStore {
	return &CallContextStore{
		dbProvider: provider.NewDBProvider(),
	}
}

// Store persists the call context, replacing any context already stored for the
// call. The replacement runs inside one transaction so a concurrent reader never
// observes the call without a context.
func (s *CallContextStore) Store(callCtx *CallContext) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return fmt.Errorf("failed to get database client: %w", err)
	}
	defer closeClient(dbClient, logger)

	dbModel, err := FromCallContext(callCtx)
	if err != nil {
		return err
	}

	logger.Debug("Storing call context", log.String(log.LoggerKeyCallID, dbModel.CallID),
		log.String(log.LoggerKeyNodeID, dbModel.CurrentNodeID))

	tx, err := dbClient.BeginTx()
	if err != nil {
		logger.Error("Failed to begin transaction", log.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.Exec(QueryDeleteCallContext.Query, dbModel.CallID); err != nil {
		logger.Error("Failed to clear previous call context", log.Error(err))
		return rollback(tx, logger, fmt.Errorf("failed to clear previous call context: %w", err))
	}

	if _, err := tx.Exec(QueryCreateCallContext.Query, dbModel.CallID, dbModel.FlowID,
		dbModel.VersionID, dbModel.CurrentNodeID, dbModel.PhoneNumber, dbModel.CallerData,
		dbModel.Variables, dbModel.Timezone); err != nil {
		logger.Error("Failed to create call context", log.Error(err))
		return rollback(tx, logger, fmt.Errorf("failed to create call context: %w", err))
	}

	if err := tx.Commit(); err != nil {
		logger.Error("Failed to commit transaction", log.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// Get retrieves the call context for the given call ID. A missing context returns nil.
func (s *CallContextStore) Get(callID string) (*CallContext, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return nil, fmt.Errorf("failed to get database client: %w", err)
	}
	defer closeClient(dbClient, logger)

	results, err := dbClient.Query(QueryGetCallContext, callID)
	if err != nil {
		logger.Error("Failed to query call context", log.Error(err))
		return nil, fmt.Errorf("failed to query call context: %w", err)
	}
	if len(results) == 0 {
		logger.Debug("Call context not found", log.String(log.LoggerKeyCallID, callID))
		return nil, nil
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("unexpected number of results: %d", len(results))
	}

	dbModel, err := buildCallContextFromResultRow(results[0])
	if err != nil {
		return nil, err
	}
	return dbModel.ToCallContext()
}

// Delete removes the call context for the given call ID.
func (s *CallContextStore) Delete(callID string) error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, loggerComponentName))

	dbClient, err := s.dbProvider.GetDBClient("runtime")
	if err != nil {
		logger.Error("Failed to get database client", log.Error(err))
		return fmt.Errorf("failed to get database client: %w", err)
	}
	defer closeClient(dbClient, logger)

	if _, err := dbClient.Execute(QueryDeleteCallContext, callID); err != nil {
		logger.Error("Failed to delete call context", log.Error(err))
		return fmt.Errorf("failed to delete call context: %w", err)
	}
	return nil
}

func closeClient(dbClient client.DBClientInterface, logger *log.Logger) {
	if err := dbClient.Close(); err != nil {
		logger.Error("Failed to close database client", log.Error(err))
	}
}

func rollback(tx dbmodel.TxInterface, logger *log.Logger, err error) error {
	if rollbackErr := tx.Rollback(); rollbackErr != nil {
		logger.Error("Failed to rollback transaction", log.Error(rollbackErr))
		err = errors.Join(err, fmt.Errorf("failed to rollback transaction: %w", rollbackErr))
	}
	return err
}

// InMemoryCallContextStore keeps suspended call contexts in process memory. It
// backs deployments without a runtime database and the test suites.
type InMemoryCallContextStore struct {
	mu       sync.RWMutex
	contexts map[string]*CallContext
}

// NewInMemoryCallContextStore creates an in-memory call context store.
func NewInMemoryCallContextStore() *InMemoryCallContextStore {
	return &InMemoryCallContextStore{
		contexts: make(map[string]*CallContext),
	}
}

// Store implements CallContextStoreInterface. The stored context is detached
// from the caller's maps so later mutations of the execution do not leak in.
func (s *InMemoryCallContextStore) Store(callCtx *CallContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[callCtx.CallID] = cloneCallContext(callCtx)
	return nil
}

// Get implements CallContextStoreInterface.
func (s *InMemoryCallContextStore) Get(callID string) (*CallContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored, ok := s.contexts[callID]
	if !ok {
		return nil, nil
	}
	return cloneCallContext(stored), nil
}

// Delete implements CallContextStoreInterface.
func (s *InMemoryCallContextStore) Delete(callID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, callID)
	return nil
}

func cloneCallContext(callCtx *CallContext) *CallContext {
	clone := *callCtx
	clone.Variables = utils.DeepCopyVariableMap(callCtx.Variables)
	clone.Caller.Attributes = utils.DeepCopyMapOfStrings(callCtx.Caller.Attributes)
	return &clone
}
