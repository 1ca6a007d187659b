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

// Package seeder provides initialization of the runtime database schema.
package seeder

import (
	"github.com/voxkit/crossbar/internal/system/database/client"
	"github.com/voxkit/crossbar/internal/system/database/model"
	"github.com/voxkit/crossbar/internal/system/log"
)

// SeederInterface defines the interface for database schema initialization.
type SeederInterface interface {
	SeedSchema() error
}

// DBSeeder implements SeederInterface for the runtime database.
type DBSeeder struct {
	dbClient client.DBClientInterface
}

// NewDBSeeder creates a new instance of DBSeeder.
func NewDBSeeder(dbClient client.DBClientInterface) SeederInterface {
	return &DBSeeder{
		dbClient: dbClient,
	}
}

var (
	// queryCreateCallContextTable creates the suspended call context table.
	queryCreateCallContextTable = model.DBQuery{
		ID: "SEQ-CALL_CTX-01",
		Query: `CREATE TABLE IF NOT EXISTS CALL_CONTEXT (
			CALL_ID VARCHAR(64) PRIMARY KEY,
			FLOW_ID VARCHAR(64) NOT NULL,
			VERSION_ID VARCHAR(64) NOT NULL,
			CURRENT_NODE_ID VARCHAR(64) NOT NULL,
			PHONE_NUMBER VARCHAR(32),
			CALLER_DATA TEXT,
			VARIABLES TEXT,
			TIMEZONE VARCHAR(64),
			CREATED_AT TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UPDATED_AT TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}
)

// SeedSchema creates the runtime tables if they do not exist.
func (s *DBSeeder) SeedSchema() error {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "DBSeeder"))
	logger.Debug("Initializing runtime database schema")

	if _, err := s.dbClient.Execute(queryCreateCallContextTable); err != nil {
		logger.Error("Failed to create call context table", log.Error(err))
		return err
	}

	logger.Debug("Runtime database schema initialized")
	return nil
}
