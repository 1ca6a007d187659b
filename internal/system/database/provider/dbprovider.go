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

// Package provider provides functionality for managing database connections and clients.
package provider

import (
	"database/sql"
	"fmt"
	"path"

	"github.com/voxkit/crossbar/internal/system/config"
	"github.com/voxkit/crossbar/internal/system/database/client"
	"github.com/voxkit/crossbar/internal/system/database/model"
)

const (
	// DBNameRuntime identifies the runtime database holding per-call state.
	DBNameRuntime = "runtime"
)

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient(dbName string) (client.DBClientInterface, error)
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct{}

// NewDBProvider creates a new instance of DBProvider.
func NewDBProvider() DBProviderInterface {
	return &DBProvider{}
}

// GetDBClient returns a database client based on the provided database name.
// The caller owns the returned client and must close it.
func (d *DBProvider) GetDBClient(dbName string) (client.DBClientInterface, error) {
	switch dbName {
	case DBNameRuntime:
		dataSource := config.GetCrossbarRuntime().Config.Database.Runtime
		return d.newClient(dataSource)
	default:
		return nil, fmt.Errorf("unsupported database name: %s", dbName)
	}
}

// newClient opens a database connection for the given data source.
func (d *DBProvider) newClient(dataSource config.DataSource) (client.DBClientInterface, error) {
	driverName, dsn, err := buildDSN(dataSource)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", dataSource.Name, err)
	}

	// Enable foreign key constraints for SQLite databases.
	if driverName == model.DBTypeSQLite {
		if _, err := db.Exec("PRAGMA foreign_keys = ON;"); err != nil {
			if closeErr := db.Close(); closeErr != nil {
				return nil, fmt.Errorf("failed to enable foreign key constraints: %w (close error: %w)",
					err, closeErr)
			}
			return nil, fmt.Errorf("failed to enable foreign key constraints: %w", err)
		}
	}

	return client.NewDBClient(model.NewDB(db), driverName), nil
}

// buildDSN builds the driver name and DSN for the given data source.
func buildDSN(dataSource config.DataSource) (string, string, error) {
	switch dataSource.Type {
	case model.DBTypePostgres:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
			dataSource.Name, dataSource.SSLMode)
		return model.DBTypePostgres, dsn, nil
	case model.DBTypeSQLite:
		options := dataSource.Options
		if options != "" && options[0] != '?' {
			options = "?" + options
		}
		dsn := fmt.Sprintf("%s%s",
			path.Join(config.GetCrossbarRuntime().CrossbarHome, dataSource.Path), options)
		return model.DBTypeSQLite, dsn, nil
	default:
		return "", "", fmt.Errorf("unsupported database type: %s", dataSource.Type)
	}
}
