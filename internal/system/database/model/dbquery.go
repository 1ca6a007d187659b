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

package model

const (
	// DBTypePostgres identifies the PostgreSQL dialect.
	DBTypePostgres = "postgres"
	// DBTypeSQLite identifies the SQLite dialect.
	DBTypeSQLite = "sqlite"
)

// DBQuery represents a database query with an identifier and the SQL query string.
// Dialect-specific variants may be provided when the default query is not portable.
type DBQuery struct {
	// ID is the unique identifier for the query.
	ID string
	// Query is the default SQL query string.
	Query string
	// PostgresQuery overrides Query for PostgreSQL when non-empty.
	PostgresQuery string
	// SQLiteQuery overrides Query for SQLite when non-empty.
	SQLiteQuery string
}

// GetID returns the unique identifier for the query.
func (q DBQuery) GetID() string {
	return q.ID
}

// GetQuery returns the SQL query string for the given database type.
func (q DBQuery) GetQuery(dbType string) string {
	switch dbType {
	case DBTypePostgres:
		if q.PostgresQuery != "" {
			return q.PostgresQuery
		}
	case DBTypeSQLite:
		if q.SQLiteQuery != "" {
			return q.SQLiteQuery
		}
	}
	return q.Query
}
