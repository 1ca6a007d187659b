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
	"github.com/voxkit/crossbar/internal/system/database/model"
)

var (
	// QueryCreateCallContext is the query to create a new call context.
	QueryCreateCallContext = model.DBQuery{
		ID: "CCQ-CALL_CTX-01",
		Query: "INSERT INTO CALL_CONTEXT (CALL_ID, FLOW_ID, VERSION_ID, CURRENT_NODE_ID, " +
			"PHONE_NUMBER, CALLER_DATA, VARIABLES, TIMEZONE) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)",
	}

	// QueryGetCallContext is the query to retrieve a call context by call ID.
	QueryGetCallContext = model.DBQuery{
		ID: "CCQ-CALL_CTX-02",
		Query: "SELECT CALL_ID, FLOW_ID, VERSION_ID, CURRENT_NODE_ID, PHONE_NUMBER, " +
			"CALLER_DATA, VARIABLES, TIMEZONE FROM CALL_CONTEXT WHERE CALL_ID = $1",
	}

	// QueryDeleteCallContext is the query to delete a call context.
	QueryDeleteCallContext = model.DBQuery{
		ID:    "CCQ-CALL_CTX-03",
		Query: "DELETE FROM CALL_CONTEXT WHERE CALL_ID = $1",
	}
)
