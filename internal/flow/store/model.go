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

// Package store provides the persistence for suspended call execution contexts.
package store

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/voxkit/crossbar/internal/flow/model"
)

// CallContext is the suspended execution state of a single call, enough to resume
// the traversal at the node that asked for caller input.
type CallContext struct {
	CallID        string
	FlowID        string
	VersionID     string
	CurrentNodeID string
	Caller        model.CallerProfile
	Variables     map[string]interface{}
	Timezone      string
}

// CallContextDB is the database representation of a suspended call context.
type CallContextDB struct {
	CallID        string
	FlowID        string
	VersionID     string
	CurrentNodeID string
	PhoneNumber   string
	CallerData    string
	Variables     string
	Timezone      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FromCallContext converts the call context to its database representation.
func FromCallContext(callCtx *CallContext) (*CallContextDB, error) {
	callerData, err := json.Marshal(callCtx.Caller)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal caller data: %w", err)
	}

	variables := callCtx.Variables
	if variables == nil {
		variables = make(map[string]interface{})
	}
	variablesData, err := json.Marshal(variables)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal variables: %w", err)
	}

	return &CallContextDB{
		CallID:        callCtx.CallID,
		FlowID:        callCtx.FlowID,
		VersionID:     callCtx.VersionID,
		CurrentNodeID: callCtx.CurrentNodeID,
		PhoneNumber:   callCtx.Caller.PhoneNumber,
		CallerData:    string(callerData),
		Variables:     string(variablesData),
		Timezone:      callCtx.Timezone,
	}, nil
}

// ToCallContext converts the database representation back to a call context.
func (c *CallContextDB) ToCallContext() (*CallContext, error) {
	var caller model.CallerProfile
	if c.CallerData != "" {
		if err := json.Unmarshal([]byte(c.CallerData), &caller); err != nil {
			return nil, fmt.Errorf("failed to unmarshal caller data: %w", err)
		}
	}

	variables := make(map[string]interface{})
	if c.Variables != "" {
		if err := json.Unmarshal([]byte(c.Variables), &variables); err != nil {
			return nil, fmt.Errorf("failed to unmarshal variables: %w", err)
		}
	}

	return &CallContext{
		CallID:        c.CallID,
		FlowID:        c.FlowID,
		VersionID:     c.VersionID,
		CurrentNodeID: c.CurrentNodeID,
		Caller:        caller,
		Variables:     variables,
		Timezone:      c.Timezone,
	}, nil
}

func buildCallContextFromResultRow(row map[string]interface{}) (*CallContextDB, error) {
	callID, ok := row["call_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse call_id as string")
	}
	flowID, ok := row["flow_id"].(string)
	if !ok {
		return nil, fmt.Errorf("failed to parse flow_id as string")
	}

	dbModel := &CallContextDB{
		CallID:        callID,
		FlowID:        flowID,
		VersionID:     stringColumn(row, "version_id"),
		CurrentNodeID: stringColumn(row, "current_node_id"),
		PhoneNumber:   stringColumn(row, "phone_number"),
		CallerData:    stringColumn(row, "caller_data"),
		Variables:     stringColumn(row, "variables"),
		Timezone:      stringColumn(row, "timezone"),
	}
	return dbModel, nil
}

func stringColumn(row map[string]interface{}, column string) string {
	switch value := row[column].(type) {
	case string:
		return value
	case []byte:
		return string(value)
	default:
		return ""
	}
}
