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

// Package jsonmodel provides the structure for representing a flow definition in JSON format.
package jsonmodel

import (
	"encoding/json"
)

// FlowDefinition represents a flow with all of its versions as defined in JSON.
type FlowDefinition struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description,omitempty"`
	Status      string              `json:"status"`
	Versions    []VersionDefinition `json:"versions"`
}

// VersionDefinition represents one version of a flow graph in the definition.
type VersionDefinition struct {
	ID       string           `json:"id"`
	Number   int              `json:"number"`
	IsActive bool             `json:"isActive"`
	Nodes    []NodeDefinition `json:"nodes"`
	Edges    []EdgeDefinition `json:"edges"`
}

// NodeDefinition represents a node in the flow definition.
type NodeDefinition struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Category string          `json:"category,omitempty"`
	Name     string          `json:"name,omitempty"`
	IsEntry  bool            `json:"isEntry,omitempty"`
	Config   json.RawMessage `json:"config,omitempty"`
}

// EdgeDefinition represents a directed edge in the flow definition.
type EdgeDefinition struct {
	ID         string `json:"id,omitempty"`
	Source     string `json:"source"`
	Target     string `json:"target"`
	Label      string `json:"label,omitempty"`
	SourcePort string `json:"sourcePort,omitempty"`
}
