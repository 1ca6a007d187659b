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

// Package model defines the structures used for call flow definitions and execution.
package model

import (
	"encoding/json"

	"github.com/voxkit/crossbar/internal/flow/constants"
)

// Flow represents a call treatment flow with all of its versions.
type Flow struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	Status      constants.FlowStatus `json:"status"`
	Versions    []FlowVersion        `json:"versions"`
}

// ActiveVersion returns the active version of the flow, or nil if none is active.
func (f *Flow) ActiveVersion() *FlowVersion {
	for i := range f.Versions {
		if f.Versions[i].IsActive {
			return &f.Versions[i]
		}
	}
	return nil
}

// FlowVersion represents a single immutable version of a flow graph.
type FlowVersion struct {
	ID       string     `json:"id"`
	Number   int        `json:"number"`
	IsActive bool       `json:"isActive"`
	Nodes    []FlowNode `json:"nodes"`
	Edges    []FlowEdge `json:"edges"`
}

// NodeByID returns the node with the given ID, or nil if it is not part of the version.
func (v *FlowVersion) NodeByID(nodeID string) *FlowNode {
	for i := range v.Nodes {
		if v.Nodes[i].ID == nodeID {
			return &v.Nodes[i]
		}
	}
	return nil
}

// EdgesFrom returns the outgoing edges of the given node in declaration order.
func (v *FlowVersion) EdgesFrom(nodeID string) []FlowEdge {
	edges := make([]FlowEdge, 0)
	for _, edge := range v.Edges {
		if edge.SourceNodeID == nodeID {
			edges = append(edges, edge)
		}
	}
	return edges
}

// EntryNodes returns the nodes of the version flagged as the traversal entry.
// An active version must flag exactly one; the resolver rejects anything else.
func (v *FlowVersion) EntryNodes() []*FlowNode {
	entries := make([]*FlowNode, 0, 1)
	for i := range v.Nodes {
		if v.Nodes[i].IsEntry {
			entries = append(entries, &v.Nodes[i])
		}
	}
	return entries
}

// FlowNode represents a single node of a flow graph.
type FlowNode struct {
	ID       string                 `json:"id"`
	Type     constants.NodeType     `json:"type"`
	Category constants.NodeCategory `json:"category"`
	Name     string                 `json:"name,omitempty"`
	IsEntry  bool                   `json:"isEntry,omitempty"`
	Config   json.RawMessage        `json:"config,omitempty"`
}

// FlowEdge represents a directed edge between two nodes of a flow graph.
type FlowEdge struct {
	ID           string `json:"id,omitempty"`
	SourceNodeID string `json:"sourceNodeId"`
	TargetNodeID string `json:"targetNodeId"`
	Label        string `json:"label,omitempty"`
	SourcePort   string `json:"sourcePort,omitempty"`
}
