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

// Package utils provides utility functions for building flow models from definitions.
package utils

import (
	"fmt"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/jsonmodel"
	"github.com/voxkit/crossbar/internal/flow/model"
	sysutils "github.com/voxkit/crossbar/internal/system/utils"
)

// nodeCategories maps the built-in node types to their categories. Types outside
// the table keep the category from their definition.
var nodeCategories = map[constants.NodeType]constants.NodeCategory{
	constants.NodeTypeExternalTransfer: constants.NodeCategoryRouting,
	constants.NodeTypeAudioPlayback:    constants.NodeCategoryMedia,
	constants.NodeTypeTextToSpeech:     constants.NodeCategoryMedia,
	constants.NodeTypeBusinessHours:    constants.NodeCategoryCondition,
	constants.NodeTypeCallerCondition:  constants.NodeCategoryCondition,
	constants.NodeTypeConditional:      constants.NodeCategoryCondition,
	constants.NodeTypeIVRMenu:          constants.NodeCategoryIVR,
	constants.NodeTypeQueueTransfer:    constants.NodeCategoryQueue,
	constants.NodeTypeCollectInput:     constants.NodeCategoryData,
	constants.NodeTypeHangup:           constants.NodeCategoryWorkflow,
}

// BuildFlowFromDefinition converts a JSON flow definition into the flow model,
// validating the structural integrity of every version graph.
func BuildFlowFromDefinition(definition *jsonmodel.FlowDefinition) (*model.Flow, error) {
	if definition.ID == "" {
		return nil, fmt.Errorf("flow definition has no ID")
	}
	if len(definition.Versions) == 0 {
		return nil, fmt.Errorf("flow %s has no versions", definition.ID)
	}

	status := constants.FlowStatus(definition.Status)
	if status == "" {
		status = constants.FlowStatusActive
	}

	flow := &model.Flow{
		ID:          definition.ID,
		Name:        definition.Name,
		Description: definition.Description,
		Status:      status,
		Versions:    make([]model.FlowVersion, 0, len(definition.Versions)),
	}

	activeCount := 0
	for i := range definition.Versions {
		version, err := buildVersion(&definition.Versions[i])
		if err != nil {
			return nil, fmt.Errorf("flow %s: %w", definition.ID, err)
		}
		if version.IsActive {
			activeCount++
		}
		flow.Versions = append(flow.Versions, *version)
	}
	if activeCount > 1 {
		return nil, fmt.Errorf("flow %s has %d active versions", definition.ID, activeCount)
	}

	return flow, nil
}

func buildVersion(definition *jsonmodel.VersionDefinition) (*model.FlowVersion, error) {
	if definition.ID == "" {
		return nil, fmt.Errorf("version has no ID")
	}
	if len(definition.Nodes) == 0 {
		return nil, fmt.Errorf("version %s has no nodes", definition.ID)
	}

	version := &model.FlowVersion{
		ID:       definition.ID,
		Number:   definition.Number,
		IsActive: definition.IsActive,
		Nodes:    make([]model.FlowNode, 0, len(definition.Nodes)),
		Edges:    make([]model.FlowEdge, 0, len(definition.Edges)),
	}

	nodeIDs := make(map[string]bool, len(definition.Nodes))
	for _, nodeDef := range definition.Nodes {
		if nodeDef.ID == "" {
			return nil, fmt.Errorf("version %s contains a node without an ID", definition.ID)
		}
		if nodeIDs[nodeDef.ID] {
			return nil, fmt.Errorf("version %s contains duplicate node ID %s", definition.ID, nodeDef.ID)
		}
		nodeIDs[nodeDef.ID] = true

		nodeType := constants.NodeType(nodeDef.Type)
		category := constants.NodeCategory(nodeDef.Category)
		if inferred, ok := nodeCategories[nodeType]; ok {
			category = inferred
		}
		if category == "" {
			return nil, fmt.Errorf("version %s node %s has unknown type %s and no category",
				definition.ID, nodeDef.ID, nodeDef.Type)
		}

		version.Nodes = append(version.Nodes, model.FlowNode{
			ID:       nodeDef.ID,
			Type:     nodeType,
			Category: category,
			Name:     nodeDef.Name,
			IsEntry:  nodeDef.IsEntry,
			Config:   nodeDef.Config,
		})
	}

	for _, edgeDef := range definition.Edges {
		if !nodeIDs[edgeDef.Source] {
			return nil, fmt.Errorf("version %s edge references unknown source node %s",
				definition.ID, edgeDef.Source)
		}
		if !nodeIDs[edgeDef.Target] {
			return nil, fmt.Errorf("version %s edge references unknown target node %s",
				definition.ID, edgeDef.Target)
		}
		edgeID := edgeDef.ID
		if edgeID == "" {
			edgeID = sysutils.GenerateUUID()
		}
		version.Edges = append(version.Edges, model.FlowEdge{
			ID:           edgeID,
			SourceNodeID: edgeDef.Source,
			TargetNodeID: edgeDef.Target,
			Label:        edgeDef.Label,
			SourcePort:   edgeDef.SourcePort,
		})
	}

	return version, nil
}
