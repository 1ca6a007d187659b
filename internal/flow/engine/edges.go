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

package engine

import (
	"strings"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
)

// resolveNextNode selects the outgoing edge to follow after a completed node.
//
// A node without outgoing edges is terminal. For condition nodes whose output
// carries a boolean conditionMet, the branch edges are matched by token: an edge
// whose label or source port contains an affirmative token is the true branch,
// one with a negative token the false branch. When no branch edge matches the
// verdict, or for every other node, the first declared edge wins.
//
// The second return value is false when the selected edge points at a node that
// is not part of the version.
func resolveNextNode(version *model.FlowVersion, node *model.FlowNode,
	output map[string]interface{}) (*model.FlowNode, bool) {
	edges := version.EdgesFrom(node.ID)
	if len(edges) == 0 {
		return nil, true
	}

	if node.Category == constants.NodeCategoryCondition {
		if conditionMet, ok := output[constants.OutputKeyConditionMet].(bool); ok {
			var branch *model.FlowEdge
			if conditionMet {
				branch = findEdgeByTokens(edges, constants.AffirmativeEdgeTokens)
			} else {
				branch = findEdgeByTokens(edges, constants.NegativeEdgeTokens)
			}
			if branch != nil {
				next := version.NodeByID(branch.TargetNodeID)
				return next, next != nil
			}
		}
	}

	next := version.NodeByID(edges[0].TargetNodeID)
	return next, next != nil
}

// findEdgeByTokens returns the first edge whose label or source port contains one
// of the tokens, case-insensitively.
func findEdgeByTokens(edges []model.FlowEdge, tokens []string) *model.FlowEdge {
	for i := range edges {
		label := strings.ToLower(edges[i].Label)
		port := strings.ToLower(edges[i].SourcePort)
		for _, token := range tokens {
			if strings.Contains(label, token) || strings.Contains(port, token) {
				return &edges[i]
			}
		}
	}
	return nil
}
