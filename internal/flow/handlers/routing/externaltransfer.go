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

// Package routing implements the node handlers that move a call to another destination.
package routing

import (
	"context"
	"regexp"

	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
	"github.com/voxkit/crossbar/internal/provider"
	"github.com/voxkit/crossbar/internal/system/log"
)

// E.164 with an optional leading plus.
var phoneNumberRegex = regexp.MustCompile(`^\+?[1-9][0-9]{6,14}$`)

// ExternalTransferHandler bridges the call to an external destination number.
type ExternalTransferHandler struct {
	telephony provider.TelephonyProviderInterface
}

// NewExternalTransferHandler creates a new external transfer handler.
func NewExternalTransferHandler(telephony provider.TelephonyProviderInterface) *ExternalTransferHandler {
	return &ExternalTransferHandler{
		telephony: telephony,
	}
}

// Type returns the node type of the handler.
func (h *ExternalTransferHandler) Type() constants.NodeType {
	return constants.NodeTypeExternalTransfer
}

// Category returns the node category of the handler.
func (h *ExternalTransferHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryRouting
}

// Execute validates the destination and dials it through the telephony provider.
func (h *ExternalTransferHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	logger := log.GetLogger().With(log.String(log.LoggerKeyComponentName, "ExternalTransferHandler"),
		log.String(log.LoggerKeyCallID, nodeCtx.Context.CallID))

	config, err := model.DecodeNodeConfig[model.ExternalTransferConfig](nodeCtx.Node)
	if err != nil {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig, err.Error()), nil
	}

	if !phoneNumberRegex.MatchString(config.Destination) {
		logger.Debug("Rejecting transfer to invalid destination", log.String("destination",
			log.MaskString(config.Destination)))
		return model.NewFailureResponse(constants.FailureCodeInvalidPhoneNumber,
			"transfer destination is not a valid phone number"), nil
	}

	outcome, err := h.telephony.Dial(ctx, nodeCtx.Context.CallID, config.Destination)
	if err != nil {
		logger.Error("Error while dialing transfer destination", log.Error(err))
		return model.NewFailureResponse(constants.FailureCodeTransferFailed, err.Error()), nil
	}

	output := map[string]interface{}{
		"destination":     config.Destination,
		"transferOutcome": string(outcome),
	}

	// Only a connected transfer lets the traversal continue past this node.
	if outcome != provider.DialOutcomeConnected {
		return &model.NodeResponse{
			Status:        constants.NodeStatusFailure,
			Output:        output,
			FailureCode:   constants.FailureCodeTransferFailed,
			FailureReason: "transfer ended with outcome " + string(outcome),
		}, nil
	}

	return model.NewCompleteResponse(output), nil
}
