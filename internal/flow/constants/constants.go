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

// Package constants defines the constants used in the call flow execution service and engine.
package constants

// FlowStatus defines the lifecycle status of a flow definition.
type FlowStatus string

const (
	// FlowStatusDraft indicates that the flow definition is still being authored.
	FlowStatusDraft FlowStatus = "DRAFT"
	// FlowStatusActive indicates that the flow definition is live and eligible for execution.
	FlowStatusActive FlowStatus = "ACTIVE"
	// FlowStatusArchived indicates that the flow definition has been retired.
	FlowStatusArchived FlowStatus = "ARCHIVED"
)

// ExecutionStatus defines the terminal or suspended state of a flow execution.
type ExecutionStatus string

const (
	// ExecutionStatusCompleted indicates that the traversal reached a node with no outgoing edges.
	ExecutionStatusCompleted ExecutionStatus = "COMPLETED"
	// ExecutionStatusFailed indicates that the traversal was stopped by a node or engine failure.
	ExecutionStatusFailed ExecutionStatus = "FAILED"
	// ExecutionStatusSuspended indicates that the traversal is waiting on caller input.
	ExecutionStatusSuspended ExecutionStatus = "SUSPENDED"
	// ExecutionStatusAborted indicates that the execution context was cancelled mid-traversal.
	ExecutionStatusAborted ExecutionStatus = "ABORTED"
)

// NodeCategory defines the handler categories a flow node may belong to.
type NodeCategory string

const (
	// NodeCategoryRouting represents nodes that move the call elsewhere.
	NodeCategoryRouting NodeCategory = "ROUTING"
	// NodeCategoryMedia represents nodes that play or synthesize audio.
	NodeCategoryMedia NodeCategory = "MEDIA"
	// NodeCategoryCondition represents nodes that branch the traversal.
	NodeCategoryCondition NodeCategory = "CONDITION"
	// NodeCategoryIVR represents nodes that present menus to the caller.
	NodeCategoryIVR NodeCategory = "IVR"
	// NodeCategoryQueue represents nodes that hand the call to an agent queue.
	NodeCategoryQueue NodeCategory = "QUEUE"
	// NodeCategoryData represents nodes that collect input from the caller.
	NodeCategoryData NodeCategory = "DATA"
	// NodeCategoryWorkflow represents nodes that end or otherwise control the call.
	NodeCategoryWorkflow NodeCategory = "WORKFLOW"
	// NodeCategoryIntegration represents nodes handled by external integrations.
	NodeCategoryIntegration NodeCategory = "INTEGRATION"
)

// NodeType defines the node types in the flow execution.
type NodeType string

const (
	// NodeTypeExternalTransfer represents a node that dials an external destination.
	NodeTypeExternalTransfer NodeType = "external_transfer"
	// NodeTypeAudioPlayback represents a node that plays a pre-recorded clip.
	NodeTypeAudioPlayback NodeType = "audio_playback"
	// NodeTypeTextToSpeech represents a node that synthesizes speech from text.
	NodeTypeTextToSpeech NodeType = "text_to_speech"
	// NodeTypeBusinessHours represents a node that branches on the business-hours calendar.
	NodeTypeBusinessHours NodeType = "business_hours"
	// NodeTypeCallerCondition represents a node that branches on caller attributes.
	NodeTypeCallerCondition NodeType = "caller_condition"
	// NodeTypeConditional represents a node that branches on execution variables.
	NodeTypeConditional NodeType = "conditional"
	// NodeTypeIVRMenu represents a node that offers a digit menu to the caller.
	NodeTypeIVRMenu NodeType = "ivr_menu"
	// NodeTypeQueueTransfer represents a node that places the call into an agent queue.
	NodeTypeQueueTransfer NodeType = "queue_transfer"
	// NodeTypeCollectInput represents a node that gathers digits or speech from the caller.
	NodeTypeCollectInput NodeType = "collect_input"
	// NodeTypeHangup represents a node that terminates the call.
	NodeTypeHangup NodeType = "hangup"
	// NodeTypePassthrough represents any integration node handled by the passthrough handler.
	NodeTypePassthrough NodeType = "passthrough"
)

// NodeStatus defines the status of a node in the flow execution.
type NodeStatus string

const (
	// NodeStatusComplete indicates that the node has completed its execution successfully.
	NodeStatusComplete NodeStatus = "COMPLETE"
	// NodeStatusInputRequired indicates that the node needs caller input before it can complete.
	NodeStatusInputRequired NodeStatus = "INPUT_REQUIRED"
	// NodeStatusFailure indicates that the node has failed during its execution.
	NodeStatusFailure NodeStatus = "FAILURE"
)

// FailureCode identifies the reason a node or the engine stopped the traversal.
type FailureCode string

const (
	// FailureCodeLoopDetected indicates that the traversal revisited a node within one invocation.
	FailureCodeLoopDetected FailureCode = "LOOP_DETECTED"
	// FailureCodeAborted indicates that the execution context was cancelled.
	FailureCodeAborted FailureCode = "ABORTED"
	// FailureCodeTraversalTimeout indicates that the traversal exceeded the configured deadline.
	FailureCodeTraversalTimeout FailureCode = "TRAVERSAL_TIMEOUT"
	// FailureCodeHandlerNotFound indicates that no handler is registered for the node type.
	FailureCodeHandlerNotFound FailureCode = "HANDLER_NOT_FOUND"
	// FailureCodeInvalidNodeConfig indicates that the node configuration could not be decoded.
	FailureCodeInvalidNodeConfig FailureCode = "INVALID_NODE_CONFIG"
	// FailureCodeInvalidEdgeTarget indicates that an outgoing edge points to a node missing from the graph.
	FailureCodeInvalidEdgeTarget FailureCode = "INVALID_EDGE_TARGET"
	// FailureCodeInvalidPhoneNumber indicates that a transfer destination failed validation.
	FailureCodeInvalidPhoneNumber FailureCode = "INVALID_PHONE_NUMBER"
	// FailureCodeTransferFailed indicates that an external transfer did not connect.
	FailureCodeTransferFailed FailureCode = "TRANSFER_FAILED"
	// FailureCodeMediaFailed indicates that audio playback or synthesis failed.
	FailureCodeMediaFailed FailureCode = "MEDIA_FAILED"
	// FailureCodeQueueNotFound indicates that the configured queue does not exist.
	FailureCodeQueueNotFound FailureCode = "QUEUE_NOT_FOUND"
	// FailureCodeQueueInactive indicates that the configured queue is not accepting calls.
	FailureCodeQueueInactive FailureCode = "QUEUE_INACTIVE"
	// FailureCodeQueueLookupFailed indicates that the queue provider could not be reached.
	FailureCodeQueueLookupFailed FailureCode = "QUEUE_LOOKUP_FAILED"
	// FailureCodeNoAgentsAvailable indicates that the queue has no capacity to take the call.
	FailureCodeNoAgentsAvailable FailureCode = "NO_AGENTS_AVAILABLE"
	// FailureCodeInputTooShort indicates that collected input did not satisfy the minimum length.
	FailureCodeInputTooShort FailureCode = "INPUT_TOO_SHORT"
	// FailureCodeInputFailed indicates that the input provider could not collect a value.
	FailureCodeInputFailed FailureCode = "INPUT_FAILED"
	// FailureCodeInvalidMenuSelection indicates that the caller selected a digit outside the menu.
	FailureCodeInvalidMenuSelection FailureCode = "INVALID_MENU_SELECTION"
	// FailureCodeHandlerError indicates an unclassified handler failure.
	FailureCodeHandlerError FailureCode = "HANDLER_ERROR"
)

const (
	// OutputKeyConditionMet is the output key condition handlers set to drive edge selection.
	OutputKeyConditionMet = "conditionMet"
)

var (
	// AffirmativeEdgeTokens are the tokens that mark an edge as the true branch of a condition node.
	AffirmativeEdgeTokens = []string{"yes", "true", "within"}
	// NegativeEdgeTokens are the tokens that mark an edge as the false branch of a condition node.
	NegativeEdgeTokens = []string{"no", "false", "outside"}
)
