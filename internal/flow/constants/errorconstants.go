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

package constants

import (
	"github.com/voxkit/crossbar/internal/system/error/serviceerror"
)

// Client error structs

var ErrorInvalidFlowID = serviceerror.ServiceError{
	Code:             "CFE-60001",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Invalid flow ID provided in the request",
}

var ErrorInvalidCallID = serviceerror.ServiceError{
	Code:             "CFE-60002",
	Type:             serviceerror.ClientErrorType,
	Error:            "Invalid request",
	ErrorDescription: "Invalid call ID provided in the request",
}

var ErrorFlowNotFound = serviceerror.ServiceError{
	Code:             "CFE-60003",
	Type:             serviceerror.ClientErrorType,
	Error:            "Flow not found",
	ErrorDescription: "No flow definition exists for the provided flow ID",
}

var ErrorNoActiveVersion = serviceerror.ServiceError{
	Code:             "CFE-60004",
	Type:             serviceerror.ClientErrorType,
	Error:            "Flow not executable",
	ErrorDescription: "The flow has no active version to execute",
}

var ErrorNoEntryNode = serviceerror.ServiceError{
	Code:             "CFE-60005",
	Type:             serviceerror.ClientErrorType,
	Error:            "Flow not executable",
	ErrorDescription: "The active flow version has no entry node",
}

var ErrorAmbiguousEntryNode = serviceerror.ServiceError{
	Code:             "CFE-60006",
	Type:             serviceerror.ClientErrorType,
	Error:            "Flow not executable",
	ErrorDescription: "The active flow version has more than one entry node",
}

var ErrorConcurrentExecution = serviceerror.ServiceError{
	Code:             "CFE-60007",
	Type:             serviceerror.ClientErrorType,
	Error:            "Execution already in progress",
	ErrorDescription: "Another execution is in progress for the same flow and call",
}

// Server error structs

var ErrorFlowEngineNotInitialized = serviceerror.ServiceError{
	Code:             "CFE-65001",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Flow execution service is not initialized",
}

var ErrorResumeNodeNotFound = serviceerror.ServiceError{
	Code:             "CFE-65003",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "The suspended node no longer exists in the active flow version",
}

var ErrorWhileStoringCallContext = serviceerror.ServiceError{
	Code:             "CFE-65004",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Error while persisting the call execution context",
}

var ErrorWhileRetrievingCallContext = serviceerror.ServiceError{
	Code:             "CFE-65005",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Error while retrieving the call execution context",
}

var ErrorUnsupportedNodeType = serviceerror.ServiceError{
	Code:             "CFE-65007",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "No handler is registered for the node type",
}

var ErrorWhileLoadingFlowDefinitions = serviceerror.ServiceError{
	Code:             "CFE-65008",
	Type:             serviceerror.ServerErrorType,
	Error:            "Something went wrong",
	ErrorDescription: "Error while loading flow definitions from the graph directory",
}
