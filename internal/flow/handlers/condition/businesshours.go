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

// Package condition implements the node handlers that branch the flow traversal.
package condition

import (
	"context"
	"strings"
	"time"

	"github.com/voxkit/crossbar/internal/flow/conditions"
	"github.com/voxkit/crossbar/internal/flow/constants"
	"github.com/voxkit/crossbar/internal/flow/model"
)

const holidayDateLayout = "2006-01-02"

// Closure reasons reported in the business hours node output.
const (
	ReasonOpen        = "open"
	ReasonClosedDay   = "closed_day"
	ReasonHoliday     = "holiday"
	ReasonClosedHours = "closed_hours"
)

// BusinessHoursHandler branches on whether the call falls inside the configured
// business hours calendar.
type BusinessHoursHandler struct{}

// NewBusinessHoursHandler creates a new business hours handler.
func NewBusinessHoursHandler() *BusinessHoursHandler {
	return &BusinessHoursHandler{}
}

// Type returns the node type of the handler.
func (h *BusinessHoursHandler) Type() constants.NodeType {
	return constants.NodeTypeBusinessHours
}

// Category returns the node category of the handler.
func (h *BusinessHoursHandler) Category() constants.NodeCategory {
	return constants.NodeCategoryCondition
}

// Execute resolves the call time into the configured timezone and checks it against
// the business days, holiday list, and open window. A closed day takes precedence
// over a holiday, and a holiday over a closed-hours verdict.
func (h *BusinessHoursHandler) Execute(ctx context.Context,
	nodeCtx *model.NodeContext) (*model.NodeResponse, error) {
	config, err := model.DecodeNodeConfig[model.BusinessHoursConfig](nodeCtx.Node)
	if err != nil {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig, err.Error()), nil
	}

	timezone := config.Timezone
	if timezone == "" {
		timezone = nodeCtx.Context.Timezone
	}
	if timezone == "" {
		timezone = "UTC"
	}
	location, err := time.LoadLocation(timezone)
	if err != nil {
		return model.NewFailureResponse(constants.FailureCodeInvalidNodeConfig,
			"unknown timezone: "+timezone), nil
	}

	localTime := nodeCtx.Context.CurrentTime.In(location)

	isOpen, reason := h.evaluate(config, localTime)

	return model.NewCompleteResponse(map[string]interface{}{
		"isOpen":                      isOpen,
		"reason":                      reason,
		"localTime":                   localTime.Format(time.RFC3339),
		constants.OutputKeyConditionMet: isOpen,
	}), nil
}

func (h *BusinessHoursHandler) evaluate(config *model.BusinessHoursConfig, localTime time.Time) (bool, string) {
	if !isBusinessDay(config.BusinessDays, localTime.Weekday()) {
		return false, ReasonClosedDay
	}

	date := localTime.Format(holidayDateLayout)
	for _, holiday := range config.Holidays {
		if holiday == date {
			return false, ReasonHoliday
		}
	}

	openMin, ok := conditions.ToMinutesOfDay(config.OpenTime)
	if !ok {
		return false, ReasonClosedHours
	}
	closeMin, ok := conditions.ToMinutesOfDay(config.CloseTime)
	if !ok {
		return false, ReasonClosedHours
	}

	minute := localTime.Hour()*60 + localTime.Minute()
	if !conditions.WithinWindow(minute, openMin, closeMin) {
		return false, ReasonClosedHours
	}
	return true, ReasonOpen
}

// isBusinessDay matches the weekday against the configured day names. Both full
// names and three-letter abbreviations are accepted, case-insensitively.
func isBusinessDay(businessDays []string, weekday time.Weekday) bool {
	name := strings.ToLower(weekday.String())
	for _, day := range businessDays {
		normalized := strings.ToLower(strings.TrimSpace(day))
		if normalized == name || normalized == name[:3] {
			return true
		}
	}
	return false
}
