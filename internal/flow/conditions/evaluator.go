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

// Package conditions implements the condition evaluator used by branching nodes.
package conditions

import (
	"fmt"
	"strconv"
	"strings"
)

// Operator names supported by the evaluator. The equality operators compare
// the rendered string forms of both operands; the ordering operators coerce
// both sides to numbers.
const (
	OperatorEquals      = "equals"
	OperatorNotEquals   = "notEquals"
	OperatorGreaterThan = "greaterThan"
	OperatorLessThan    = "lessThan"
	OperatorStartsWith  = "startsWith"
	OperatorContains    = "contains"
	OperatorBetween     = "between"
	OperatorOutside     = "outside"
)

// Condition describes a single predicate over the execution variables.
type Condition struct {
	Name        string      `json:"name,omitempty"`
	Variable    string      `json:"variable"`
	Operator    string      `json:"operator"`
	Value       interface{} `json:"value,omitempty"`
	WindowStart string      `json:"windowStart,omitempty"`
	WindowEnd   string      `json:"windowEnd,omitempty"`
}

// Evaluate applies the condition against the given variables. A missing variable,
// an unknown operator, or a value that cannot be coerced to the required type
// evaluates to false rather than an error.
func Evaluate(cond Condition, variables map[string]interface{}) bool {
	value, ok := variables[cond.Variable]
	if !ok {
		return false
	}

	switch cond.Operator {
	case OperatorEquals:
		return asString(value) == asString(cond.Value)
	case OperatorNotEquals:
		return asString(value) != asString(cond.Value)
	case OperatorGreaterThan:
		left, right, ok := coerceNumericPair(value, cond.Value)
		return ok && left > right
	case OperatorLessThan:
		left, right, ok := coerceNumericPair(value, cond.Value)
		return ok && left < right
	case OperatorStartsWith:
		return strings.HasPrefix(asString(value), asString(cond.Value))
	case OperatorContains:
		return strings.Contains(asString(value), asString(cond.Value))
	case OperatorBetween:
		minute, start, end, ok := coerceWindow(value, cond.WindowStart, cond.WindowEnd)
		return ok && WithinWindow(minute, start, end)
	case OperatorOutside:
		minute, start, end, ok := coerceWindow(value, cond.WindowStart, cond.WindowEnd)
		return ok && !WithinWindow(minute, start, end)
	default:
		return false
	}
}

func coerceNumericPair(left, right interface{}) (float64, float64, bool) {
	lNum, lOK := coerceNumeric(left)
	rNum, rOK := coerceNumeric(right)
	return lNum, rNum, lOK && rOK
}

func coerceNumeric(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func asString(value interface{}) string {
	if value == nil {
		return ""
	}
	if str, ok := value.(string); ok {
		return str
	}
	return fmt.Sprintf("%v", value)
}

// coerceWindow resolves the variable value and the window bounds to minutes since midnight.
func coerceWindow(value interface{}, start, end string) (int, int, int, bool) {
	minute, ok := ToMinutesOfDay(value)
	if !ok {
		return 0, 0, 0, false
	}
	startMin, ok := ToMinutesOfDay(start)
	if !ok {
		return 0, 0, 0, false
	}
	endMin, ok := ToMinutesOfDay(end)
	if !ok {
		return 0, 0, 0, false
	}
	return minute, startMin, endMin, true
}

// WithinWindow checks minute membership in [start, end). A window whose end is
// before its start wraps past midnight.
func WithinWindow(minute, start, end int) bool {
	if end < start {
		return minute >= start || minute < end
	}
	return minute >= start && minute < end
}

// ToMinutesOfDay converts a clock value to minutes since midnight. It accepts
// "HH:MM" strings and plain numeric minute counts.
func ToMinutesOfDay(value interface{}) (int, bool) {
	if num, ok := coerceNumericValueOnly(value); ok {
		if num < 0 || num >= 24*60 {
			return 0, false
		}
		return num, true
	}

	str, ok := value.(string)
	if !ok {
		return 0, false
	}
	parts := strings.Split(strings.TrimSpace(str), ":")
	if len(parts) != 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func coerceNumericValueOnly(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
