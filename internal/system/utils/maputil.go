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

package utils

import (
	"dario.cat/mergo"
)

// MergeVariableMaps merges src into dst with src values taking precedence.
// Top-level keys are assigned shallowly; nested map values under the same
// key are merged with override semantics.
func MergeVariableMaps(dst, src map[string]interface{}) (map[string]interface{}, error) {
	if dst == nil {
		dst = make(map[string]interface{})
	}
	if len(src) == 0 {
		return dst, nil
	}

	for key, value := range src {
		existing, found := dst[key]
		if !found {
			dst[key] = value
			continue
		}

		existingMap, existingIsMap := existing.(map[string]interface{})
		valueMap, valueIsMap := value.(map[string]interface{})
		if existingIsMap && valueIsMap {
			merged := make(map[string]interface{}, len(existingMap))
			for k, v := range existingMap {
				merged[k] = v
			}
			if err := mergo.Merge(&merged, valueMap, mergo.WithOverride); err != nil {
				return nil, err
			}
			dst[key] = merged
			continue
		}

		dst[key] = value
	}

	return dst, nil
}

// DeepCopyVariableMap creates a copy of a variables map. Nested maps are
// copied recursively; all other values are copied by assignment.
func DeepCopyVariableMap(src map[string]interface{}) map[string]interface{} {
	if src == nil {
		return nil
	}
	dst := make(map[string]interface{}, len(src))
	for k, v := range src {
		if nested, ok := v.(map[string]interface{}); ok {
			dst[k] = DeepCopyVariableMap(nested)
			continue
		}
		dst[k] = v
	}
	return dst
}
