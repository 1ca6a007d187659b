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

package config

import "sync"

// CrossbarRuntime holds the runtime configuration for the Crossbar server.
type CrossbarRuntime struct {
	CrossbarHome string `yaml:"crossbar_home"`
	Config       Config `yaml:"config"`
}

var (
	runtimeConfig *CrossbarRuntime
	once          sync.Once
)

// InitializeCrossbarRuntime initializes the CrossbarRuntime configuration.
func InitializeCrossbarRuntime(crossbarHome string, config *Config) error {
	once.Do(func() {
		runtimeConfig = &CrossbarRuntime{
			CrossbarHome: crossbarHome,
			Config:       *config,
		}
	})

	return nil
}

// GetCrossbarRuntime returns the CrossbarRuntime configuration.
func GetCrossbarRuntime() *CrossbarRuntime {
	if runtimeConfig == nil {
		panic("CrossbarRuntime is not initialized")
	}
	return runtimeConfig
}

// ResetCrossbarRuntime resets the CrossbarRuntime.
// This should only be used in tests to reset the singleton state.
func ResetCrossbarRuntime() {
	runtimeConfig = nil
	once = sync.Once{}
}
