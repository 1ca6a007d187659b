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

package log

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLoggerReturnsSingleton(t *testing.T) {
	first := GetLogger()
	second := GetLogger()

	assert.NotNil(t, first)
	assert.Same(t, first, second)
}

func TestWithReturnsNewLogger(t *testing.T) {
	base := GetLogger()
	derived := base.With(String(LoggerKeyComponentName, "Test"))

	assert.NotSame(t, base, derived)
}

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "k", Value: 1}, Int("k", 1))
	assert.Equal(t, Field{Key: "k", Value: true}, Bool("k", true))

	err := errors.New("boom")
	assert.Equal(t, Field{Key: "error", Value: err}, Error(err))
}

func TestMaskString(t *testing.T) {
	assert.Equal(t, "+**********3", MaskString("+14155550123"))
	assert.Equal(t, "***", MaskString("abc"))
	assert.Equal(t, "", MaskString(""))
}
