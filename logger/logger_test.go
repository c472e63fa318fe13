/*
 * Copyright 2025 The RuleGo Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package logger

import (
	"bytes"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLevel_String 测试日志级别的字符串表示
func TestLevel_String(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{DEBUG, "DEBUG"},
		{INFO, "INFO"},
		{WARN, "WARN"},
		{ERROR, "ERROR"},
		{OFF, "OFF"},
		{Level(999), "UNKNOWN"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, test.level.String())
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", " warn ", "warning", "Error", "off"} {
		_, err := ParseLevel(s)
		assert.NoError(t, err, s)
	}
	lvl, _ := ParseLevel("warning")
	assert.Equal(t, WARN, lvl)
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

// TestNewLogger 测试创建新的日志器
func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(INFO, &buf)
	require.NotNil(t, logger)

	logger.Info("dispatch %s", "sequence")
	output := buf.String()
	assert.Contains(t, output, "dispatch sequence")
	assert.Contains(t, output, "[INFO]")
}

// TestDefaultLogger_LevelFiltering 测试级别过滤
func TestDefaultLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(WARN, &buf)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "[WARN]")
	assert.Contains(t, output, "warn message")
	assert.Contains(t, output, "[ERROR]")
	assert.Contains(t, output, "error message")
}

// TestDefaultLogger_SetLevel 测试动态调整级别
func TestDefaultLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(ERROR, &buf)

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.SetLevel(DEBUG)
	logger.Debug("visible %d", 42)
	assert.Contains(t, buf.String(), "visible 42")
	assert.Contains(t, buf.String(), "[DEBUG]")
}

// TestDefaultLogger_OFFLevel 测试关闭日志
func TestDefaultLogger_OFFLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(OFF, &buf)

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")
	assert.Empty(t, buf.String())
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(INFO, &buf)
	logger.Info("compiled")

	line := strings.TrimSpace(buf.String())
	pattern := regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}\s+\[INFO\]\s+compiled$`)
	assert.Regexp(t, pattern, line)
}

// TestNewDiscardLogger 测试丢弃日志器
func TestNewDiscardLogger(t *testing.T) {
	logger := NewDiscardLogger()
	require.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.Debug("x")
		logger.Info("x")
		logger.Warn("x")
		logger.Error("x")
		logger.SetLevel(DEBUG)
	})
}

// TestGlobalLogger 测试全局日志器
func TestGlobalLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	var buf bytes.Buffer
	SetDefault(NewLogger(DEBUG, &buf))

	Debug("global debug")
	Info("global info")
	Warn("global warn")
	Error("global error")

	output := buf.String()
	for _, msg := range []string{"global debug", "global info", "global warn", "global error"} {
		assert.Contains(t, output, msg)
	}
}

// TestConcurrentLogging 测试并发写日志
func TestConcurrentLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(INFO, &buf)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.Info("goroutine %d message %d", id, j)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 100, strings.Count(buf.String(), "[INFO]"))
}
