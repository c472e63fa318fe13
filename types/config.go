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

package types

import (
	"fmt"
	"strings"
)

// DefaultMaxRangeElements caps the number of elements a single range
// invocation may produce in the reference evaluator.
const DefaultMaxRangeElements = 1 << 20

// Config 编译与调试配置
type Config struct {
	// 日志级别: debug, info, warn, error, off
	LogLevel string `json:"logLevel" mapstructure:"log-level" yaml:"logLevel"`
	// explain 输出格式: tree 或 list
	OutputFormat string `json:"outputFormat" mapstructure:"format" yaml:"outputFormat"`
	// range 单次调用最多产生的元素个数
	MaxRangeElements int `json:"maxRangeElements" mapstructure:"max-range-elements" yaml:"maxRangeElements"`
	// 输入列定义, 形如 "a:Int32,b:Nullable(Int32)"
	Schema string `json:"schema" mapstructure:"schema" yaml:"schema"`
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return Config{
		LogLevel:         "warn",
		OutputFormat:     "tree",
		MaxRangeElements: DefaultMaxRangeElements,
	}
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error", "off":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	switch c.OutputFormat {
	case "tree", "list":
	default:
		return fmt.Errorf("invalid output format %q", c.OutputFormat)
	}
	if c.MaxRangeElements <= 0 {
		return fmt.Errorf("maxRangeElements must be positive, got %d", c.MaxRangeElements)
	}
	return nil
}

// Column is a named, typed input column.
type Column struct {
	Name string
	Type DataType
}

// ParseSchema parses "a:Int32,b:Nullable(Int32)". Commas inside parentheses
// belong to the type.
func ParseSchema(s string) ([]Column, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var (
		cols  []Column
		depth int
		start int
	)
	parts := make([]string, 0, 4)
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])

	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		name, typeName, ok := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid column definition %q, expected name:Type", part)
		}
		if seen[name] {
			return nil, fmt.Errorf("duplicate column %q", name)
		}
		seen[name] = true
		t, err := Parse(typeName)
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", name, err)
		}
		cols = append(cols, Column{Name: name, Type: t})
	}
	return cols, nil
}
