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

package sqldag

import (
	"io"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/rulego/sqldag/logger"
	"github.com/rulego/sqldag/parser"
)

// Option 表示对编译器默认行为的修改配置。
type Option func(*Compiler)

// WithLogger 设置自定义日志记录器。
//
// 参数:
//   - log: 实现了logger.Logger接口的日志记录器
//
// 示例:
//
//	customLogger := logger.NewLogger(logger.DEBUG, os.Stderr)
//	c := sqldag.New(sqldag.WithLogger(customLogger))
func WithLogger(log logger.Logger) Option {
	return func(c *Compiler) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithLogLevel 设置日志级别。
//
// 注意: 未配合WithLogger/WithLogOutput使用时，修改的是进程级默认日志记录器
// (logger.GetDefault)，会影响所有共享它的Compiler。需要独立级别时请使用
// WithLogOutput。
//
// 示例:
//
//	// 关闭日志
//	c := sqldag.New(sqldag.WithLogLevel(logger.OFF))
func WithLogLevel(level logger.Level) Option {
	return func(c *Compiler) {
		c.logger.SetLevel(level)
	}
}

// WithLogOutput 设置日志输出目标及级别。
func WithLogOutput(output io.Writer, level logger.Level) Option {
	return func(c *Compiler) {
		c.logger = logger.NewLogger(level, output)
	}
}

// WithDiscardLog 禁用所有日志输出。
func WithDiscardLog() Option {
	return func(c *Compiler) {
		c.logger = logger.NewDiscardLogger()
	}
}

// WithRegistry 使用自定义的处理器注册表代替内置注册表。
//
// 示例:
//
//	r := parser.NewRegistry()
//	_ = parser.RegisterBuiltins(r)
//	_ = r.Register("plus_one", myFactory)
//	r.Freeze()
//	c := sqldag.New(sqldag.WithRegistry(r))
func WithRegistry(r *parser.Registry) Option {
	return func(c *Compiler) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithMaxRangeElements 限制求值时单次 range 调用产生的元素个数
func WithMaxRangeElements(n int) Option {
	return func(c *Compiler) {
		if n > 0 {
			c.maxRangeElements = n
		}
	}
}

// WithAllocator 设置求值时使用的 arrow 内存分配器
func WithAllocator(mem memory.Allocator) Option {
	return func(c *Compiler) {
		if mem != nil {
			c.mem = mem
		}
	}
}
