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
	"fmt"
	"io"
	"strings"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/rulego/sqldag/dag"
	"github.com/rulego/sqldag/exec"
	"github.com/rulego/sqldag/logger"
	"github.com/rulego/sqldag/parser"
	"github.com/rulego/sqldag/plan"
	"github.com/rulego/sqldag/planner"
	"github.com/rulego/sqldag/types"
)

// Compiler 将序列化的标量函数调用编译为引擎原语DAG。
// 一个Compiler可以被多个goroutine同时使用，每次编译使用独立的Builder。
// 默认使用进程级日志记录器，WithLogLevel会改变所有共享它的Compiler的级别。
//
// 使用示例:
//
//	c := sqldag.New()
//	res, err := c.CompileText("sequence(start, end)", schema)
//	fmt.Println(res.Explain())
type Compiler struct {
	registry         *parser.Registry
	logger           logger.Logger
	maxRangeElements int
	mem              memory.Allocator
}

// Result 编译结果: 共享的Builder与每个表达式的根节点
type Result struct {
	Builder *dag.Builder
	Outputs []*dag.Node
	Columns []types.Column
}

// New 创建一个新的编译器实例。
//
// 参数:
//   - options: 可变长度的配置选项
//
// 示例:
//
//	// 默认实例
//	c := sqldag.New()
//
//	// 调试日志
//	c := sqldag.New(sqldag.WithLogLevel(logger.DEBUG))
func New(options ...Option) *Compiler {
	c := &Compiler{
		registry:         parser.Default(),
		logger:           logger.GetDefault(),
		maxRangeElements: types.DefaultMaxRangeElements,
		mem:              memory.DefaultAllocator,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// NewFromConfig 根据配置创建编译器
func NewFromConfig(cfg types.Config, output io.Writer) (*Compiler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return New(
		WithLogger(logger.NewLogger(level, output)),
		WithMaxRangeElements(cfg.MaxRangeElements),
	), nil
}

// Registry 返回编译器使用的处理器注册表
func (c *Compiler) Registry() *parser.Registry {
	return c.registry
}

// Compile 将计划中的全部表达式编译到同一个Builder中。
//
// 返回值:
//   - *Result: 共享Builder及各表达式的根节点
//   - error: ArityMismatch、UnsupportedFunction 或 TypeMismatch 等编译错误
func (c *Compiler) Compile(p *plan.Plan) (*Result, error) {
	pl, err := planner.New(p, planner.WithRegistry(c.registry), planner.WithLogger(c.logger))
	if err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	columns, err := p.Columns()
	if err != nil {
		return nil, err
	}
	b := dag.NewBuilder()
	outputs, err := pl.Build(b)
	if err != nil {
		return nil, err
	}
	return &Result{Builder: b, Outputs: outputs, Columns: columns}, nil
}

// CompileText 编译单个文本表达式，例如 "sequence(a, b, 2)"。
//
// 示例:
//
//	schema, _ := types.ParseSchema("a:Int32,b:Nullable(Int32)")
//	res, err := c.CompileText("sequence(a, b)", schema)
func (c *Compiler) CompileText(src string, schema []types.Column) (*Result, error) {
	p, err := plan.ParseText(src, schema)
	if err != nil {
		return nil, err
	}
	return c.Compile(p)
}

// Evaluate 使用参考求值器逐行计算所有输出。
// rows 中每一行按 Result.Columns 的顺序给出输入值，nil 表示 NULL。
// 返回值按输出、行组织: out[i][r] 为第 i 个输出在第 r 行的值。
func (c *Compiler) Evaluate(res *Result, rows [][]interface{}) ([][]interface{}, error) {
	rec, err := exec.NewRecord(c.mem, res.Columns, rows)
	if err != nil {
		return nil, err
	}
	defer rec.Release()

	ev := exec.New(
		exec.WithAllocator(c.mem),
		exec.WithCatalog(res.Builder.Catalog()),
		exec.WithMaxRangeElements(c.maxRangeElements),
	)
	return ev.EvalAll(res.Outputs, rec)
}

// List 返回所有输出的扁平节点清单
func (r *Result) List() string {
	return dag.DumpString(r.Outputs...)
}

// Explain 返回所有输出的树形展示
func (r *Result) Explain() string {
	return dag.Explain(r.Outputs...)
}

// Format 按 "tree" 或 "list" 格式输出
func (r *Result) Format(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "tree":
		return r.Explain(), nil
	case "list":
		return r.List(), nil
	default:
		return "", fmt.Errorf("unknown output format %q", format)
	}
}
