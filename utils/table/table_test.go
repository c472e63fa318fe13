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

package table

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestWrite 测试表格输出
func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, []string{"a", "out0"}, [][]string{
		{"1", "[1, 2]"},
		{"NULL", "NULL"},
	})
	want := "" +
		"+------+--------+\n" +
		"| a    | out0   |\n" +
		"+------+--------+\n" +
		"| 1    | [1, 2] |\n" +
		"| NULL | NULL   |\n" +
		"+------+--------+\n" +
		"(2 rows)\n"
	assert.Equal(t, want, buf.String())
}

// TestWriteEdgeCases 测试边缘情况
func TestWriteEdgeCases(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, nil, nil)
	assert.Equal(t, "(0 rows)\n", buf.String())

	// 数据行缺少单元格
	buf.Reset()
	Write(&buf, []string{"x", "y"}, [][]string{{"1"}})
	assert.Contains(t, buf.String(), "| 1    |      |\n")

	// 只有表头
	buf.Reset()
	Write(&buf, []string{"column"}, nil)
	assert.Equal(t, "+--------+\n| column |\n+--------+\n+--------+\n(0 rows)\n", buf.String())
}

func TestWriteBorder(t *testing.T) {
	var buf bytes.Buffer
	WriteBorder(&buf, []int{1, 3})
	assert.Equal(t, "+---+-----+\n", buf.String())

	buf.Reset()
	WriteBorder(&buf, nil)
	assert.Equal(t, "+\n", buf.String())
}
