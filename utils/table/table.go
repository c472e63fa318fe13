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
	"fmt"
	"io"
	"strings"
)

// minWidth is the narrowest a column is ever printed
const minWidth = 4

// Write prints rows as a bordered table followed by a row count.
// Missing trailing cells print as empty.
func Write(w io.Writer, columns []string, rows [][]string) {
	if len(columns) == 0 {
		fmt.Fprintf(w, "(%d rows)\n", len(rows))
		return
	}

	// Calculate maximum width for each column
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = max(len(col), minWidth)
		for _, row := range rows {
			if i < len(row) && len(row[i]) > widths[i] {
				widths[i] = len(row[i])
			}
		}
	}

	WriteBorder(w, widths)
	writeRow(w, widths, columns)
	WriteBorder(w, widths)
	for _, row := range rows {
		writeRow(w, widths, row)
	}
	WriteBorder(w, widths)
	fmt.Fprintf(w, "(%d rows)\n", len(rows))
}

// WriteBorder prints a border line for the given column widths
func WriteBorder(w io.Writer, widths []int) {
	var sb strings.Builder
	sb.WriteString("+")
	for _, width := range widths {
		sb.WriteString(strings.Repeat("-", width+2))
		sb.WriteString("+")
	}
	fmt.Fprintln(w, sb.String())
}

func writeRow(w io.Writer, widths []int, cells []string) {
	var sb strings.Builder
	sb.WriteString("|")
	for i, width := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		fmt.Fprintf(&sb, " %-*s |", width, cell)
	}
	fmt.Fprintln(w, sb.String())
}
