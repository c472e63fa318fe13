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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rulego/sqldag"
	"github.com/rulego/sqldag/functions"
	"github.com/rulego/sqldag/utils/table"
)

func newExplainCommand(opts *rootOptions) *cobra.Command {
	var planFile string
	cmd := &cobra.Command{
		Use:   "explain [expression]",
		Short: "Print the primitive DAG of an expression or plan",
		Example: `  dagc explain "sequence(a, b)" --schema "a:Int32,b:Nullable(Int32)"
  dagc explain --plan plan.yaml --format list`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.compiler(cmd)
			if err != nil {
				return err
			}
			res, err := opts.compile(c, planFile, args)
			if err != nil {
				return err
			}
			out, err := res.Format(opts.cfg.OutputFormat)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&planFile, "plan", "", "YAML or JSON plan file")
	return cmd
}

func newEvalCommand(opts *rootOptions) *cobra.Command {
	var (
		planFile string
		rows     string
		asTable  bool
	)
	cmd := &cobra.Command{
		Use:     "eval [expression]",
		Short:   "Evaluate an expression or plan over input rows",
		Example: `  dagc eval "sequence(a, b)" --schema "a:Int32,b:Nullable(Int32)" --rows "[[1, 5], [3, null]]"`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var input [][]interface{}
			if err := yaml.Unmarshal([]byte(rows), &input); err != nil {
				return fmt.Errorf("rows: %w", err)
			}
			c, err := opts.compiler(cmd)
			if err != nil {
				return err
			}
			res, err := opts.compile(c, planFile, args)
			if err != nil {
				return err
			}
			out, err := c.Evaluate(res, input)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if asTable {
				writeTable(w, res, input, out)
				return nil
			}
			for r := range input {
				cells := make([]string, len(out))
				for i := range out {
					cells[i] = functions.FormatValue(out[i][r])
				}
				fmt.Fprintln(w, strings.Join(cells, "\t"))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&planFile, "plan", "", "YAML or JSON plan file")
	cmd.Flags().StringVar(&rows, "rows", "[]", "input rows as a YAML/JSON list of lists, null for NULL")
	cmd.Flags().BoolVar(&asTable, "table", false, "print inputs and outputs as a table")
	return cmd
}

// writeTable prints the input columns followed by one column per output.
func writeTable(w io.Writer, res *sqldag.Result, input, out [][]interface{}) {
	columns := make([]string, 0, len(res.Columns)+len(out))
	for _, c := range res.Columns {
		columns = append(columns, c.Name)
	}
	for i := range out {
		columns = append(columns, fmt.Sprintf("out%d", i))
	}
	rows := make([][]string, len(input))
	for r, row := range input {
		cells := make([]string, 0, len(columns))
		for _, v := range row {
			cells = append(cells, functions.FormatValue(v))
		}
		for i := range out {
			cells = append(cells, functions.FormatValue(out[i][r]))
		}
		rows[r] = cells
	}
	table.Write(w, columns, rows)
}

func newFunctionsCommand(opts *rootOptions) *cobra.Command {
	var primitives bool
	cmd := &cobra.Command{
		Use:   "functions",
		Short: "List registered function handlers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.compiler(cmd)
			if err != nil {
				return err
			}
			names := c.Registry().Names()
			if primitives {
				names = functions.Default().Names()
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&primitives, "primitives", false, "list engine primitives instead of handlers")
	return cmd
}
