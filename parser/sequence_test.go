package parser_test

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sqldag/dag"
	"github.com/rulego/sqldag/exec"
	"github.com/rulego/sqldag/logger"
	"github.com/rulego/sqldag/parser"
	"github.com/rulego/sqldag/plan"
	"github.com/rulego/sqldag/planner"
	"github.com/rulego/sqldag/types"
)

func compileText(t *testing.T, src, schema string) (*dag.Builder, *dag.Node) {
	t.Helper()
	cols, err := types.ParseSchema(schema)
	require.NoError(t, err)
	p, err := plan.ParseText(src, cols)
	require.NoError(t, err)
	return compilePlan(t, p)
}

func compilePlan(t *testing.T, p *plan.Plan) (*dag.Builder, *dag.Node) {
	t.Helper()
	pl, err := planner.New(p, planner.WithLogger(logger.NewDiscardLogger()))
	require.NoError(t, err)
	b := dag.NewBuilder()
	out, err := pl.Build(b)
	require.NoError(t, err)
	require.Len(t, out, 1)
	return b, out[0]
}

func evaluate(t *testing.T, root *dag.Node, schema string, rows [][]interface{}) []interface{} {
	t.Helper()
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	cols, err := types.ParseSchema(schema)
	require.NoError(t, err)
	rec, err := exec.NewRecord(mem, cols, rows)
	require.NoError(t, err)
	defer rec.Release()

	values, err := exec.New(exec.WithAllocator(mem)).EvalValues(root, rec)
	require.NoError(t, err)
	return values
}

func ints(vs ...int64) []interface{} {
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = v
	}
	return out
}

func seq(from, to int64) []interface{} {
	var vs []int64
	for v := from; v <= to; v++ {
		vs = append(vs, v)
	}
	return ints(vs...)
}

const intSchema = "start:Int32,end:Int32,step:Int32"

func TestSequenceTwoArguments(t *testing.T) {
	_, root := compileText(t, "sequence(start, end)", intSchema)
	assert.Equal(t, "Array(Int64)", root.Type.Name())

	got := evaluate(t, root, intSchema, [][]interface{}{
		{1, 9, 0},
		{1, 10, 0},
		{5, 1, 0},
		{3, 3, 0},
		{-2, 2, 0},
	})
	want := []interface{}{
		seq(1, 9),
		seq(1, 10),
		ints(5, 4, 3, 2, 1),
		ints(3),
		seq(-2, 2),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sequence mismatch (-want +got):\n%s", diff)
	}
}

func TestSequenceWithStep(t *testing.T) {
	_, root := compileText(t, "sequence(start, end, step)", intSchema)

	tests := []struct {
		name string
		row  []interface{}
		want []interface{}
	}{
		{"inclusive", []interface{}{1, 10, 3}, ints(1, 4, 7, 10)},
		{"exclusive", []interface{}{1, 9, 3}, ints(1, 4, 7)},
		{"descending exclusive", []interface{}{10, 1, -4}, ints(10, 6, 2)},
		{"descending inclusive", []interface{}{10, 2, -4}, ints(10, 6, 2)},
		{"single element", []interface{}{4, 4, 2}, ints(4)},
		{"step larger than span", []interface{}{1, 3, 5}, ints(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := evaluate(t, root, intSchema, [][]interface{}{tt.row})
			if diff := cmp.Diff([]interface{}{tt.want}, got); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestSequenceNullRows(t *testing.T) {
	const schema = "start:Nullable(Int32),end:Nullable(Int32),step:Nullable(Int32)"
	_, root := compileText(t, "sequence(start, end, step)", schema)
	assert.Equal(t, "Nullable(Array(Int64))", root.Type.Name())

	got := evaluate(t, root, schema, [][]interface{}{
		{nil, 5, 1},
		{1, nil, 1},
		{1, 5, nil},
		{nil, nil, nil},
		{5, 1, nil},
		{1, 10, 3},
		{1, 9, 3},
	})
	want := []interface{}{nil, nil, nil, nil, nil, ints(1, 4, 7, 10), ints(1, 4, 7)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSequenceNullRowsDefaultStep(t *testing.T) {
	const schema = "start:Int32,end:Nullable(Int32)"
	_, root := compileText(t, "sequence(start, end)", schema)

	got := evaluate(t, root, schema, [][]interface{}{
		{1, nil},
		{1, 4},
		{4, 1},
	})
	want := []interface{}{nil, seq(1, 4), ints(4, 3, 2, 1)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSequenceNullLiteral(t *testing.T) {
	_, root := compileText(t, "sequence(start, end, nil)", intSchema)
	got := evaluate(t, root, intSchema, [][]interface{}{{1, 5, 2}})
	assert.Equal(t, []interface{}{nil}, got)
}

func countFunctions(roots ...*dag.Node) map[string]int {
	counts := make(map[string]int)
	for _, n := range dag.Reachable(roots...) {
		switch n.Kind {
		case dag.KindFunction:
			counts[n.Function]++
		case dag.KindConstant:
			if n.Value == nil {
				counts["NULL"]++
			}
		}
	}
	return counts
}

func TestSequenceNoNullGuards(t *testing.T) {
	for _, src := range []string{"sequence(start, end)", "sequence(start, end, step)"} {
		t.Run(src, func(t *testing.T) {
			_, root := compileText(t, src, intSchema)
			counts := countFunctions(root)
			for _, fn := range []string{"isNull", "assumeNotNull", "multiIf", "NULL"} {
				assert.Zero(t, counts[fn], fn)
			}
			assert.Equal(t, "if", root.Function)
			assert.False(t, root.IsNullable())
		})
	}
}

func TestSequenceGuardsOnlyNullableArguments(t *testing.T) {
	_, root := compileText(t, "sequence(start, end, step)", "start:Int32,end:Nullable(Int32),step:Int32")
	require.Equal(t, "multiIf", root.Function)
	require.Len(t, root.Children, 5)
	assert.Equal(t, "isNull(end)", root.Children[0].Name)
	assert.Nil(t, root.Children[1].Value)

	counts := countFunctions(root)
	assert.Equal(t, 1, counts["isNull"])
	assert.Equal(t, 1, counts["assumeNotNull"])
}

func TestSequenceGolden(t *testing.T) {
	nullablePlan, err := plan.DecodeBytes([]byte(`
extensions:
  - {anchor: 1, name: "sequence:i32_i32_i32"}
schema:
  - {name: start, type: "Nullable(Int32)"}
  - {name: end, type: Int32}
  - {name: step, type: "Nullable(Int32)"}
expressions:
  - scalar_function:
      function_reference: 1
      output_type: "Nullable(Array(Int64))"
      arguments:
        - selection: {field: 0}
        - selection: {field: 1}
        - selection: {field: 2}
`))
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	_, root := compileText(t, "sequence(start, end)", "start:Int32,end:Int32")
	g.Assert(t, "sequence_default_step", []byte(dag.DumpString(root)))

	_, root = compilePlan(t, nullablePlan)
	g.Assert(t, "sequence_nullable", []byte(dag.DumpString(root)))
}

func TestSequenceOutputType(t *testing.T) {
	p, err := plan.DecodeBytes([]byte(`
extensions: [{anchor: 1, name: sequence}]
schema: [{name: start, type: Int32}, {name: end, type: Int32}]
expressions:
  - scalar_function:
      function_reference: 1
      output_type: "Nullable(Array(Int64))"
      arguments: [{selection: {field: 0}}, {selection: {field: 1}}]
`))
	require.NoError(t, err)
	_, root := compilePlan(t, p)
	assert.Equal(t, "_CAST", root.Function)
	assert.Equal(t, "Nullable(Array(Int64))", root.Type.Name())

	got := evaluate(t, root, "start:Int32,end:Int32", [][]interface{}{{2, 4}})
	assert.Equal(t, []interface{}{seq(2, 4)}, got)
}

func TestSequenceArity(t *testing.T) {
	cols, err := types.ParseSchema(intSchema)
	require.NoError(t, err)

	for _, src := range []string{"sequence(start)", "sequence(start, end, step, step)"} {
		t.Run(src, func(t *testing.T) {
			p, err := plan.ParseText(src, cols)
			require.NoError(t, err)
			pl, err := planner.New(p, planner.WithLogger(logger.NewDiscardLogger()))
			require.NoError(t, err)

			b := dag.NewBuilder()
			h := parser.NewSequenceParser(pl)
			_, err = h.Parse(p.Expressions[0].ScalarFunction, b)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrArityMismatch))
			assert.True(t, errors.Is(err, &types.CompileError{Kind: types.ErrorKindArityMismatch, Function: "sequence"}))
			assert.Contains(t, err.Error(), "requires 2 or 3 arguments")
			assert.Zero(t, b.Len())
		})
	}
}

func TestSequenceTypeMismatch(t *testing.T) {
	cols, err := types.ParseSchema("start:Float64,end:Float64")
	require.NoError(t, err)
	p, err := plan.ParseText("sequence(start, end)", cols)
	require.NoError(t, err)
	pl, err := planner.New(p, planner.WithLogger(logger.NewDiscardLogger()))
	require.NoError(t, err)

	b := dag.NewBuilder()
	_, err = pl.Build(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrTypeMismatch))
	assert.Zero(t, b.Len())
}
