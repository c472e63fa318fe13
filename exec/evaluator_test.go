package exec

import (
	"errors"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulego/sqldag/dag"
	"github.com/rulego/sqldag/functions"
	"github.com/rulego/sqldag/types"
)

func mustSchema(t *testing.T, s string) []types.Column {
	t.Helper()
	cols, err := types.ParseSchema(s)
	require.NoError(t, err)
	return cols
}

func TestNewRecord(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	cols := mustSchema(t, "a:Int32,b:Nullable(String),c:Array(Int64),d:Bool,e:Float32")
	rec, err := NewRecord(mem, cols, [][]interface{}{
		{1, "x", []interface{}{1, 2}, true, 1.5},
		{2, nil, []interface{}{}, false, 0},
	})
	require.NoError(t, err)
	defer rec.Release()

	assert.Equal(t, int64(2), rec.NumRows())
	assert.True(t, arrow.TypeEqual(arrow.PrimitiveTypes.Int32, rec.Column(0).DataType()))
	assert.True(t, rec.Schema().Field(1).Nullable)
	assert.True(t, arrow.TypeEqual(arrow.ListOf(arrow.PrimitiveTypes.Int64), rec.Column(2).DataType()))

	want := [][]interface{}{
		{int64(1), int64(2)},
		{"x", nil},
		{[]interface{}{int64(1), int64(2)}, []interface{}{}},
		{true, false},
		{1.5, 0.0},
	}
	for i := range want {
		if diff := cmp.Diff(want[i], Values(rec.Column(i))); diff != "" {
			t.Errorf("column %d (-want +got):\n%s", i, diff)
		}
	}
}

func TestNewRecordErrors(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	cols := mustSchema(t, "a:Int32")

	_, err := NewRecord(mem, cols, [][]interface{}{{nil}})
	assert.True(t, errors.Is(err, types.ErrTypeMismatch))
	_, err = NewRecord(mem, cols, [][]interface{}{{1, 2}})
	assert.Error(t, err)
	_, err = NewRecord(mem, cols, [][]interface{}{{int64(1) << 40}})
	assert.Error(t, err)
}

func TestEvalSharedNodesAndArrowOutput(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := dag.NewBuilder()
	a, _ := b.AddInput("a", types.MustParse("Nullable(Int32)"))
	sq, err := b.AddFunction("multiply", a, a)
	require.NoError(t, err)
	sum, err := b.AddFunction("plus", sq, sq)
	require.NoError(t, err)

	rec, err := NewRecord(mem, mustSchema(t, "a:Nullable(Int32)"), [][]interface{}{{3}, {nil}, {-2}})
	require.NoError(t, err)
	defer rec.Release()

	ev := New(WithAllocator(mem))
	out, err := ev.EvalAll([]*dag.Node{sum, sq}, rec)
	require.NoError(t, err)
	assert.Equal(t, []interface{}{int64(18), nil, int64(8)}, out[0])
	assert.Equal(t, []interface{}{int64(9), nil, int64(4)}, out[1])

	arr, err := ev.Eval(sum, rec)
	require.NoError(t, err)
	defer arr.Release()
	ints, ok := arr.(*array.Int64)
	require.True(t, ok)
	assert.Equal(t, int64(18), ints.Value(0))
	assert.True(t, ints.IsNull(1))
}

func TestEvalEagerBranches(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := dag.NewBuilder()
	n, _ := b.AddInput("n", types.MustParse("Int32"))
	zero, _ := b.AddConstant(types.MustParse("Int32"), 0)
	ten, _ := b.AddConstant(types.MustParse("Int32"), 10)
	isZero, _ := b.AddFunction("equals", n, zero)
	div, _ := b.AddFunction("modulo", ten, n)
	guarded, err := b.AddFunction("if", isZero, zero, div)
	require.NoError(t, err)

	rec, err := NewRecord(mem, mustSchema(t, "n:Int32"), [][]interface{}{{3}, {0}})
	require.NoError(t, err)
	defer rec.Release()

	// the discarded branch is still computed for every row
	_, err = New().EvalValues(guarded, rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, functions.ErrDivisionByZero))
}

func TestEvalRangeLimit(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	b := dag.NewBuilder()
	n, _ := b.AddInput("n", types.MustParse("Int64"))
	r, err := b.AddFunction("range", n)
	require.NoError(t, err)

	rec, err := NewRecord(mem, mustSchema(t, "n:Int64"), [][]interface{}{{5}})
	require.NoError(t, err)
	defer rec.Release()

	got, err := New(WithMaxRangeElements(5)).EvalValues(r, rec)
	require.NoError(t, err)
	assert.Len(t, got[0], 5)

	_, err = New(WithMaxRangeElements(4)).EvalValues(r, rec)
	assert.Error(t, err)
}

func TestEvalInputMismatch(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	rec, err := NewRecord(mem, mustSchema(t, "a:Nullable(Int32)"), [][]interface{}{{nil}})
	require.NoError(t, err)
	defer rec.Release()

	tests := []struct {
		name string
		typ  string
		col  string
	}{
		{"missing column", "Int32", "b"},
		{"wrong arrow type", "Int64", "a"},
		{"null in non-nullable", "Int32", "a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := dag.NewBuilder()
			in, _ := b.AddInput(tt.col, types.MustParse(tt.typ))
			_, err := New().EvalValues(in, rec)
			assert.Error(t, err)
		})
	}
}

func TestArrowType(t *testing.T) {
	tests := []struct {
		typ  string
		want arrow.DataType
	}{
		{"Bool", arrow.FixedWidthTypes.Boolean},
		{"UInt16", arrow.PrimitiveTypes.Uint16},
		{"Nullable(Float64)", arrow.PrimitiveTypes.Float64},
		{"String", arrow.BinaryTypes.String},
		{"Array(Nullable(Int8))", arrow.ListOf(arrow.PrimitiveTypes.Int8)},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			got, err := ArrowType(types.MustParse(tt.typ))
			require.NoError(t, err)
			assert.True(t, arrow.TypeEqual(tt.want, got), "got %s", got)
		})
	}
}
