package costs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVectorRequiresIr(t *testing.T) {
	_, err := NewVector([]EventKind{Dr, Dw})
	require.Error(t, err)

	_, err = NewVector(nil)
	require.Error(t, err)

	v, err := NewVector([]EventKind{Ir, Dr, Dw})
	require.NoError(t, err)
	assert.Equal(t, []EventKind{Ir, Dr, Dw}, v.Schema())
}

func TestParseSchema(t *testing.T) {
	schema := ParseSchema("events: Ir Dr Dw I1mr D1mr D1mw ILmr DLmr DLmw")
	// The parser hands ParseSchema the whole header line; the literal
	// "events:" token is just another unrecognized field and is dropped.
	assert.Equal(t, []EventKind{Ir, Dr, Dw, I1mr, D1mr, D1mw, ILmr, DLmr, DLmw}, schema)
}

func TestVectorAddRowZeroPadsShortRows(t *testing.T) {
	v, err := NewVector([]EventKind{Ir, Dr, Dw})
	require.NoError(t, err)

	require.NoError(t, v.AddRow([]string{"100", "20"}))

	ir, ok := v.Get(Ir)
	require.True(t, ok)
	assert.EqualValues(t, 100, ir)

	dr, ok := v.Get(Dr)
	require.True(t, ok)
	assert.EqualValues(t, 20, dr)

	dw, ok := v.Get(Dw)
	require.True(t, ok)
	assert.EqualValues(t, 0, dw)
}

func TestVectorAddRowAccumulates(t *testing.T) {
	v, err := NewVector([]EventKind{Ir, Dr, Dw})
	require.NoError(t, err)

	require.NoError(t, v.AddRow([]string{"100", "20", "5"}))
	require.NoError(t, v.AddRow([]string{"50", "10", "2"}))

	assert.EqualValues(t, 150, v.MustGet(Ir))
	assert.EqualValues(t, 30, v.MustGet(Dr))
	assert.EqualValues(t, 7, v.MustGet(Dw))
}

func TestVectorAddRowRejectsNonDigit(t *testing.T) {
	v, err := NewVector([]EventKind{Ir})
	require.NoError(t, err)
	require.Error(t, v.AddRow([]string{"not-a-number"}))
}

func TestVectorAdd(t *testing.T) {
	a, err := NewVector([]EventKind{Ir, Dr})
	require.NoError(t, err)
	require.NoError(t, a.AddRow([]string{"10", "1"}))

	b, err := NewVector([]EventKind{Ir, Dr})
	require.NoError(t, err)
	require.NoError(t, b.AddRow([]string{"5", "2"}))

	require.NoError(t, a.Add(b))
	assert.EqualValues(t, 15, a.MustGet(Ir))
	assert.EqualValues(t, 3, a.MustGet(Dr))
}

func TestVectorAddSchemaMismatch(t *testing.T) {
	a, err := NewVector([]EventKind{Ir, Dr})
	require.NoError(t, err)
	b, err := NewVector([]EventKind{Ir, Dw})
	require.NoError(t, err)

	require.Error(t, a.Add(b))
}

func TestVectorClone(t *testing.T) {
	a, err := NewVector([]EventKind{Ir})
	require.NoError(t, err)
	require.NoError(t, a.AddRow([]string{"7"}))

	b := a.Clone()
	require.NoError(t, b.AddRow([]string{"1"}))

	assert.EqualValues(t, 7, a.MustGet(Ir))
	assert.EqualValues(t, 8, b.MustGet(Ir))
}
