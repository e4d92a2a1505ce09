package mem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type span struct {
	Offset uint32
	Length uint32
	Kind   uint8
}

type withString struct {
	Name string
}

func TestReserveTyped(t *testing.T) {
	a := newTestArena(t, 0)
	_, err := a.Reserve(1, 1)
	require.NoError(t, err)

	s, err := Reserve[span](a)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Zero(t, uintptr(unsafe.Pointer(s))%unsafe.Alignof(span{}))
	assert.Equal(t, span{}, *s)

	s.Offset, s.Length, s.Kind = 7, 3, 1
	again, err := Reserve[span](a)
	require.NoError(t, err)
	assert.NotSame(t, s, again)
	assert.Equal(t, uint32(7), s.Offset)
}

func TestReserveTyped_ClearsReusedMemory(t *testing.T) {
	a := newTestArena(t, 0)
	cp := a.Checkpoint()
	v, err := Reserve[uint64](a)
	require.NoError(t, err)
	*v = 0xFFFF

	a.Rollback(cp)
	w, err := Reserve[uint64](a)
	require.NoError(t, err)
	assert.Zero(t, *w)
}

func TestReserveSlice(t *testing.T) {
	a := newTestArena(t, 0)
	xs, err := ReserveSlice[int64](a, 16)
	require.NoError(t, err)
	require.Len(t, xs, 16)
	for i := range xs {
		xs[i] = int64(i * i)
	}
	assert.Equal(t, int64(225), xs[15])

	empty, err := ReserveSlice[int64](a, 0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestReserveTyped_RejectsPointers(t *testing.T) {
	a := newTestArena(t, 0)

	_, err := Reserve[withString](a)
	assert.ErrorIs(t, err, ErrPointerType)

	_, err = Reserve[*int](a)
	assert.ErrorIs(t, err, ErrPointerType)

	_, err = ReserveSlice[[]byte](a, 2)
	assert.ErrorIs(t, err, ErrPointerType)

	_, err = Reserve[[4]uint16](a)
	assert.NoError(t, err)
}
