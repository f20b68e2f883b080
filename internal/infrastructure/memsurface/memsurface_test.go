package memsurface

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/mythforge/internal/domain/native"
	"github.com/younwookim/mythforge/internal/domain/surface"
)

func TestFactory_CreateSurface(t *testing.T) {
	f := NewFactory()

	s, err := f.CreateSurface(1, native.Rect{Width: 4, Height: 2})
	require.NoError(t, err)

	assert.False(t, s.ID().IsEmpty())
	assert.Equal(t, native.Rect{Width: 4, Height: 2}, s.Bounds())
	assert.Equal(t, native.Handle(1), s.(*Surface).Parent())
	assert.Equal(t, 1, f.Live())

	target, ok := f.Resolve(s.ID())
	require.True(t, ok)
	assert.Equal(t, s.Bounds(), target.Bounds())
}

func TestFactory_CreateSurface_Errors(t *testing.T) {
	f := NewFactory()

	_, err := f.CreateSurface(1, native.Rect{Width: 0, Height: 2})
	assert.ErrorIs(t, err, surface.ErrInvalidDimensions)

	_, err = f.CreateSurface(native.Empty, native.Rect{Width: 4, Height: 2})
	assert.ErrorIs(t, err, surface.ErrSurfaceCreation)

	assert.Equal(t, 0, f.Live())
}

func TestSurface_WritePixels(t *testing.T) {
	f := NewFactory()
	s, err := f.CreateSurface(1, native.Rect{Width: 2, Height: 1})
	require.NoError(t, err)
	ms := s.(*Surface)

	require.NoError(t, ms.WritePixels([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, ms.Snapshot().Pix)
	assert.Equal(t, 1, ms.Presents())

	assert.Error(t, ms.WritePixels([]byte{1, 2, 3}), "size mismatch")
	assert.Equal(t, 1, ms.Presents())
}

func TestSurface_Destroy(t *testing.T) {
	f := NewFactory()
	s, err := f.CreateSurface(1, native.Rect{Width: 2, Height: 2})
	require.NoError(t, err)
	id := s.ID()

	s.Destroy()
	s.Destroy()

	assert.Equal(t, native.Empty, s.ID())
	assert.Equal(t, 0, f.Live())
	_, ok := f.Resolve(id)
	assert.False(t, ok)
	assert.Error(t, s.(*Surface).WritePixels(make([]byte, 16)))
	assert.Nil(t, s.(*Surface).Snapshot())
}
