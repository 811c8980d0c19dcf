package device

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDevice_AllocReleaseAccounting(t *testing.T) {
	d := New(nil)

	b := d.CreateBuffer([]float32{1, 2, 3, 4, 5, 6}, 3)
	m := d.CreateMaterial(map[string]float64{"opacity": 1}, nil)
	tex := d.CreateTexture(2, 1, []colorful.Color{{R: 1}, {B: 1}})
	assert.Equal(t, 3, d.Live())

	buf, ok := d.Buffer(b)
	require.True(t, ok)
	assert.Equal(t, 2, buf.Len())

	require.NoError(t, d.Release(b))
	require.NoError(t, d.Release(m))
	assert.Equal(t, 1, d.Live())

	stats := d.Stats()
	assert.Equal(t, KindStats{Allocated: 1, Released: 1}, stats[KindBuffer])
	assert.Equal(t, KindStats{Allocated: 1, Released: 0}, stats[KindTexture])

	_, ok = d.Buffer(b)
	assert.False(t, ok, "released buffer is not resolvable")
	require.NoError(t, d.Release(tex))
	assert.Equal(t, 0, d.Live())
}

func TestDevice_DoubleRelease(t *testing.T) {
	d := New(nil)
	h := d.CreateMaterial(nil, nil)

	require.NoError(t, d.Release(h))
	err := d.Release(h)
	assert.ErrorIs(t, err, ErrDoubleRelease)
	assert.Equal(t, 1, d.Stats()[KindMaterial].Released, "second release is not counted")
}

func TestDevice_UnknownHandle(t *testing.T) {
	d := New(nil)
	assert.ErrorIs(t, d.Release(0), ErrUnknownHandle)
	assert.ErrorIs(t, d.Release(99), ErrUnknownHandle)
}

func TestDevice_KindMismatch(t *testing.T) {
	d := New(nil)
	h := d.CreateBuffer(nil, 3)
	_, ok := d.Material(h)
	assert.False(t, ok)
	_, ok = d.Texture(h)
	assert.False(t, ok)
}

func TestDevice_LostContext(t *testing.T) {
	d := New(nil)
	h := d.CreateBuffer(nil, 3)
	d.Lose()

	assert.True(t, d.Lost())
	assert.ErrorIs(t, d.Release(h), ErrDeviceLost)
	assert.Equal(t, 0, d.Live())
	assert.ErrorIs(t, d.Release(h), ErrDoubleRelease)
}

func TestDevice_CloseReportsLeaks(t *testing.T) {
	d := New(nil)
	d.CreateBuffer(nil, 3)
	d.CreateMaterial(nil, nil)
	released := d.CreateTexture(0, 0, nil)
	require.NoError(t, d.Release(released))

	assert.Equal(t, 2, d.Close())
	assert.Equal(t, 0, d.Live())
	assert.Equal(t, 0, d.Close())
}

func TestDevice_WriteBuffer(t *testing.T) {
	d := New(nil)
	h := d.CreateBuffer([]float32{0, 0, 0}, 3)
	require.True(t, d.WriteBuffer(h, []float32{1, 2, 3, 4, 5, 6}))

	buf, _ := d.Buffer(h)
	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, buf.Data)

	require.NoError(t, d.Release(h))
	assert.False(t, d.WriteBuffer(h, nil))
}

func TestMaterialUniforms(t *testing.T) {
	d := New(nil)
	h := d.CreateMaterial(map[string]float64{"opacity": 0.5}, map[string]colorful.Color{"color": {R: 1}})
	m, ok := d.Material(h)
	require.True(t, ok)

	assert.Equal(t, 0.5, m.Float("opacity", 1))
	assert.Equal(t, 7.0, m.Float("missing", 7))
	m.SetFloat("opacity", 0)
	assert.Equal(t, 0.0, m.Float("opacity", 1))
}

func TestTextureWrap(t *testing.T) {
	tex := &Texture{Width: 2, Height: 2, Texels: []colorful.Color{{R: 1}, {G: 1}, {B: 1}, {R: 1, G: 1}}}
	assert.Equal(t, tex.At(0, 0), tex.At(2, 2))
	assert.Equal(t, tex.At(1, 0), tex.At(-1, 0))
	assert.Equal(t, tex.At(0, 1), tex.Sample(0.1, 0.9))
}
