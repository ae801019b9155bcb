package voxel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtentValidate(t *testing.T) {
	testCases := []struct {
		name   string
		extent Extent
		valid  bool
	}{
		{"single voxel", Extent{1, 1, 1}, true},
		{"image", Extent{5, 4, 1}, true},
		{"volume", Extent{5, 4, 3}, true},
		{"zero x", Extent{0, 4, 3}, false},
		{"negative z", Extent{5, 4, -1}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.extent.Validate()
			if tc.valid {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidExtent))
		})
	}
}

func TestExtentOffsetRoundTrip(t *testing.T) {
	e := Extent{X: 4, Y: 3, Z: 2}
	assert.Equal(t, 24, e.Volume())
	assert.Equal(t, 12, e.AreaXY())
	assert.True(t, e.Is3D())
	assert.False(t, Extent{4, 3, 1}.Is3D())

	for i := 0; i < e.Volume(); i++ {
		p := e.PointAt(i)
		assert.True(t, e.Contains(p.X, p.Y, p.Z))
		assert.Equal(t, i, e.OffsetOf(p))
	}
	assert.Equal(t, 1*12+2*4+3, e.Offset(3, 2, 1))
	assert.False(t, e.Contains(4, 0, 0))
	assert.False(t, e.Contains(0, -1, 0))
}

func TestBoundingBox(t *testing.T) {
	box, err := NewBoundingBox(Point{1, 2, 0}, Extent{3, 2, 1})
	require.NoError(t, err)
	assert.Equal(t, Point{3, 3, 0}, box.Max())
	assert.True(t, box.Contains(Point{1, 2, 0}))
	assert.True(t, box.Contains(Point{3, 3, 0}))
	assert.False(t, box.Contains(Point{4, 3, 0}))

	assert.NoError(t, box.InsideOf(Extent{4, 4, 1}))
	assert.True(t, errors.Is(box.InsideOf(Extent{3, 4, 1}), ErrMaskOutOfBounds))
	assert.True(t, errors.Is(BoundingBox{Min: Point{-1, 0, 0}, Extent: Extent{1, 1, 1}}.InsideOf(Extent{4, 4, 1}),
		ErrMaskOutOfBounds))

	_, err = NewBoundingBox(Point{}, Extent{0, 1, 1})
	assert.True(t, errors.Is(err, ErrInvalidExtent))
}

func TestBoxAccumulator(t *testing.T) {
	var acc BoxAccumulator
	_, ok := acc.Box()
	assert.False(t, ok)

	acc.Add(3, 1, 0)
	acc.Add(1, 4, 2)
	acc.Add(2, 2, 1)
	box, ok := acc.Box()
	require.True(t, ok)
	assert.Equal(t, Point{1, 1, 0}, box.Min)
	assert.Equal(t, Extent{3, 4, 3}, box.Extent)
}

func TestGridFromPlanes(t *testing.T) {
	g, err := GridFromPlanes([][]int{
		{1, 2, 3},
		{4, 5, 6},
	}, [][]int{
		{7, 8, 9},
		{10, 11, 12},
	})
	require.NoError(t, err)
	assert.Equal(t, Extent{3, 2, 2}, g.Extent)
	assert.Equal(t, 6, g.At(2, 1, 0))
	assert.Equal(t, 8, g.At(1, 0, 1))

	g.Set(0, 0, 1, 70)
	assert.Equal(t, 70, g.Data[6])

	_, err = GridFromPlanes([][]int{{1, 2}, {3}})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
	_, err = GridFromPlanes[int]()
	assert.True(t, errors.Is(err, ErrInvalidExtent))
}

func TestGridValidate(t *testing.T) {
	var nilGrid *Grid[uint8]
	assert.True(t, errors.Is(nilGrid.Validate(), ErrInvalidExtent))

	_, err := WrapGrid(Extent{2, 2, 1}, []float32{1, 2, 3})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	g := &Grid[float32]{Extent: Extent{2, 2, 1}, Data: make([]float32, 5)}
	assert.True(t, errors.Is(g.Validate(), ErrDimensionMismatch))
}

func TestGridCrop(t *testing.T) {
	g, err := NewGrid[int](Extent{4, 3, 2})
	require.NoError(t, err)
	for i := range g.Data {
		g.Data[i] = i
	}

	cropped, err := g.Crop(BoundingBox{Min: Point{1, 1, 1}, Extent: Extent{2, 2, 1}})
	require.NoError(t, err)
	assert.Equal(t, []int{
		g.At(1, 1, 1), g.At(2, 1, 1),
		g.At(1, 2, 1), g.At(2, 2, 1),
	}, cropped.Data)

	_, err = g.Crop(BoundingBox{Min: Point{3, 0, 0}, Extent: Extent{2, 1, 1}})
	assert.True(t, errors.Is(err, ErrMaskOutOfBounds))
}

func TestObjectMask(t *testing.T) {
	values := BinaryValues{On: 1, Off: 7}
	box := BoundingBox{Min: Point{2, 2, 0}, Extent: Extent{3, 2, 1}}
	m, err := NewObjectMask(box, values)
	require.NoError(t, err)
	assert.Equal(t, 0, m.NumOn())
	for _, v := range m.Data {
		assert.Equal(t, byte(7), v)
	}

	m.SetOn(Point{3, 3, 0})
	m.SetOn(Point{2, 2, 0})
	m.SetOn(Point{9, 9, 0})
	assert.Equal(t, 2, m.NumOn())
	assert.True(t, m.Contains(Point{3, 3, 0}))
	assert.False(t, m.Contains(Point{4, 3, 0}))
	assert.False(t, m.Contains(Point{0, 0, 0}))
	assert.Equal(t, []Point{{2, 2, 0}, {3, 3, 0}}, m.Points())

	filled, err := NewFilledMask(box, DefaultBinaryValues())
	require.NoError(t, err)
	assert.Equal(t, 6, filled.NumOn())
	require.NoError(t, filled.Validate())
}

func TestObjectMaskValidate(t *testing.T) {
	var nilMask *ObjectMask
	assert.Error(t, nilMask.Validate())

	m := &ObjectMask{
		Box:    BoundingBox{Extent: Extent{2, 2, 1}},
		Data:   make([]byte, 3),
		Values: DefaultBinaryValues(),
	}
	assert.True(t, errors.Is(m.Validate(), ErrDimensionMismatch))

	m.Data = make([]byte, 4)
	m.Values = BinaryValues{On: 5, Off: 5}
	assert.Error(t, m.Validate())
}
