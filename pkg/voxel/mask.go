package voxel

import (
	"github.com/pkg/errors"
)

// BinaryValues is the byte convention used to mark voxels ON or OFF in a mask.
type BinaryValues struct {
	On, Off byte
}

// DefaultBinaryValues marks ON voxels with 255 and OFF voxels with 0.
func DefaultBinaryValues() BinaryValues {
	return BinaryValues{On: 255, Off: 0}
}

// ObjectMask is a binary mask cropped to a bounding box. Data is indexed in
// coordinates relative to Box.Min.
type ObjectMask struct {
	Box    BoundingBox
	Data   []byte
	Values BinaryValues
}

// NewObjectMask allocates an all-OFF mask covering box.
func NewObjectMask(box BoundingBox, values BinaryValues) (*ObjectMask, error) {
	if err := box.Extent.Validate(); err != nil {
		return nil, err
	}
	data := make([]byte, box.Extent.Volume())
	if values.Off != 0 {
		for i := range data {
			data[i] = values.Off
		}
	}
	return &ObjectMask{Box: box, Data: data, Values: values}, nil
}

// NewFilledMask allocates a mask whose every voxel is ON.
func NewFilledMask(box BoundingBox, values BinaryValues) (*ObjectMask, error) {
	m, err := NewObjectMask(box, values)
	if err != nil {
		return nil, err
	}
	for i := range m.Data {
		m.Data[i] = values.On
	}
	return m, nil
}

// Validate checks the box and the buffer length.
func (m *ObjectMask) Validate() error {
	if m == nil {
		return errors.Wrap(ErrInvalidExtent, "nil mask")
	}
	if err := m.Box.Extent.Validate(); err != nil {
		return err
	}
	if len(m.Data) != m.Box.Extent.Volume() {
		return errors.Wrapf(ErrDimensionMismatch, "mask buffer has %d voxels, box %s needs %d",
			len(m.Data), m.Box, m.Box.Extent.Volume())
	}
	if m.Values.On == m.Values.Off {
		return errors.Wrapf(ErrDimensionMismatch, "mask ON and OFF values are both %d", m.Values.On)
	}
	return nil
}

// IsOnLocal reports whether the voxel at relative offset i is ON.
func (m *ObjectMask) IsOnLocal(i int) bool {
	return m.Data[i] == m.Values.On
}

// Contains reports whether the absolute point p is inside the box and ON.
func (m *ObjectMask) Contains(p Point) bool {
	if !m.Box.Contains(p) {
		return false
	}
	return m.IsOnLocal(m.Box.Extent.OffsetOf(p.Sub(m.Box.Min)))
}

// SetOn marks the absolute point p as ON. Points outside the box are ignored.
func (m *ObjectMask) SetOn(p Point) {
	if m.Box.Contains(p) {
		m.Data[m.Box.Extent.OffsetOf(p.Sub(m.Box.Min))] = m.Values.On
	}
}

// NumOn counts ON voxels.
func (m *ObjectMask) NumOn() int {
	n := 0
	for _, v := range m.Data {
		if v == m.Values.On {
			n++
		}
	}
	return n
}

// Points lists the absolute coordinates of ON voxels in row-major order.
func (m *ObjectMask) Points() []Point {
	var out []Point
	e := m.Box.Extent
	for i, v := range m.Data {
		if v == m.Values.On {
			out = append(out, e.PointAt(i).Add(m.Box.Min))
		}
	}
	return out
}

// Object is one segmented region: a cropped mask plus its voxel count.
type Object struct {
	Mask      ObjectMask
	NumVoxels int
}

// Box is shorthand for the object's bounding box.
func (o *Object) Box() BoundingBox {
	return o.Mask.Box
}

// Seed is a pre-labeled region. Its mask uses absolute coordinates and ID
// must be nonzero and unique among the seeds of one segmentation call.
type Seed struct {
	ID   int
	Mask ObjectMask
}
