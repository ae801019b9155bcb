// Package visualization renders segmentation results as per-slice images.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

// goldenAngle spreads consecutive label hues far apart.
const goldenAngle = 137.50776405003785

// Viewer paints a label grid: voxel value i means "belongs to object i",
// 0 means background.
type Viewer struct {
	labels *voxel.Grid[int32]
}

// NewViewer paints objects into a label grid of the given extent, object i
// receiving label i+1. Voxels outside the extent are clipped.
func NewViewer(objects []voxel.Object, extent voxel.Extent) (*Viewer, error) {
	labels, err := voxel.NewGrid[int32](extent)
	if err != nil {
		return nil, err
	}
	for i := range objects {
		paint(labels, &objects[i].Mask, int32(i+1))
	}
	return &Viewer{labels: labels}, nil
}

// NewViewerFromLabels wraps an existing label grid.
func NewViewerFromLabels(labels *voxel.Grid[int32]) (*Viewer, error) {
	if err := labels.Validate(); err != nil {
		return nil, err
	}
	return &Viewer{labels: labels}, nil
}

func paint(labels *voxel.Grid[int32], mask *voxel.ObjectMask, label int32) {
	box := mask.Box
	e := box.Extent
	for z := 0; z < e.Z; z++ {
		for y := 0; y < e.Y; y++ {
			for x := 0; x < e.X; x++ {
				if !mask.IsOnLocal(e.Offset(x, y, z)) {
					continue
				}
				ax, ay, az := box.Min.X+x, box.Min.Y+y, box.Min.Z+z
				if labels.Extent.Contains(ax, ay, az) {
					labels.Set(ax, ay, az, label)
				}
			}
		}
	}
}

// Labels exposes the painted grid.
func (v *Viewer) Labels() *voxel.Grid[int32] {
	return v.labels
}

// LabelColor returns a stable color for a label; background is black.
func LabelColor(label int32) color.Color {
	if label <= 0 {
		return color.RGBA{A: 255}
	}
	hue := math.Mod(float64(label)*goldenAngle, 360)
	return colorful.Hsv(hue, 0.65, 0.95).Clamped()
}

// ExtractSlice renders a 2D slice of the label grid along the specified axis
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}
	e := v.labels.Extent

	var (
		img  *image.RGBA
		at   func(u, w int) int32
		size int
	)
	switch axis {
	case "x", "X":
		// YZ plane, z across
		size = e.X
		img = image.NewRGBA(image.Rect(0, 0, e.Z, e.Y))
		at = func(u, w int) int32 { return v.labels.At(position, w, u) }
	case "y", "Y":
		// XZ plane, z down
		size = e.Y
		img = image.NewRGBA(image.Rect(0, 0, e.X, e.Z))
		at = func(u, w int) int32 { return v.labels.At(u, position, w) }
	case "z", "Z":
		size = e.Z
		img = image.NewRGBA(image.Rect(0, 0, e.X, e.Y))
		at = func(u, w int) int32 { return v.labels.At(u, w, position) }
	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}
	if position >= size {
		return nil, fmt.Errorf("position %d exceeds %s size %d", position, axis, size)
	}

	b := img.Bounds()
	for w := 0; w < b.Dy(); w++ {
		for u := 0; u < b.Dx(); u++ {
			img.Set(u, w, LabelColor(at(u, w)))
		}
	}
	return img, nil
}

// SaveSlice saves a rendered slice as a PNG image. PNG keeps label colors exact.
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// SaveSliceSequence renders and saves every slice along the specified axis
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	e := v.labels.Extent
	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = e.X
	case "y", "Y":
		maxPos = e.Y
	case "z", "Z":
		maxPos = e.Z
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("labels_%s_%03d.png", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return errors.Wrapf(err, "failed to save slice %d", pos)
		}
	}

	return nil
}
