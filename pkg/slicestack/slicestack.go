// Package slicestack loads a directory of 2D slice images as one 3D intensity
// grid, one z-plane per image.
package slicestack

import (
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/image/tiff"
	"gonum.org/v1/gonum/floats"

	"github.com/anchoranalysis/anchor-plugins-sub010/pkg/voxel"
)

// ErrNoSlices is returned when a directory holds no image with an accepted extension.
var ErrNoSlices = errors.New("slicestack: no slice images found")

// DefaultExtensions lists the file types Load accepts when none are given.
var DefaultExtensions = []string{".jpg", ".jpeg", ".png", ".tif", ".tiff"}

// Load reads every slice image in dir, ordered by the number embedded in its
// file name, and stacks them into a grid with intensities in [0,1].
// All slices must share the same dimensions.
func Load(dir string, extensions []string, logger *zap.SugaredLogger) (*voxel.Grid[float64], error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	files, err := listSlices(dir, extensions)
	if err != nil {
		return nil, err
	}

	var grid *voxel.Grid[float64]
	for z, name := range files {
		img, err := loadImage(filepath.Join(dir, name))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load slice %s", name)
		}
		bounds := img.Bounds()
		if grid == nil {
			e, err := voxel.NewExtent(bounds.Dx(), bounds.Dy(), len(files))
			if err != nil {
				return nil, errors.Wrapf(err, "slice %s", name)
			}
			if grid, err = voxel.NewGrid[float64](e); err != nil {
				return nil, err
			}
		} else if bounds.Dx() != grid.Extent.X || bounds.Dy() != grid.Extent.Y {
			return nil, errors.Wrapf(voxel.ErrDimensionMismatch, "slice %s is %dx%d, expected %dx%d",
				name, bounds.Dx(), bounds.Dy(), grid.Extent.X, grid.Extent.Y)
		}
		PlaneInto(img, grid, z)
	}

	logger.Infow("loaded slice stack",
		"dir", dir,
		"slices", len(files),
		"extent", grid.Extent,
		"minIntensity", floats.Min(grid.Data),
		"maxIntensity", floats.Max(grid.Data),
	)
	return grid, nil
}

// listSlices returns the accepted file names of dir sorted by embedded number.
func listSlices(dir string, extensions []string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read slice directory")
	}
	accepted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		accepted[strings.ToLower(ext)] = true
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if accepted[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, errors.Wrapf(ErrNoSlices, "in %s", dir)
	}

	// Numbers first so that slice_2 precedes slice_10; names break ties.
	sort.SliceStable(names, func(i, j int) bool {
		ni, nj := ExtractNumber(names[i]), ExtractNumber(names[j])
		if ni != nj {
			return ni < nj
		}
		return names[i] < names[j]
	})
	return names, nil
}

// ExtractNumber returns the digits of a file name read as one integer, or 0.
func ExtractNumber(filename string) int {
	base := filepath.Base(filename)
	var digits strings.Builder
	for _, c := range base {
		if c >= '0' && c <= '9' {
			digits.WriteRune(c)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return decode(file, strings.ToLower(filepath.Ext(path)))
}

func decode(r io.Reader, ext string) (image.Image, error) {
	switch ext {
	case ".jpg", ".jpeg":
		return jpeg.Decode(r)
	case ".png":
		return png.Decode(r)
	case ".tif", ".tiff":
		return tiff.Decode(r)
	default:
		return nil, errors.Errorf("unsupported slice format %q", ext)
	}
}

// PlaneInto copies the red channel of img, scaled to [0,1], into plane z of grid.
func PlaneInto(img image.Image, grid *voxel.Grid[float64], z int) {
	bounds := img.Bounds()
	for y := 0; y < grid.Extent.Y; y++ {
		for x := 0; x < grid.Extent.X; x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			grid.Set(x, y, z, float64(r)/65535.0)
		}
	}
}
