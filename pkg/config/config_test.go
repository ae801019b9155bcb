package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.GreaterOrEqual(t, cfg.Processing.NumCores, 1)
	assert.Equal(t, uint8(255), cfg.BinaryValues().On)
	assert.Equal(t, uint8(0), cfg.BinaryValues().Off)
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Input.Extensions, cfg.Input.Extensions)
}

func TestSaveAndLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "watershed.yaml")

	cfg := DefaultConfig()
	cfg.Processing.NumCores = 3
	cfg.Segmentation.ExitWithMinimaOnly = true
	cfg.ROI = []Box{{Min: [3]int{1, 2, 0}, Extent: [3]int{4, 4, 1}}}
	cfg.Seeds = []SeedBox{{ID: 7, Box: Box{Min: [3]int{0, 0, 0}, Extent: [3]int{1, 1, 1}}}}
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Processing.NumCores)
	assert.True(t, loaded.Segmentation.ExitWithMinimaOnly)
	require.Len(t, loaded.ROI, 1)
	assert.Equal(t, [3]int{4, 4, 1}, loaded.ROI[0].Extent)
	require.Len(t, loaded.Seeds, 1)
	assert.Equal(t, 7, loaded.Seeds[0].ID)

	box, err := loaded.ROI[0].BoundingBox()
	require.NoError(t, err)
	assert.Equal(t, 2, box.Min.Y)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("segmentation:\n  exitWithMinimaOnly: true\n"), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.Segmentation.ExitWithMinimaOnly)
	assert.Equal(t, uint8(255), cfg.Segmentation.MaskOnValue)
}

func TestValidateCollectsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Processing.NumCores = 0
	cfg.Segmentation.MaskOffValue = cfg.Segmentation.MaskOnValue
	cfg.ROI = []Box{{Extent: [3]int{0, 1, 1}}}
	cfg.Seeds = []SeedBox{
		{ID: 0, Box: Box{Extent: [3]int{1, 1, 1}}},
		{ID: 2, Box: Box{Extent: [3]int{1, 1, 1}}},
		{ID: 2, Box: Box{Extent: [3]int{1, 1, 1}}},
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 5)
}

func TestLoadConfigRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("processing:\n  numCores: -1\n"), 0644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "numCores")
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, CreateDefaultConfigFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "exitWithMinimaOnly")
}
