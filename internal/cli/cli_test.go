package cli

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/hexmap/pkg/errors"
	"github.com/matzehuels/hexmap/pkg/hexgrid"
	hexio "github.com/matzehuels/hexmap/pkg/io"
	"github.com/matzehuels/hexmap/pkg/pipeline"
)

// isolate points the XDG directories at fresh temporary directories.
func isolate(t *testing.T) (configHome, cacheHome string) {
	t.Helper()
	configHome, cacheHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return configHome, cacheHome
}

// run executes the root command with args and returns its stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	_ = filepath.WalkDir(dir, func(_ string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func TestLayoutCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "map.json")
	pngPath := filepath.Join(dir, "map.png")
	svgPath := filepath.Join(dir, "map.svg")

	out, err := run(t, "layout", "-a", "13", "-j", jsonPath, "-i", pngPath, "--svg", svgPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Layout complete")
	assert.Contains(t, out, "13 items")
	assert.Contains(t, out, "2 groups")
	assert.Contains(t, out, "2800×875 px")
	assert.Contains(t, out, "hexmap render "+jsonPath)

	doc, err := hexio.ImportJSON(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, hexgrid.Bounds{Width: 2800, Height: 875}, doc.Bounds())
	assert.Len(t, doc.Coordinates, 13)

	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 2800, cfg.Width)
	assert.Equal(t, 875, cfg.Height)

	svg, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), `id="item-13"`)
}

func TestLayoutCommandConfigDefaults(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfgPath := writeConfig(t, "[output]\njson = \""+filepath.ToSlash(filepath.Join(dir, "cfg.json"))+"\"\nimage = \"\"\n")

	_, err := run(t, "--config", cfgPath, "layout", "-a", "5")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "cfg.json"))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "the image output was disabled in the config")
}

func TestLayoutCommandInvalidItems(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "x.json")

	for _, arg := range []string{"--items=abc", "--items=1.5", "--items=+3", "--items="} {
		t.Run(arg, func(t *testing.T) {
			_, err := run(t, "layout", arg, "-j", out)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidArgument), "got %v", err)
		})
	}
	assert.NoFileExists(t, out)

	_, err := run(t, "layout", "-j", out)
	assert.Error(t, err, "items is required")
}

func TestLayoutCommandCaching(t *testing.T) {
	_, cacheHome := isolate(t)
	dir := t.TempDir()

	_, err := run(t, "layout", "-a", "20", "-j", filepath.Join(dir, "a.json"), "--no-cache")
	require.NoError(t, err)
	assert.Zero(t, countFiles(t, cacheHome))

	out, err := run(t, "layout", "-a", "20", "-j", filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.Equal(t, 2, countFiles(t, cacheHome), "one layout and one artifact")
	assert.Contains(t, out, "fresh")

	out, err = run(t, "layout", "-a", "20", "-j", filepath.Join(dir, "a.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "cached")

	out, err = run(t, "cache", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cacheHome, appName), strings.TrimSpace(out))

	out, err = run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 2 cached entries")
	assert.Zero(t, countFiles(t, cacheHome))
}

func TestRenderCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "map.json")

	_, err := run(t, "layout", "-a", "30", "-j", jsonPath)
	require.NoError(t, err)

	yamlPath := filepath.Join(dir, "map.yaml")
	_, err = run(t, "render", jsonPath, "-o", yamlPath)
	require.NoError(t, err)

	fromJSON, err := hexio.ImportJSON(jsonPath)
	require.NoError(t, err)
	fromYAML, err := hexio.ImportYAML(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, fromJSON, fromYAML)

	groupsPath := filepath.Join(dir, "map.groups.svg")
	_, err = run(t, "render", yamlPath, "-o", groupsPath)
	require.NoError(t, err)
	groups, err := os.ReadFile(groupsPath)
	require.NoError(t, err)
	assert.Contains(t, string(groups), "<svg")

	_, err = run(t, "render", jsonPath, "-o", filepath.Join(dir, "map.pdf"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))

	_, err = run(t, "render", filepath.Join(dir, "missing.json"), "-o", filepath.Join(dir, "x.svg"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestConfigShow(t *testing.T) {
	isolate(t)
	cfgPath := writeConfig(t, "[cache]\nredis_addr = \"cache.internal:6379\"\nredis_db = 3\nttl = \"2h\"\n")

	out, err := run(t, "--config", cfgPath, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "cache.internal:6379/3")
	assert.Contains(t, out, "2h0m0s")
	assert.Contains(t, out, "layout.json")

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "nope.toml"), "config", "show")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"map.png", pipeline.FormatPNG},
		{"out/MAP.SVG", pipeline.FormatSVG},
		{"map.groups.svg", pipeline.FormatGroups},
		{"map.json", pipeline.FormatJSON},
		{"map.yaml", pipeline.FormatYAML},
		{"map.yml", pipeline.FormatYAML},
		{"map.pdf", "pdf"},
		{"map", ""},
	}

	for _, tt := range tests {
		if got := formatFromPath(tt.path); got != tt.want {
			t.Errorf("formatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestOrderedFormats(t *testing.T) {
	got := orderedFormats(map[string]string{
		pipeline.FormatGroups: "g",
		pipeline.FormatPNG:    "p",
		pipeline.FormatJSON:   "j",
	})
	assert.Equal(t, []string{pipeline.FormatJSON, pipeline.FormatPNG, pipeline.FormatGroups}, got)
}

func TestWriteArtifactsDuplicatePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "same")
	err := writeArtifacts(context.Background(),
		map[string][]byte{pipeline.FormatJSON: []byte("{}"), pipeline.FormatYAML: []byte("{}")},
		map[string]string{pipeline.FormatJSON: path, pipeline.FormatYAML: path})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))
	assert.NoFileExists(t, path)
}

func TestWriteArtifactsMissingArtifact(t *testing.T) {
	dir := t.TempDir()
	outputs := map[string]string{
		pipeline.FormatJSON: filepath.Join(dir, "a.json"),
		pipeline.FormatYAML: filepath.Join(dir, "a.yaml"),
		pipeline.FormatSVG:  filepath.Join(dir, "a.svg"),
	}
	err := writeArtifacts(context.Background(),
		map[string][]byte{pipeline.FormatJSON: []byte("{}"), pipeline.FormatYAML: []byte("{}")},
		outputs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInternal))
	for _, path := range outputs {
		assert.NoFileExists(t, path)
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	out, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "hexmap")

	_, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestVersionFlag(t *testing.T) {
	isolate(t)
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, appName)
}
