package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gaurav-prasanna/onestandard/core"
	"github.com/gaurav-prasanna/onestandard/core/config"
	"github.com/gaurav-prasanna/onestandard/core/extract"
	"github.com/gaurav-prasanna/onestandard/core/fetch"
	"github.com/gaurav-prasanna/onestandard/core/model"
	"github.com/gaurav-prasanna/onestandard/core/normalize"
	"github.com/gaurav-prasanna/onestandard/core/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const notebook = `<html><body>
<div style=3D'direction:ltr;border-width:100%'><div>
<div>Meeting</div>
<div>Monday, March 6, 2017 10:00 AM</div>
<div><p><b>Discuss</b> Q3 caf` + "\xe9" + `</p></div>
</div></div>
<div style=3D'direction:ltr;border-width:100%'><div>
<div>Broken</div>
</div></div>
<div style=3D'direction:ltr;border-width:100%'><div>
<div>Short = note</div>
<div>Tuesday</div>
</div></div>
</body></html>`

func writeNotebook(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(notebook), 0o644))
	return path
}

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func testConfig(dir string) *config.Config {
	return &config.Config{
		Log:    config.LogConfig{Level: "info", Format: "text"},
		Output: config.OutputConfig{Dir: dir, File: "package.json"},
	}
}

func TestBuildPackage(t *testing.T) {
	var logs bytes.Buffer
	logger := testLogger(&logs)
	path := writeNotebook(t, "Work.2017.htm")

	pkg, tag, err := buildPackage(context.Background(), path, fetch.New(),
		extract.New(extract.WithLogger(logger)), normalize.New(), logger)
	require.NoError(t, err)

	assert.Equal(t, "Work", tag.Title)
	items := pkg.Items()
	require.Len(t, items, 3)

	assert.Equal(t, model.TypeTag, items[0].ContentType)
	assert.Equal(t, "Work", items[0].Content.Title)
	require.Len(t, items[0].Content.References, 2)
	assert.Equal(t, items[1].UUID, items[0].Content.References[0].UUID)
	assert.Equal(t, items[2].UUID, items[0].Content.References[1].UUID)

	meeting := items[1]
	assert.Equal(t, model.TypeNote, meeting.ContentType)
	assert.Equal(t, "Meeting", meeting.Content.Title)
	require.NotNil(t, meeting.Content.Text)
	assert.Contains(t, *meeting.Content.Text, "**Discuss** Q3 café")
	assert.Equal(t, []model.Reference{{UUID: tag.GUID(), ContentType: "Tag"}}, meeting.Content.References)

	short := items[2]
	assert.Equal(t, "Short note", short.Content.Title)
	require.NotNil(t, short.Content.Text)
	assert.Empty(t, *short.Content.Text)

	assert.Contains(t, logs.String(), "could not parse note")
	assert.Contains(t, logs.String(), "Broken")
}

type failingNormalizer struct{ err error }

func (f failingNormalizer) Normalize(core.NoteParts) (core.RawNote, error) {
	return core.RawNote{}, f.err
}

func TestBuildPackage_Errors(t *testing.T) {
	var logs bytes.Buffer
	logger := testLogger(&logs)

	_, _, err := buildPackage(context.Background(), filepath.Join(t.TempDir(), "missing.htm"),
		fetch.New(), extract.New(extract.WithLogger(logger)), normalize.New(), logger)
	assert.ErrorIs(t, err, os.ErrNotExist)

	boom := assert.AnError
	_, _, err = buildPackage(context.Background(), writeNotebook(t, "Work.htm"),
		fetch.New(), extract.New(extract.WithLogger(logger)), failingNormalizer{err: boom}, logger)
	assert.ErrorIs(t, err, boom)
}

func TestConvert_WritesPackageAndDigests(t *testing.T) {
	var logs bytes.Buffer
	out := t.TempDir()
	path := writeNotebook(t, "Work Notes.htm")

	digests := []core.Renderer{render.NewMarkdownRenderer(), render.NewPDFRenderer()}
	require.NoError(t, convert(context.Background(), path, testConfig(out), digests, testLogger(&logs)))

	data, err := os.ReadFile(filepath.Join(out, "package.json"))
	require.NoError(t, err)
	var doc struct {
		Items []model.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Items, 3)
	assert.Equal(t, "Work Notes", doc.Items[0].Content.Title)
	assert.Contains(t, string(data), "\n    \"items\": [")

	md, err := os.ReadFile(filepath.Join(out, "Work_Notes.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Work Notes\n")
	assert.Contains(t, string(md), "## Meeting\n")
	assert.FileExists(t, filepath.Join(out, "Work_Notes.pdf"))
}

func TestConvert_CustomNoteStyle(t *testing.T) {
	var logs bytes.Buffer
	out := t.TempDir()
	path := writeNotebook(t, "Work.htm")

	cfg := testConfig(out)
	cfg.Input.NoteStyle = "no-such-style"
	require.NoError(t, convert(context.Background(), path, cfg, nil, testLogger(&logs)))

	data, err := os.ReadFile(filepath.Join(out, "package.json"))
	require.NoError(t, err)
	var doc struct {
		Items []model.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Len(t, doc.Items, 1)
	assert.Empty(t, doc.Items[0].Content.References)
}

func TestRootCommand(t *testing.T) {
	out := t.TempDir()
	t.Setenv(config.PathEnv, "")
	t.Setenv("ONESTANDARD_LOG_LEVEL", "error")
	path := writeNotebook(t, "Work.htm")

	rootCmd.SetArgs([]string{path, "--output_dir", out})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		flagOutputDir = ""
	})
	require.NoError(t, rootCmd.Execute())
	assert.FileExists(t, filepath.Join(out, "package.json"))
	assert.NoFileExists(t, filepath.Join(out, "Work.md"))
}

func TestRootCommand_RequiresOneArg(t *testing.T) {
	rootCmd.SetArgs([]string{})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	assert.Error(t, rootCmd.Execute())
}

func TestTagTitle(t *testing.T) {
	cases := map[string]string{
		"Work.htm":              "Work",
		"/tmp/notes/Work.mht":   "Work",
		"dir/Work.2017.htm":     "Work",
		"NoExtension":           "NoExtension",
		"dir.with.dots/Journal": "Journal",
	}
	for in, want := range cases {
		assert.Equal(t, want, tagTitle(in), in)
	}
}
