package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snipman/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRelay struct {
	got []string
}

func (r *recordingRelay) Name() string { return "recording" }

func (r *recordingRelay) Copy(_ context.Context, text string) error {
	r.got = append(r.got, text)
	return nil
}

// isolate points the config dir at a temp dir so tests never touch ~/.snipman.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("SNIPMAN_CONFIG_DIR", t.TempDir())
	t.Setenv("SNIPMAN_DIR", "")
	t.Setenv("SNIPMAN_FORMAT", "")
	return t.TempDir()
}

func runCLI(t *testing.T, app *App, stdin string, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()
	if app == nil {
		app = &App{}
	}
	cmd := newRootCmd(app)

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

func mustRun(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, nil, "", args)
	require.NoError(t, err, "snipman %v\nstderr:\n%s\nstdout:\n%s", args, stderr, stdout)
	return decodeEnvelope(t, stdout)
}

func decodeEnvelope(t *testing.T, stdout []byte) map[string]any {
	t.Helper()
	var env map[string]any
	require.NoError(t, json.Unmarshal(stdout, &env), "stdout:\n%s", stdout)
	require.Contains(t, env, "data", "stdout:\n%s", stdout)
	return env
}

func dataList(t *testing.T, env map[string]any) []map[string]any {
	t.Helper()
	xs, ok := env["data"].([]any)
	require.True(t, ok, "expected data array, got %#v", env["data"])
	out := make([]map[string]any, 0, len(xs))
	for _, x := range xs {
		out = append(out, x.(map[string]any))
	}
	return out
}

func dataMap(t *testing.T, env map[string]any) map[string]any {
	t.Helper()
	m, ok := env["data"].(map[string]any)
	require.True(t, ok, "expected data object, got %#v", env["data"])
	return m
}

func TestCategoriesList_FirstRunSeeds(t *testing.T) {
	dir := isolate(t)

	cats := dataList(t, mustRun(t, "--dir", dir, "categories", "list"))
	require.Len(t, cats, 4)
	assert.Equal(t, "cat_1", cats[0]["id"])
	assert.Equal(t, true, cats[0]["active"])
	assert.Equal(t, 2.0, cats[0]["clips"])
}

func TestClipsAddThenListReturnsNewClipFirst(t *testing.T) {
	dir := isolate(t)

	added := dataMap(t, mustRun(t, "--dir", dir, "clips", "add", "--title", "  Sig  ", "--content", "Best,\nMe"))
	id, _ := added["id"].(string)
	assert.True(t, strings.HasPrefix(id, "clip_"), "id %q", id)
	assert.Equal(t, "Sig", added["title"])
	assert.Equal(t, "cat_1", added["categoryId"])

	clips := dataList(t, mustRun(t, "--dir", dir, "clips", "list"))
	require.Len(t, clips, 3)
	assert.Equal(t, id, clips[0]["id"])

	shown := dataMap(t, mustRun(t, "--dir", dir, "clips", "show", id))
	assert.Equal(t, "Best,\nMe", shown["content"])
}

func TestClipsAdd_StdinAndValidation(t *testing.T) {
	dir := isolate(t)

	stdout, stderr, err := runCLI(t, nil, "from stdin\n", []string{"--dir", dir, "clips", "add", "--title", "Piped", "--stdin", "--category", "cat_2"})
	require.NoError(t, err, "stderr:\n%s", stderr)
	got := dataMap(t, decodeEnvelope(t, stdout))
	assert.Equal(t, "from stdin\n", got["content"])
	assert.Equal(t, "cat_2", got["categoryId"])

	_, _, err = runCLI(t, nil, "", []string{"--dir", dir, "clips", "add", "--title", "Empty", "--content", "   "})
	assert.Error(t, err, "blank content")
	_, _, err = runCLI(t, nil, "", []string{"--dir", dir, "clips", "add", "--title", "x", "--content", "y", "--category", "cat_9"})
	assert.Error(t, err, "unknown category")
}

func TestClipsEdit_OnlyChangesGivenFlags(t *testing.T) {
	dir := isolate(t)

	got := dataMap(t, mustRun(t, "--dir", dir, "clips", "edit", "clip_2", "--title", "Meeting times"))
	assert.Equal(t, "Meeting times", got["title"])
	assert.True(t, strings.HasPrefix(got["content"].(string), "Would any"), "content %q", got["content"])

	clips := dataList(t, mustRun(t, "--dir", dir, "clips", "list"))
	assert.Equal(t, "clip_2", clips[1]["id"], "clip keeps its position")
}

func TestClipsDelete_PromptsAndIsIdempotent(t *testing.T) {
	dir := isolate(t)

	_, _, err := runCLI(t, nil, "n\n", []string{"--dir", dir, "clips", "delete", "clip_1"})
	require.Error(t, err, "answering no aborts")
	require.Len(t, dataList(t, mustRun(t, "--dir", dir, "clips", "list")), 2)

	stdout, _, err := runCLI(t, nil, "y\n", []string{"--dir", dir, "clips", "delete", "clip_1"})
	require.NoError(t, err)
	assert.Equal(t, true, dataMap(t, decodeEnvelope(t, stdout))["deleted"])

	again := dataMap(t, mustRun(t, "--dir", dir, "clips", "delete", "clip_1", "--yes"))
	assert.Equal(t, false, again["deleted"])
}

func TestCategoriesDelete_CascadesAndRefusesLast(t *testing.T) {
	dir := isolate(t)

	res := dataMap(t, mustRun(t, "--dir", dir, "categories", "delete", "cat_1", "--yes"))
	assert.Equal(t, 2.0, res["clipsRemoved"])
	assert.Equal(t, "cat_2", res["activeCategoryId"])
	for _, c := range dataList(t, mustRun(t, "--dir", dir, "clips", "list", "--all")) {
		assert.NotEqual(t, "cat_1", c["categoryId"], "orphan clip survived: %#v", c)
	}

	mustRun(t, "--dir", dir, "categories", "delete", "cat_2", "--yes")
	mustRun(t, "--dir", dir, "categories", "delete", "cat_3", "--yes")
	_, _, err := runCLI(t, nil, "", []string{"--dir", dir, "categories", "delete", "cat_4", "--yes"})
	require.Error(t, err, "last category delete must fail")
	assert.Len(t, dataList(t, mustRun(t, "--dir", dir, "categories", "list")), 1)
}

func TestCategoriesCreateRenameUse(t *testing.T) {
	dir := isolate(t)

	c := dataMap(t, mustRun(t, "--dir", dir, "categories", "create", "--name", "Work", "--icon", "code"))
	id := c["id"].(string)
	assert.Equal(t, true, c["active"])
	assert.Equal(t, "code", c["icon"])

	r := dataMap(t, mustRun(t, "--dir", dir, "categories", "rename", id, "--name", "Job"))
	assert.Equal(t, "Job", r["name"])
	assert.Equal(t, "code", r["icon"], "rename keeps icon when --icon is unset")

	u := dataMap(t, mustRun(t, "--dir", dir, "categories", "use", "cat_3"))
	assert.Equal(t, "cat_3", u["id"])
	assert.Equal(t, true, u["active"])

	st := dataMap(t, mustRun(t, "--dir", dir, "status"))
	assert.Equal(t, "cat_3", st["activeCategoryId"], "active selection persists")

	_, _, err := runCLI(t, nil, "", []string{"--dir", dir, "categories", "use", "cat_9"})
	assert.Error(t, err)
}

func TestSearch_ScopesToActiveCategory(t *testing.T) {
	dir := isolate(t)

	xs := dataList(t, mustRun(t, "--dir", dir, "search", "tanaka"))
	require.Len(t, xs, 1)
	assert.Equal(t, "clip_1", xs[0]["id"])

	assert.Empty(t, dataList(t, mustRun(t, "--dir", dir, "search", "hello")), "no hits outside the active category")

	xs = dataList(t, mustRun(t, "--dir", dir, "search", "--all", "hello"))
	require.Len(t, xs, 1)
	assert.Equal(t, "clip_3", xs[0]["id"])
}

func TestClipsCopy_UsesRelay(t *testing.T) {
	dir := isolate(t)
	relay := &recordingRelay{}

	stdout, stderr, err := runCLI(t, &App{relay: relay}, "", []string{"--dir", dir, "clips", "copy", "clip_4"})
	require.NoError(t, err, "stderr:\n%s", stderr)
	require.Len(t, relay.got, 1)
	assert.Contains(t, relay.got[0], "Chiyoda")
	assert.Equal(t, "recording", dataMap(t, decodeEnvelope(t, stdout))["relay"])
}

func TestDoctor_ReportsOrphansAndDuplicates(t *testing.T) {
	dir := isolate(t)
	ctx := context.Background()

	kv, err := store.OpenSQLiteKV(ctx, dir)
	require.NoError(t, err)
	err = kv.Set(ctx,
		store.Entry{Key: store.KeyCategories, Value: `[{"id":"a","name":"A","icon":"mail"}]`},
		store.Entry{Key: store.KeyClips, Value: `[{"id":"x","categoryId":"gone","title":"t","content":"c"},{"id":"x","categoryId":"a","title":"t","content":"c"}]`},
	)
	require.NoError(t, err)
	_ = kv.Close()

	stdout, _, err := runCLI(t, nil, "", []string{"--dir", dir, "doctor", "--fail"})
	require.Error(t, err, "doctor --fail returns an error")
	for _, code := range []string{"clip_orphan", "clip_duplicate_id"} {
		assert.Contains(t, string(stdout), code)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	src := isolate(t)
	mustRun(t, "--dir", src, "clips", "add", "--title", "Exported", "--content", "body")

	bundle := filepath.Join(t.TempDir(), "bundle.json")
	mustRun(t, "--dir", src, "export", "--out", bundle)
	_, _, err := runCLI(t, nil, "", []string{"--dir", src, "export", "--out", bundle})
	require.Error(t, err, "export refuses to overwrite an existing bundle")

	dst := t.TempDir()
	res := dataMap(t, mustRun(t, "--dir", dst, "import", bundle))
	assert.Equal(t, 5.0, res["clips"])
	assert.Len(t, dataList(t, mustRun(t, "--dir", dst, "clips", "list", "--all")), 4+5)

	repl := t.TempDir()
	mustRun(t, "--dir", repl, "import", bundle, "--replace", "--yes")
	all := dataList(t, mustRun(t, "--dir", repl, "clips", "list", "--all"))
	require.Len(t, all, 5)
	assert.Equal(t, "Exported", all[0]["title"])
}

func TestImportReplace_DropsBlankRecords(t *testing.T) {
	dir := isolate(t)
	bundle := filepath.Join(t.TempDir(), "bundle.json")
	raw := `{"version":1,
  "categories":[{"id":"c1","name":"   ","icon":"mail"},{"id":"c2","name":"Kept","icon":"code"}],
  "clips":[{"id":"x","categoryId":"c2","title":"","content":""},
           {"id":"y","categoryId":"c2","title":"Good","content":"body"},
           {"id":"w","categoryId":"c1","title":"Orphaned","content":"body"}]}`
	require.NoError(t, os.WriteFile(bundle, []byte(raw), 0o644))

	res := dataMap(t, mustRun(t, "--dir", dir, "import", bundle, "--replace", "--yes"))
	assert.Equal(t, 1.0, res["categories"])
	assert.Equal(t, 1.0, res["clips"])
	assert.Equal(t, 3.0, res["skipped"])

	cats := dataList(t, mustRun(t, "--dir", dir, "categories", "list"))
	require.Len(t, cats, 1)
	assert.Equal(t, "Kept", cats[0]["name"])

	clips := dataList(t, mustRun(t, "--dir", dir, "clips", "list", "--all"))
	require.Len(t, clips, 1)
	assert.Equal(t, "y", clips[0]["id"])

	stdout, _, err := runCLI(t, nil, "", []string{"--dir", dir, "doctor", "--fail"})
	assert.NoError(t, err, "doctor reported errors after replace:\n%s", stdout)
}

func TestExport_StdoutIsBareBundle(t *testing.T) {
	dir := isolate(t)

	stdout, _, err := runCLI(t, nil, "", []string{"--dir", dir, "export"})
	require.NoError(t, err)
	b, err := store.ReadBundle(bytes.NewReader(stdout))
	require.NoError(t, err)
	assert.Len(t, b.Categories, 4)
	assert.Len(t, b.Clips, 4)
}

func TestPublish_WritesMarkdown(t *testing.T) {
	dir := isolate(t)
	out := t.TempDir()

	res := dataMap(t, mustRun(t, "--dir", dir, "publish", "--to", out))
	assert.Len(t, res["written"], 5)

	b, err := os.ReadFile(filepath.Join(out, "categories", "cat_2.md"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "React Component")
}

func TestConfigSetAndShow(t *testing.T) {
	isolate(t)

	mustRun(t, "config", "set", "notify_seconds", "5")
	cfg := dataMap(t, mustRun(t, "config", "show"))
	assert.Equal(t, 5.0, cfg["notify_seconds"])

	_, _, err := runCLI(t, nil, "", []string{"config", "set", "glyphs", "emoji"})
	assert.Error(t, err, "bad glyphs value")
}

func TestConfigDataDirUsedWithoutFlag(t *testing.T) {
	isolate(t)
	data := t.TempDir()

	mustRun(t, "config", "set", "data_dir", data)
	st := dataMap(t, mustRun(t, "status"))
	assert.Equal(t, data, st["dataDir"])
	assert.FileExists(t, filepath.Join(data, "snipman.sqlite"))
}

func TestFormatTableAndEDN(t *testing.T) {
	dir := isolate(t)

	stdout, _, err := runCLI(t, nil, "", []string{"--dir", dir, "--format", "table", "categories", "list"})
	require.NoError(t, err)
	assert.Contains(t, string(stdout), "mail templates")
	assert.Contains(t, string(stdout), "ICON")

	stdout, _, err = runCLI(t, nil, "", []string{"--dir", dir, "--format", "edn", "clips", "show", "clip_1"})
	require.NoError(t, err)
	assert.Contains(t, string(stdout), `:id "clip_1"`)

	_, _, err = runCLI(t, nil, "", []string{"--dir", dir, "--format", "xml", "status"})
	assert.Error(t, err, "unknown format")
}

func TestLoadDotEnv_DoesNotOverrideEnv(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("SNIPMAN_CONFIG_DIR", cfgDir)
	t.Setenv("SNIPMAN_TEST_KEEP", "from-env")
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, ".env"), []byte("SNIPMAN_TEST_KEEP=from-file\nSNIPMAN_TEST_NEW=loaded\n"), 0o600))
	t.Setenv("SNIPMAN_TEST_NEW", "")
	os.Unsetenv("SNIPMAN_TEST_NEW")

	require.NoError(t, LoadDotEnv())
	assert.Equal(t, "from-env", os.Getenv("SNIPMAN_TEST_KEEP"), "existing env is not overridden")
	assert.Equal(t, "loaded", os.Getenv("SNIPMAN_TEST_NEW"))
}

func TestDocs_ListAndRaw(t *testing.T) {
	isolate(t)

	topics := dataMap(t, mustRun(t, "docs"))["topics"].([]any)
	assert.NotEmpty(t, topics)

	stdout, _, err := runCLI(t, nil, "", []string{"docs", "storage", "--raw"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(stdout), "# Storage"), "raw docs:\n%s", stdout)

	_, _, err = runCLI(t, nil, "", []string{"docs", "nope"})
	assert.Error(t, err, "unknown topic")
}
