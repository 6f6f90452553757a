package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/ext/lightspunctual"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/lumen/pkg/ext/emissivestrength"
	"github.com/taigrr/lumen/pkg/fetch"
	"github.com/taigrr/lumen/pkg/scene"
	"github.com/taigrr/lumen/pkg/scene/scenetest"
	"github.com/taigrr/lumen/pkg/variant"
)

func sourceGLB(t *testing.T, names ...string) []byte {
	t.Helper()
	doc := scenetest.Document(names...)
	doc.ExtensionsUsed = []string{lightspunctual.ExtensionName}
	doc.Extensions = gltf.Extensions{
		lightspunctual.ExtensionName: json.RawMessage(`{"lights":[{"type":"point"}]}`),
	}
	doc.Nodes[0].Extensions = gltf.Extensions{
		lightspunctual.ExtensionName: json.RawMessage(`{"light":0}`),
	}
	data, err := scene.Encode(doc)
	require.NoError(t, err)
	return data
}

func assertNoLights(t *testing.T, doc *gltf.Document) {
	t.Helper()
	assert.False(t, variant.Declared(doc, lightspunctual.ExtensionName))
	assert.NotContains(t, doc.Extensions, lightspunctual.ExtensionName)
	for _, n := range doc.Nodes {
		assert.NotContains(t, n.Extensions, lightspunctual.ExtensionName)
	}
}

func serve(t *testing.T, data []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "model/gltf-binary")
		w.Write(data)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRunner(t *testing.T, logs *bytes.Buffer) *Runner {
	t.Helper()
	r := NewRunner()
	r.OutDir = t.TempDir()
	r.Logger = slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return r
}

func TestRunWritesBothVariants(t *testing.T) {
	srv := serve(t, sourceGLB(t, "LampGlass", "Base"))
	var logs bytes.Buffer
	r := newRunner(t, &logs)

	results, err := r.Run(context.Background(), srv.URL+"/light_led_bulb.glb")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "off", results[0].Variant)
	assert.Equal(t, "on", results[1].Variant)
	assert.Equal(t, []string{"LampGlass"}, results[1].Selected)
	assert.Equal(t, 2, results[1].Boosted)

	off, err := scene.Open(filepath.Join(r.OutDir, "light_off.glb"))
	require.NoError(t, err)
	assert.Equal(t, variant.Black, off.Materials[0].EmissiveFactor)
	assert.Equal(t, [3]float64{0.2, 0.2, 0.2}, off.Materials[1].EmissiveFactor)
	assertNoLights(t, off)
	assert.False(t, variant.Declared(off, emissivestrength.ExtensionName))

	on, err := scene.Open(filepath.Join(r.OutDir, "light_on.glb"))
	require.NoError(t, err)
	assert.Equal(t, variant.WarmWhite, on.Materials[0].EmissiveFactor)
	assertNoLights(t, on)
	assert.True(t, variant.Declared(on, emissivestrength.ExtensionName))
	for _, m := range on.Materials {
		s, ok := emissivestrength.Get(m)
		assert.True(t, ok, m.Name)
		assert.Equal(t, 2.5, s, m.Name)
	}

	for _, msg := range []string{"downloading source model", "loaded", "creating variant", "wrote variant", "done"} {
		assert.Contains(t, logs.String(), msg)
	}
}

func TestRunFetchErrorWritesNothing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	var logs bytes.Buffer
	r := newRunner(t, &logs)

	results, err := r.Run(context.Background(), srv.URL)
	var fe *fetch.Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusInternalServerError, fe.StatusCode)
	assert.Empty(t, results)

	entries, err := os.ReadDir(r.OutDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRunDecodeError(t *testing.T) {
	srv := serve(t, []byte("<html>not a model</html>"))
	var logs bytes.Buffer

	_, err := newRunner(t, &logs).Run(context.Background(), srv.URL)
	var de *scene.DecodeError
	assert.True(t, errors.As(err, &de))
}

func TestRunOffWriteFailureSkipsOn(t *testing.T) {
	srv := serve(t, sourceGLB(t, "Bulb"))
	var logs bytes.Buffer
	r := newRunner(t, &logs)
	off := variant.Off()
	off.Output = filepath.Join("missing", "light_off.glb")
	r.Variants = []variant.Spec{off, variant.On()}

	results, err := r.Run(context.Background(), srv.URL)
	var we *scene.WriteError
	require.True(t, errors.As(err, &we))
	assert.Empty(t, results)

	_, statErr := os.Stat(filepath.Join(r.OutDir, "light_on.glb"))
	assert.ErrorIs(t, statErr, os.ErrNotExist)
	assert.NotContains(t, logs.String(), "variant=on")
}

func TestRunLocalSourceWithoutStrength(t *testing.T) {
	src := filepath.Join(t.TempDir(), "bulb.glb")
	require.NoError(t, os.WriteFile(src, sourceGLB(t, "Base", "Wire"), 0o644))

	var logs bytes.Buffer
	r := newRunner(t, &logs)
	on := variant.On()
	on.Strength = 0
	r.Variants = []variant.Spec{variant.Off(), on}

	results, err := r.Run(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[1].Fallback)
	assert.Equal(t, 0, results[1].Boosted)

	doc, err := scene.Open(results[1].Path)
	require.NoError(t, err)
	for _, m := range doc.Materials {
		assert.Equal(t, variant.WarmWhite, m.EmissiveFactor, m.Name)
		_, ok := emissivestrength.Get(m)
		assert.False(t, ok, m.Name)
	}
	assert.Contains(t, logs.String(), "no material names matched")
}

func TestRunCanceled(t *testing.T) {
	srv := serve(t, sourceGLB(t, "Bulb"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var logs bytes.Buffer
	_, err := newRunner(t, &logs).Run(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}
