package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/txcompanion/internal/config"
	"github.com/mark3labs/txcompanion/internal/library"
	"github.com/mark3labs/txcompanion/internal/model"
	"github.com/mark3labs/txcompanion/internal/nats"
	"github.com/mark3labs/txcompanion/internal/sdcard"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestServer(t *testing.T) (*Server, *library.Store) {
	t.Helper()
	e, err := nats.Open(context.Background(), t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })

	cfg := &config.Config{
		Radio:        "x9d+",
		FirmwareType: "opentx-x9d+",
		SDPath:       "/sd",
		ChannelOrder: "RETA",
	}
	card := &sdcard.Card{Fs: afero.NewMemMapFs(), Path: cfg.SDPath}
	store := library.NewStore(e.JS, e.Stream)
	return New(store, cfg, card), store
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
}

// extractText extracts text from CallToolResult.Content[0]
func extractText(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return ""
	}
	if textContent, ok := result.Content[0].(mcp.TextContent); ok {
		return textContent.Text
	}
	return ""
}

const answers = `
model: {name: Trainer, category: Planes}
pages:
  models: {vehicle: plane}
  throttle: {channel: 3, cut_switch: SF-down}
  ailerons: {ailerons: single}
  tails: {tail: standard}
  conclusion: {understood: true}
`

func TestHandleListRadios(t *testing.T) {
	srv, _ := setupTestServer(t)
	res, err := srv.handleListRadios(context.Background(), call("list-radios", nil))
	require.NoError(t, err)
	text := extractText(res)
	assert.Contains(t, text, "x9d+: FrSky Taranis X9D+")
	assert.Contains(t, text, "sky9x")
}

func TestHandleRunWizard(t *testing.T) {
	ctx := context.Background()
	srv, store := setupTestServer(t)

	res, err := srv.handleRunWizard(ctx, call("run-wizard", map[string]any{"answers": answers}))
	require.NoError(t, err)
	text := extractText(res)
	assert.Contains(t, text, "Model Name: Trainer")
	assert.Contains(t, text, "Channel 3: [THR, 100][CUT, -100]")
	assert.NotContains(t, text, "Saved as")

	models, err := store.List(ctx, "x9d+")
	require.NoError(t, err)
	assert.Empty(t, models, "dry run stores nothing")

	res, err = srv.handleRunWizard(ctx, call("run-wizard", map[string]any{"answers": answers, "save": true}))
	require.NoError(t, err)
	assert.Contains(t, extractText(res), "Saved as")

	models, err = store.List(ctx, "x9d+")
	require.NoError(t, err)
	require.Len(t, models, 1)
	assert.Equal(t, "Planes", models[0].Category)
}

func TestHandleRunWizard_SaveTwiceRebuilds(t *testing.T) {
	ctx := context.Background()
	srv, store := setupTestServer(t)

	res, err := srv.handleRunWizard(ctx, call("run-wizard", map[string]any{"answers": answers, "save": true}))
	require.NoError(t, err)
	require.Contains(t, extractText(res), "Saved as")
	first, err := store.Get(ctx, "x9d+", "Trainer")
	require.NoError(t, err)

	res, err = srv.handleRunWizard(ctx, call("run-wizard", map[string]any{"answers": answers, "save": true}))
	require.NoError(t, err)
	assert.Contains(t, extractText(res), "Rebuilt "+first.Model.ID)

	models, err := store.List(ctx, "x9d+")
	require.NoError(t, err)
	require.Len(t, models, 1)

	e, err := store.Get(ctx, "x9d+", "Trainer")
	require.NoError(t, err)
	assert.Equal(t, first.Model.ID, e.Model.ID)
	assert.Equal(t, 2, e.Revision)
	assert.Equal(t, first.Model.CreatedAt.Unix(), e.Model.CreatedAt.Unix())
}

func TestHandleRunWizard_Errors(t *testing.T) {
	srv, _ := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing answers", nil, "missing 'answers'"},
		{"schema violation", map[string]any{"answers": "pages: {wheels: {}}"}, "schema validation failed"},
		{"unknown radio", map[string]any{"answers": "radio: zz\npages: {}"}, "unknown radio"},
		{"refused page", map[string]any{"answers": "pages: {models: {vehicle: plane}}"}, "error: page models"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := srv.handleRunWizard(ctx, call("run-wizard", tt.args))
			require.NoError(t, err)
			assert.Contains(t, extractText(res), tt.want)
		})
	}
}

func TestHandleListAndShowModels(t *testing.T) {
	ctx := context.Background()
	srv, store := setupTestServer(t)

	res, err := srv.handleListModels(ctx, call("list-models", nil))
	require.NoError(t, err)
	assert.Equal(t, "No models stored for x9d+", extractText(res))

	saved, err := store.Save(ctx, &model.Configuration{Name: "Zagi", Radio: "x9d+", Vehicle: model.VehiclePlane})
	require.NoError(t, err)

	res, err = srv.handleListModels(ctx, call("list-models", map[string]any{"radio": "x9d+"}))
	require.NoError(t, err)
	assert.Contains(t, extractText(res), saved.ID[:8])
	assert.Contains(t, extractText(res), "Zagi")

	res, err = srv.handleShowModel(ctx, call("show-model", map[string]any{"model": "zagi"}))
	require.NoError(t, err)
	assert.Contains(t, extractText(res), "id: "+saved.ID)

	res, err = srv.handleShowModel(ctx, call("show-model", map[string]any{"model": "nope"}))
	require.NoError(t, err)
	assert.Contains(t, extractText(res), "No model matching")

	res, err = srv.handleShowModel(ctx, call("show-model", nil))
	require.NoError(t, err)
	assert.Contains(t, extractText(res), "missing 'model'")

	res, err = srv.handleListModels(ctx, call("list-models", map[string]any{"radio": "zz"}))
	require.NoError(t, err)
	assert.Contains(t, extractText(res), "unknown radio")
}

func TestHandleSDCardStatus(t *testing.T) {
	srv, _ := setupTestServer(t)
	ctx := context.Background()

	res, err := srv.handleSDCardStatus(ctx, call("sdcard-status", nil))
	require.NoError(t, err)
	var st sdcard.Status
	require.NoError(t, json.Unmarshal([]byte(extractText(res)), &st))
	assert.True(t, st.UpdateAvailable)
	assert.Equal(t, "taranis-x9", st.Family)

	require.NoError(t, srv.card.WriteRecords("taranis-x9", sdcard.RequiredVersion))
	res, err = srv.handleSDCardStatus(ctx, call("sdcard-status", nil))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(extractText(res)), &st))
	assert.True(t, st.Current)

	srv.card.Path = ""
	res, err = srv.handleSDCardStatus(ctx, call("sdcard-status", nil))
	require.NoError(t, err)
	assert.Contains(t, extractText(res), "No SD card folder")
}

func TestStartStop(t *testing.T) {
	srv, _ := setupTestServer(t)
	port, err := srv.Start(context.Background())
	require.NoError(t, err)
	assert.NotZero(t, port)
	assert.Contains(t, srv.URL(), "/mcp")

	_, err = srv.Start(context.Background())
	require.Error(t, err)

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop())
}
