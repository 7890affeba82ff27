package http

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Badsnus/qr-styler/internal/domain/service"
	"github.com/Badsnus/qr-styler/pkg/logger"
	qr "github.com/Badsnus/qr-styler/pkg/qrcode"
	"github.com/Badsnus/qr-styler/pkg/qrstyle"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	return newTestServerWith(t, qr.NewRenderer(nil), nil)
}

func newTestServerWith(t *testing.T, renderer *qr.Renderer, keys map[string]int64) *httptest.Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics, err := service.NewMetrics(reg)
	require.NoError(t, err)

	defaults := qrstyle.Default()
	defaults.Width, defaults.Height = 120, 120

	srv := httptest.NewServer(NewHandler(Options{
		Presets:  service.NewPresetService(nil, 0),
		Qr:       service.NewQrService(renderer, metrics, logger.Nop()),
		Defaults: defaults,
		Gatherer: reg,
		Logger:   logger.Nop(),
		APIKeys:  keys,
	}))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func TestPresets(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/presets", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []presetResponse
	decodeBody(t, resp, &list)
	require.Len(t, list, len(qrstyle.BuiltinPresets()))
	assert.Equal(t, "Classic", list[0].Name)

	resp = do(t, http.MethodGet, srv.URL+"/presets/ocean", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail presetDetailResponse
	decodeBody(t, resp, &detail)
	assert.Equal(t, "Ocean", detail.Name)
	assert.Nil(t, detail.Config.Width)
	assert.Equal(t, qrstyle.DotRounded, detail.State.DotsOptions.Type)
	assert.Equal(t, 120, detail.State.Width)

	resp = do(t, http.MethodGet, srv.URL+"/presets/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/presets/classic", "")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/presets", `{"name":"mine"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "no storage configured")
}

func TestValidate(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/validate", `{"width":-5,"data":""}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var v validateResponse
	decodeBody(t, resp, &v)
	assert.False(t, v.Valid)

	var fields []string
	for _, e := range v.Errors {
		fields = append(fields, e.Field)
	}
	assert.ElementsMatch(t, []string{"width", "data"}, fields)

	resp = do(t, http.MethodPost, srv.URL+"/validate", "")
	decodeBody(t, resp, &v)
	assert.True(t, v.Valid)

	resp = do(t, http.MethodPost, srv.URL+"/validate", `{"dotsOptions":{"type":"stars"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/validate", `{"colour":"red"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPatchForm(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPatch, srv.URL+"/form", `{"set":{"dots.type":"classy","dots.gradient.enabled":"true"}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var state qrstyle.FormState
	decodeBody(t, resp, &state)
	assert.Equal(t, qrstyle.DotClassy, state.DotsOptions.Type)
	assert.True(t, state.DotsOptions.Gradient.Enabled)

	resp = do(t, http.MethodPatch, srv.URL+"/form", `{"set":{"dots.shape":"x"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	var e errorResponse
	decodeBody(t, resp, &e)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "dots.shape", e.Fields[0].Field)
}

func TestRender(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/render?preset=ocean", `{"type":"svg","data":"hello"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	assert.NotEmpty(t, resp.Header.Get("X-Qr-Version"))
	var buf bytes.Buffer
	_, err := buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `fill="#006994"`)

	resp = do(t, http.MethodPost, srv.URL+"/render", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	resp = do(t, http.MethodPost, srv.URL+"/render", `{"qrOptions":{"typeNumber":1,"mode":"Byte","errorCorrectionLevel":"H"},"data":"`+strings.Repeat("x", 100)+`"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/render?preset=missing", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/metrics", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	buf.Reset()
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `qrstyler_renders_total{result="ok",type="svg"} 1`)
	assert.Contains(t, buf.String(), `qrstyler_renders_total{result="invalid",type="canvas"} 1`)
}

func TestDefaultsAndFields(t *testing.T) {
	srv := newTestServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/defaults", "")
	var state qrstyle.FormState
	decodeBody(t, resp, &state)
	assert.Equal(t, 120, state.Width)

	resp = do(t, http.MethodGet, srv.URL+"/fields", "")
	var fields []string
	decodeBody(t, resp, &fields)
	assert.Contains(t, fields, "dots.gradient.stops")
}

func TestRender_ImageCredentialsStayHome(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 4, 4))))
	var gotAuth []string
	remote := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		_, _ = w.Write(buf.Bytes())
	}))
	defer remote.Close()

	loader := qr.NewLoader(time.Second, false)
	loader.Credentials = "Bearer server-secret"
	loader.CredentialHosts = []string{"assets.internal"}
	srv := newTestServerWith(t, qr.NewRenderer(loader), nil)

	body := `{"image":"` + remote.URL + `/logo.png","imageOptions":{"imageSize":0.4,"margin":0,"crossOrigin":"use-credentials"}}`
	resp := do(t, http.MethodPost, srv.URL+"/render", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{""}, gotAuth)
}

func TestOwnerNeedsMatchingKey(t *testing.T) {
	srv := newTestServerWith(t, qr.NewRenderer(nil), map[string]int64{"k-1001": 1001})

	get := func(path string, header http.Header) int {
		req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
		require.NoError(t, err)
		req.Header = header
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusForbidden, get("/presets?owner=42", nil), "anonymous caller naming an owner")
	assert.Equal(t, http.StatusUnauthorized, get("/presets", http.Header{"X-Api-Key": {"stolen"}}))
	assert.Equal(t, http.StatusForbidden, get("/presets?owner=42", http.Header{"X-Api-Key": {"k-1001"}}))
	assert.Equal(t, http.StatusOK, get("/presets?owner=1001", http.Header{"X-Api-Key": {"k-1001"}}))
	assert.Equal(t, http.StatusOK, get("/presets", http.Header{"Authorization": {"Bearer k-1001"}}))
	assert.Equal(t, http.StatusForbidden, get("/presets/ocean?owner=7", nil))

	resp := do(t, http.MethodPost, srv.URL+"/presets?owner=1001", `{"name":"mine"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = do(t, http.MethodPut, srv.URL+"/presets/mine", `{"state":{}}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
