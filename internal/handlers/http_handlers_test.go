package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheeladmin/internal/client"
	"wheeladmin/internal/models"
	"wheeladmin/internal/sandbox"
	"wheeladmin/internal/services"
)

const (
	identityHeader  = "X-Forwarded-Principal"
	adminPrincipal  = "ryjl3-tyaaa-aaaaa-aaaba-cai"
	memberPrincipal = "mxzaz-hqaaa-aaaar-qaada-cai"
	winnerPrincipal = "xevnm-gaaaa-aaaar-qafnq-cai"
	selfPrincipal   = "ss2fx-dyaaa-aaaar-qacoq-cai"
)

// fakeBoundaryNode serves the registration API and reports every
// registration as available.
type fakeBoundaryNode struct {
	mu      sync.Mutex
	created []string
	deleted []string
}

func (n *fakeBoundaryNode) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	n.mu.Lock()
	defer n.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/registrations":
		var body struct {
			Name string `json:"name"`
		}
		json.NewDecoder(r.Body).Decode(&body)
		n.created = append(n.created, body.Name)
		fmt.Fprintf(w, `{"id":"req-%d"}`, len(n.created))
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/registrations/"):
		fmt.Fprint(w, `{"name":"wheel.example.com","canister":"ss2fx-dyaaa-aaaar-qacoq-cai","state":"Available"}`)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/registrations/"):
		n.deleted = append(n.deleted, strings.TrimPrefix(r.URL.Path, "/registrations/"))
		fmt.Fprint(w, `{}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (n *fakeBoundaryNode) Created() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.created...)
}

func (n *fakeBoundaryNode) Deleted() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.deleted...)
}

type testServer struct {
	router  *gin.Engine
	backend *sandbox.Backend
	bn      *fakeBoundaryNode
}

func newTestServer(t *testing.T, withDefaults bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := sandbox.NewBackend(selfPrincipal)
	require.NoError(t, b.Bootstrap(adminPrincipal, withDefaults))

	assetRouter, stop, err := sandbox.NewRouter(b)
	require.NoError(t, err)
	assetSrv := httptest.NewServer(assetRouter)
	bn := &fakeBoundaryNode{}
	bnSrv := httptest.NewServer(bn)

	prizes := services.NewPrizeOrder(b)
	spinner := services.NewSpinner(prizes.Snapshot)
	scanner := services.NewScanner(b)
	t.Cleanup(func() {
		spinner.Close()
		scanner.Close()
		stop()
		assetSrv.Close()
		bnSrv.Close()
	})

	fetcher := client.NewAssetFetcher(assetSrv.URL, assetSrv.Client())
	h := NewHTTPHandler(Services{
		Prizes:   prizes,
		Spinner:  spinner,
		Assets:   services.NewWheelAssets(b, fetcher),
		Scanner:  scanner,
		Team:     services.NewTeam(b),
		Activity: services.NewActivity(b),
		Domains:  services.NewCustomDomains(b, client.NewBnRegistrationClient(bnSrv.URL+"/registrations", bnSrv.Client(), false)),
		Wallet:   services.NewWallet(b),
		AssetURL: fetcher.URL,
	}, identityHeader)

	router := gin.New()
	h.RegisterRoutes(router)
	return &testServer{router: router, backend: b, bn: bn}
}

func (s *testServer) do(t *testing.T, method, path, caller string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if caller != "" {
		req.Header.Set(identityHeader, caller)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["error"]
}

type prizeOrderBody struct {
	OrderedPrizes []services.OrderedWheelPrize `json:"ordered_prizes"`
	IsDirty       bool                         `json:"is_dirty"`
	IsSaving      bool                         `json:"is_saving"`
}

func TestPublicRoutes(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/wheel/data", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode[[]services.WheelDataEntry](t, w))

	w = s.do(t, http.MethodGet, "/api/wheel/current", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, decode[services.SpinState](t, w).CurrentPrize)
}

func TestPrincipalMiddleware(t *testing.T) {
	s := newTestServer(t, false)

	cases := []struct {
		name   string
		caller string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"malformed", "not-a-principal", http.StatusUnauthorized},
		{"anonymous", "2vxsx-fae", http.StatusUnauthorized},
		{"admin", adminPrincipal, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/me", tc.caller, nil)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
		})
	}
}

func TestRoles(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/me", memberPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	member := decode[models.UserProfile](t, w)
	assert.Equal(t, models.UserRoleUnassigned, member.Role)

	w = s.do(t, http.MethodGet, "/api/assets", memberPrincipal, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w = s.do(t, http.MethodPost, "/api/scan", memberPrincipal, gin.H{"text": winnerPrincipal})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPatch, "/api/team/"+member.ID, adminPrincipal, gin.H{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodPatch, "/api/team/"+member.ID, adminPrincipal, gin.H{"role": "scanner"})
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/scan", memberPrincipal, gin.H{"text": winnerPrincipal})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, services.ScanSuccess, decode[services.ScanResult](t, w).Status)

	w = s.do(t, http.MethodGet, "/api/scan", memberPrincipal, nil)
	assert.Equal(t, winnerPrincipal, decode[services.ScanResult](t, w).Principal)

	// scanners cannot manage the wheel
	w = s.do(t, http.MethodGet, "/api/wheel/prizes", memberPrincipal, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestScanErrors(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodPost, "/api/scan", adminPrincipal, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/scan", adminPrincipal, gin.H{"text": "hello"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Failed to extract prize: Invalid principal (code 400)", errorOf(t, w))

	w = s.do(t, http.MethodPost, "/api/scan", adminPrincipal, gin.H{"text": winnerPrincipal})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/api/scan", adminPrincipal, gin.H{"text": winnerPrincipal})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorOf(t, w), "already been extracted")

	w = s.do(t, http.MethodGet, "/api/scan", adminPrincipal, nil)
	assert.Equal(t, services.ScanError, decode[services.ScanResult](t, w).Status)
}

func TestPrizeOrderRoutes(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodPost, "/api/wheel/prizes/refresh", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	order := decode[prizeOrderBody](t, w)
	require.Len(t, order.OrderedPrizes, 4)
	assert.False(t, order.IsDirty)

	t.Run("invalid index", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/wheel/prizes/abc/duplicate", adminPrincipal, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = s.do(t, http.MethodPost, "/api/wheel/prizes/9/duplicate", adminPrincipal, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("sole instance", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, "/api/wheel/prizes/0", adminPrincipal, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, errorOf(t, w), "Failed to remove prize")
	})

	w = s.do(t, http.MethodPost, "/api/wheel/prizes/0/duplicate", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	order = decode[prizeOrderBody](t, w)
	require.Len(t, order.OrderedPrizes, 5)
	assert.True(t, order.IsDirty)
	assert.Equal(t, order.OrderedPrizes[0].WheelAssetID, order.OrderedPrizes[1].WheelAssetID)

	// the wheel keeps showing the saved list until the edit is saved
	w = s.do(t, http.MethodGet, "/api/wheel/data", "", nil)
	assert.Len(t, decode[[]services.WheelDataEntry](t, w), 4)

	t.Run("reorder", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/wheel/prizes/order", adminPrincipal, gin.H{"unique_indexes": []float64{1}})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		indexes := make([]float64, 0, len(order.OrderedPrizes))
		for i := len(order.OrderedPrizes) - 1; i >= 0; i-- {
			indexes = append(indexes, order.OrderedPrizes[i].UniqueIndex)
		}
		w = s.do(t, http.MethodPut, "/api/wheel/prizes/order", adminPrincipal, gin.H{"unique_indexes": indexes})
		require.Equal(t, http.StatusOK, w.Code)
		reordered := decode[prizeOrderBody](t, w)
		assert.Equal(t, order.OrderedPrizes[4].WheelAssetID, reordered.OrderedPrizes[0].WheelAssetID)
		order = reordered
	})

	t.Run("settings", func(t *testing.T) {
		id := order.OrderedPrizes[0].WheelAssetID
		w := s.do(t, http.MethodPatch, "/api/wheel/prizes/"+id, adminPrincipal, gin.H{"wheel_ui_settings": gin.H{"background_color_hex": "blue"}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		w = s.do(t, http.MethodPatch, "/api/wheel/prizes/missing", adminPrincipal, gin.H{"wheel_ui_settings": gin.H{"background_color_hex": "#112233"}})
		assert.Equal(t, http.StatusNotFound, w.Code)
		w = s.do(t, http.MethodPatch, "/api/wheel/prizes/"+id, adminPrincipal, gin.H{"wheel_ui_settings": gin.H{"background_color_hex": "#112233"}})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	w = s.do(t, http.MethodPost, "/api/wheel/prizes/save", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, decode[prizeOrderBody](t, w).IsDirty)

	saved, err := s.backend.ListWheelPrizes(client.WithCaller(t.Context(), adminPrincipal))
	require.NoError(t, err)
	require.Len(t, saved, 5)
	assert.Equal(t, order.OrderedPrizes[0].WheelAssetID, saved[0].WheelAssetID)
	assert.Equal(t, "#112233", saved[0].WheelUISettings.BackgroundColorHex)

	w = s.do(t, http.MethodGet, "/api/wheel/data", "", nil)
	assert.Len(t, decode[[]services.WheelDataEntry](t, w), 5)

	w = s.do(t, http.MethodGet, "/api/wheel/probabilities", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]services.PrizeWithProbability](t, w), 4)

	t.Run("reset", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/wheel/prizes/1/duplicate", adminPrincipal, nil)
		require.Equal(t, http.StatusOK, w.Code)
		w = s.do(t, http.MethodPost, "/api/wheel/prizes/reset", adminPrincipal, nil)
		require.Equal(t, http.StatusOK, w.Code)
		reset := decode[prizeOrderBody](t, w)
		assert.False(t, reset.IsDirty)
		assert.Len(t, reset.OrderedPrizes, 5)
	})
}

func TestSpinRoutes(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodPost, "/api/wheel/spin/0", adminPrincipal, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code, "no prizes fetched yet")

	w = s.do(t, http.MethodPost, "/api/wheel/prizes/refresh", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/wheel/spin/2", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	state := decode[services.SpinState](t, w)
	require.NotNil(t, state.CurrentPrize)
	assert.Equal(t, 2, state.CurrentPrize.Index)
	assert.False(t, state.IsModalOpen)

	w = s.do(t, http.MethodPost, "/api/wheel/spin/stop", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[services.SpinState](t, w).IsModalOpen)

	w = s.do(t, http.MethodGet, "/api/wheel/current", "", nil)
	assert.Equal(t, 2, decode[services.SpinState](t, w).CurrentPrize.Index)

	w = s.do(t, http.MethodDelete, "/api/wheel/current", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	state = decode[services.SpinState](t, w)
	assert.Nil(t, state.CurrentPrize)
	assert.False(t, state.IsModalOpen)
}

func TestAssetRoutes(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodPost, "/api/assets", adminPrincipal, gin.H{"total_amount": 3, "asset_type_config": gin.H{"gadget": gin.H{}}})
	assert.Equal(t, http.StatusBadRequest, w.Code, "name is required")
	w = s.do(t, http.MethodPost, "/api/assets", adminPrincipal, gin.H{"name": "Mug", "total_amount": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code, "asset type is required")

	w = s.do(t, http.MethodPost, "/api/assets", adminPrincipal, gin.H{
		"name":              "Mug",
		"total_amount":      3,
		"asset_type_config": gin.H{"gadget": gin.H{"article_type": nil}},
		"wheel_ui_settings": gin.H{"background_color_hex": "#00FF00"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	mug := decode[models.WheelAsset](t, w)
	assert.Equal(t, uint32(3), mug.AvailableAmount)

	w = s.do(t, http.MethodPatch, "/api/assets/"+mug.ID, adminPrincipal, gin.H{"name": "Big mug", "state": gin.H{"disabled": nil}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.WheelAsset](t, w)
	assert.Equal(t, "Big mug", updated.Name)
	assert.Equal(t, models.WheelAssetStateDisabled, updated.State)

	w = s.do(t, http.MethodGet, "/api/assets?state=disabled", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.WheelAsset](t, w), 1)
	w = s.do(t, http.MethodGet, "/api/assets?state=bogus", adminPrincipal, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, "/api/assets/"+mug.ID, adminPrincipal, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodGet, "/api/assets/"+mug.ID, adminPrincipal, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/assets/tokens", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	tokens := decode[[]models.WheelAsset](t, w)
	require.Len(t, tokens, 4)

	w = s.do(t, http.MethodDelete, "/api/assets/"+tokens[0].ID, adminPrincipal, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Failed to delete wheel asset: Token wheel assets cannot be deleted, disable them instead (code 400)", errorOf(t, w))

	w = s.do(t, http.MethodGet, "/api/assets/tokens/usd-sum", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "40.00", decode[map[string]string](t, w)["usd_value"])

	w = s.do(t, http.MethodPost, "/api/assets/defaults", adminPrincipal, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/assets/tokens/refresh", adminPrincipal, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{B: 255, A: 255})
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func TestAssetImageRoutes(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodGet, "/api/assets/tokens", adminPrincipal, nil)
	id := decode[[]models.WheelAsset](t, w)[0].ID

	upload := func(kind string, body io.Reader, contentType string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/assets/"+id+"/images/"+kind, body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set(identityHeader, adminPrincipal)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	w = upload("banner", bytes.NewReader(pngImage(t, 8, 8)), "image/png")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload("wheel", strings.NewReader("plain text"), "text/plain")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = upload("wheel", bytes.NewReader(pngImage(t, 1024, 256)), "application/octet-stream")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotNil(t, decode[models.WheelAsset](t, w).WheelImagePath)

	form := new(bytes.Buffer)
	mw := multipart.NewWriter(form)
	part, err := mw.CreateFormFile("image", "modal.png")
	require.NoError(t, err)
	_, err = part.Write(pngImage(t, 1024, 256))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	w = upload("modal", form, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/assets/"+id+"/images/wheel", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	cfg, err := png.DecodeConfig(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 512, cfg.Width)
	assert.Equal(t, 128, cfg.Height)

	// modal images keep their size
	w = s.do(t, http.MethodGet, "/api/assets/"+id+"/images/modal", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cfg, err = png.DecodeConfig(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Width)
}

func TestImportAssetsCSV(t *testing.T) {
	s := newTestServer(t, false)

	form := new(bytes.Buffer)
	mw := multipart.NewWriter(form)
	part, err := mw.CreateFormFile("assetsCSV", "assets.csv")
	require.NoError(t, err)
	_, err = io.WriteString(part, "Mug,5,#FF0000\nbroken\nCap,many\nPen,3\n")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/assets/import", form)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set(identityHeader, adminPrincipal)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Created []models.WheelAsset `json:"created"`
		Skipped int                 `json:"skipped"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Created, 2)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, "Mug", res.Created[0].Name)
	assert.Equal(t, "#FF0000", res.Created[0].WheelUISettings.BackgroundColorHex)
	assert.Equal(t, uint32(3), res.Created[1].TotalAmount)
}

func TestActivityRoutes(t *testing.T) {
	s := newTestServer(t, true)

	w := s.do(t, http.MethodPost, "/api/scan", adminPrincipal, gin.H{"text": winnerPrincipal})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/activity", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []struct {
		ID                    string              `json:"id"`
		ExtractedForPrincipal string              `json:"extracted_for_principal"`
		ExtractedBy           *models.UserProfile `json:"extracted_by"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, winnerPrincipal, entries[0].ExtractedForPrincipal)
	require.NotNil(t, entries[0].ExtractedBy)
	assert.Equal(t, adminPrincipal, entries[0].ExtractedBy.PrincipalID)

	w = s.do(t, http.MethodGet, "/api/activity/"+entries[0].ID, adminPrincipal, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/activity/missing", adminPrincipal, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/activity/stats", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[models.WheelPrizeExtractionsStats](t, w)
	assert.Equal(t, uint32(1), stats.TotalCompletedExtractions)
	assert.Equal(t, 1.0, stats.TotalSpentUsd)

	w = s.do(t, http.MethodGet, "/api/activity/export", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	body := w.Body.String()
	require.True(t, strings.HasPrefix(body, "\xef\xbb\xbf"))
	lines := strings.Split(strings.TrimSpace(strings.TrimPrefix(body, "\xef\xbb\xbf")), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Created at,Principal,Scanned by,Wheel asset,State,Error", lines[0])
	assert.Contains(t, lines[1], winnerPrincipal)
	assert.Contains(t, lines[1], ",completed,")
}

func TestTeamRoutes(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPatch, "/api/me", adminPrincipal, gin.H{"username": "  Alice  "})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	admin := decode[models.UserProfile](t, w)
	assert.Equal(t, "Alice", admin.Username)

	w = s.do(t, http.MethodPatch, "/api/me", adminPrincipal, gin.H{"username": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/me", memberPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	member := decode[models.UserProfile](t, w)

	w = s.do(t, http.MethodGet, "/api/team", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.UserProfile](t, w), 2)

	w = s.do(t, http.MethodPatch, "/api/team/"+member.ID, adminPrincipal, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, "/api/team/"+admin.ID, adminPrincipal, gin.H{"role": "scanner"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorOf(t, w), "Failed to update team member")

	w = s.do(t, http.MethodDelete, "/api/team/"+member.ID, adminPrincipal, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodDelete, "/api/team/"+member.ID, adminPrincipal, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTransferRoute(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPost, "/api/transfers", adminPrincipal, gin.H{"ledger_canister_id": adminPrincipal, "to": winnerPrincipal, "amount": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/transfers", adminPrincipal, gin.H{"ledger_canister_id": adminPrincipal, "to": "2vxsx-fae", "amount": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/transfers", adminPrincipal, gin.H{"ledger_canister_id": adminPrincipal, "to": winnerPrincipal, "amount": 10})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, float64(0), decode[map[string]float64](t, w)["block_index"])
}

func TestDomainRoutes(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPost, "/api/domains", adminPrincipal, gin.H{"domain_name": "not a domain"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/domains", adminPrincipal, gin.H{"domain_name": "Wheel.Example.com"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var record struct {
		ID                  string          `json:"id"`
		DomainName          string          `json:"domain_name"`
		BnRegistrationState json.RawMessage `json:"bn_registration_state"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.Equal(t, "wheel.example.com", record.DomainName)
	assert.JSONEq(t, `{"pending":{"bn_registration_id":"req-1"}}`, string(record.BnRegistrationState))
	assert.Equal(t, []string{"wheel.example.com"}, s.bn.Created())

	w = s.do(t, http.MethodPost, "/api/domains/"+record.ID+"/register", adminPrincipal, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, "/api/domains/"+record.ID+"/poll", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &record))
	assert.JSONEq(t, `{"registered":{"bn_registration_id":"req-1"}}`, string(record.BnRegistrationState))

	w = s.do(t, http.MethodGet, "/api/domains", adminPrincipal, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]json.RawMessage](t, w), 1)

	w = s.do(t, http.MethodDelete, "/api/domains/"+record.ID, adminPrincipal, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []string{"req-1"}, s.bn.Deleted())

	w = s.do(t, http.MethodPost, "/api/domains/"+record.ID+"/poll", adminPrincipal, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
