package client_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wheeladmin/internal/client"
	"wheeladmin/internal/errorx"
	"wheeladmin/internal/models"
	"wheeladmin/internal/sandbox"
)

const (
	adminPrincipal  = "ryjl3-tyaaa-aaaaa-aaaba-cai"
	otherPrincipal  = "mxzaz-hqaaa-aaaar-qaada-cai"
	winnerPrincipal = "xevnm-gaaaa-aaaar-qafnq-cai"
)

func newSandboxActor(t *testing.T) client.Actor {
	t.Helper()
	gin.SetMode(gin.TestMode)

	b := sandbox.NewBackend("ss2fx-dyaaa-aaaar-qacoq-cai")
	require.NoError(t, b.Bootstrap(adminPrincipal, false))
	router, stop, err := sandbox.NewRouter(b)
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	actor, err := client.DialRPCActor(context.Background(), srv.URL+"/rpc")
	require.NoError(t, err)
	t.Cleanup(func() {
		actor.Close()
		stop()
		srv.Close()
	})
	return actor
}

func TestRPCActor_PrizesRoundTrip(t *testing.T) {
	actor := newSandboxActor(t)
	ctx := client.WithCaller(context.Background(), adminPrincipal)

	a, err := actor.CreateWheelAsset(ctx, models.CreateWheelAssetRequest{
		Name:            "Hoodie",
		TotalAmount:     3,
		AssetTypeConfig: models.Gadget{},
		WheelUISettings: &models.WheelAssetUISettings{BackgroundColorHex: "#111111"},
	})
	require.NoError(t, err)
	assert.Equal(t, uint32(3), a.AvailableAmount)
	assert.IsType(t, models.Gadget{}, a.AssetType)

	b, err := actor.CreateWheelAsset(ctx, models.CreateWheelAssetRequest{
		Name:            "Sticker",
		TotalAmount:     10,
		AssetTypeConfig: models.Gadget{},
	})
	require.NoError(t, err)

	prizes, err := actor.ListWheelPrizes(ctx)
	require.NoError(t, err)
	require.Len(t, prizes, 2)
	assert.Equal(t, a.ID, prizes[0].WheelAssetID)
	assert.Equal(t, "#111111", prizes[0].WheelUISettings.BackgroundColorHex)

	err = actor.UpdateWheelPrizesOrder(ctx, models.UpdateWheelPrizesOrderRequest{WheelAssetIDs: []string{b.ID, a.ID}})
	require.NoError(t, err)

	prizes, err = actor.ListWheelPrizes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, []string{prizes[0].WheelAssetID, prizes[1].WheelAssetID})
}

func TestRPCActor_ServiceErrors(t *testing.T) {
	actor := newSandboxActor(t)

	t.Run("unknown id", func(t *testing.T) {
		ctx := client.WithCaller(context.Background(), adminPrincipal)
		err := actor.DeleteWheelAsset(ctx, models.DeleteWheelAssetRequest{ID: "missing"})
		require.Error(t, err)
		assert.Equal(t, errorx.NotFound, errorx.CodeOf(err))
		assert.Equal(t, "Wheel asset with id missing not found (code 404)", errorx.Render(err))
	})

	t.Run("no caller", func(t *testing.T) {
		_, err := actor.ListUsers(context.Background())
		assert.Equal(t, errorx.Unauthenticated, errorx.CodeOf(err))
	})

	t.Run("unassigned caller", func(t *testing.T) {
		ctx := client.WithCaller(context.Background(), otherPrincipal)
		me, err := actor.CreateMyUserProfile(ctx)
		require.NoError(t, err)
		assert.Equal(t, models.UserRoleUnassigned, me.Role)

		_, err = actor.ListWheelAssets(ctx, models.ListWheelAssetsRequest{})
		assert.Equal(t, errorx.PermissionDenied, errorx.CodeOf(err))
	})
}

func TestRPCActor_Extraction(t *testing.T) {
	actor := newSandboxActor(t)
	ctx := client.WithCaller(context.Background(), adminPrincipal)

	last, err := actor.GetLastWheelPrizeExtraction(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	a, err := actor.CreateWheelAsset(ctx, models.CreateWheelAssetRequest{
		Name:            "Cap",
		TotalAmount:     1,
		AssetTypeConfig: models.Gadget{},
	})
	require.NoError(t, err)
	require.NoError(t, actor.CreateWheelPrizeExtraction(ctx, models.CreateWheelPrizeExtractionRequest{ExtractForPrincipal: winnerPrincipal}))

	last, err = actor.GetLastWheelPrizeExtraction(ctx)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.IsCompleted())
	assert.Equal(t, winnerPrincipal, last.ExtractedForPrincipal)
	require.NotNil(t, last.WheelAssetID)
	assert.Equal(t, a.ID, *last.WheelAssetID)

	got, err := actor.GetWheelPrizeExtraction(ctx, models.GetWheelPrizeExtractionRequest{WheelPrizeExtractionID: last.ID})
	require.NoError(t, err)
	assert.Equal(t, last.ID, got.ID)

	stats, err := actor.GetWheelPrizeExtractionsStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), stats.TotalCompletedExtractions)
}

func TestRPCActor_CustomDomains(t *testing.T) {
	actor := newSandboxActor(t)
	ctx := client.WithCaller(context.Background(), adminPrincipal)

	r, err := actor.CreateCustomDomainRecord(ctx, models.CreateCustomDomainRecordRequest{DomainName: "wheel.example.com"})
	require.NoError(t, err)
	assert.Equal(t, models.NotStarted{}, r.BnRegistrationState)

	err = actor.UpdateCustomDomainRecord(ctx, models.UpdateCustomDomainRecordRequest{
		ID:                  r.ID,
		BnRegistrationState: models.Pending{BnRegistrationID: "req-1"},
	})
	require.NoError(t, err)

	records, err := actor.ListCustomDomainRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	id, ok := models.BnRegistrationID(records[0].BnRegistrationState)
	assert.True(t, ok)
	assert.Equal(t, "req-1", id)
}
