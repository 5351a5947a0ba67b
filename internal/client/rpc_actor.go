package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/rpc"

	"wheeladmin/internal/errorx"
	"wheeladmin/internal/models"
)

// Namespace is the JSON-RPC namespace the wheel service is registered under.
const Namespace = "backend"

var _ Actor = (*rpcActor)(nil)

type rpcActor struct {
	client *rpc.Client
}

// DialRPCActor connects to a wheel service JSON-RPC endpoint.
func DialRPCActor(ctx context.Context, endpoint string) (*rpcActor, error) {
	c, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("dial wheel service %s: %w", endpoint, err)
	}
	return NewRPCActor(c), nil
}

func NewRPCActor(client *rpc.Client) *rpcActor {
	return &rpcActor{client: client}
}

func (a *rpcActor) Close() {
	a.client.Close()
}

func fname(method string) string {
	return Namespace + "_" + method
}

// call performs one service call and unwraps its envelope.
func call[T any](ctx context.Context, a *rpcActor, method string, args ...any) (T, error) {
	if p, ok := CallerFrom(ctx); ok {
		h := http.Header{}
		h.Set(PrincipalHeader, p)
		ctx = rpc.NewContextWithHeaders(ctx, h)
	}

	var res errorx.Result[T]
	if err := a.client.CallContext(ctx, &res, fname(method), args...); err != nil {
		var zero T
		return zero, errorx.New(errorx.Unavailable, "%s: %v", method, err)
	}
	return errorx.ExtractOk(res)
}

func callNull(ctx context.Context, a *rpcActor, method string, args ...any) error {
	_, err := call[*struct{}](ctx, a, method, args...)
	return err
}

func (a *rpcActor) ListWheelPrizes(ctx context.Context) ([]models.WheelPrize, error) {
	return call[[]models.WheelPrize](ctx, a, "listWheelPrizes")
}

func (a *rpcActor) UpdateWheelPrizesOrder(ctx context.Context, req models.UpdateWheelPrizesOrderRequest) error {
	return callNull(ctx, a, "updateWheelPrizesOrder", req)
}

func (a *rpcActor) ListWheelAssets(ctx context.Context, req models.ListWheelAssetsRequest) ([]models.WheelAsset, error) {
	return call[[]models.WheelAsset](ctx, a, "listWheelAssets", req)
}

func (a *rpcActor) CreateWheelAsset(ctx context.Context, req models.CreateWheelAssetRequest) (models.WheelAsset, error) {
	return call[models.WheelAsset](ctx, a, "createWheelAsset", req)
}

func (a *rpcActor) UpdateWheelAsset(ctx context.Context, req models.UpdateWheelAssetRequest) error {
	return callNull(ctx, a, "updateWheelAsset", req)
}

func (a *rpcActor) DeleteWheelAsset(ctx context.Context, req models.DeleteWheelAssetRequest) error {
	return callNull(ctx, a, "deleteWheelAsset", req)
}

func (a *rpcActor) UpdateWheelAssetImage(ctx context.Context, req models.UpdateWheelAssetImageRequest) error {
	return callNull(ctx, a, "updateWheelAssetImage", req)
}

func (a *rpcActor) SetDefaultWheelAssets(ctx context.Context) error {
	return callNull(ctx, a, "setDefaultWheelAssets")
}

func (a *rpcActor) FetchTokensData(ctx context.Context) error {
	return callNull(ctx, a, "fetchTokensData")
}

func (a *rpcActor) GetLastWheelPrizeExtraction(ctx context.Context) (*models.WheelPrizeExtraction, error) {
	return call[*models.WheelPrizeExtraction](ctx, a, "getLastWheelPrizeExtraction")
}

func (a *rpcActor) GetWheelPrizeExtraction(ctx context.Context, req models.GetWheelPrizeExtractionRequest) (models.WheelPrizeExtraction, error) {
	return call[models.WheelPrizeExtraction](ctx, a, "getWheelPrizeExtraction", req)
}

func (a *rpcActor) ListWheelPrizeExtractions(ctx context.Context) ([]models.WheelPrizeExtraction, error) {
	return call[[]models.WheelPrizeExtraction](ctx, a, "listWheelPrizeExtractions")
}

func (a *rpcActor) GetWheelPrizeExtractionsStats(ctx context.Context) (models.WheelPrizeExtractionsStats, error) {
	return call[models.WheelPrizeExtractionsStats](ctx, a, "getWheelPrizeExtractionsStats")
}

func (a *rpcActor) CreateWheelPrizeExtraction(ctx context.Context, req models.CreateWheelPrizeExtractionRequest) error {
	return callNull(ctx, a, "createWheelPrizeExtraction", req)
}

func (a *rpcActor) TransferToken(ctx context.Context, req models.TransferTokenRequest) (uint64, error) {
	return call[uint64](ctx, a, "transferToken", req)
}

func (a *rpcActor) GetMyUserProfile(ctx context.Context) (models.UserProfile, error) {
	return call[models.UserProfile](ctx, a, "getMyUserProfile")
}

func (a *rpcActor) CreateMyUserProfile(ctx context.Context) (models.UserProfile, error) {
	return call[models.UserProfile](ctx, a, "createMyUserProfile")
}

func (a *rpcActor) UpdateMyUserProfile(ctx context.Context, req models.UpdateMyUserProfileRequest) error {
	return callNull(ctx, a, "updateMyUserProfile", req)
}

func (a *rpcActor) ListUsers(ctx context.Context) ([]models.UserProfile, error) {
	return call[[]models.UserProfile](ctx, a, "listUsers")
}

func (a *rpcActor) UpdateUserProfile(ctx context.Context, req models.UpdateUserProfileRequest) error {
	return callNull(ctx, a, "updateUserProfile", req)
}

func (a *rpcActor) DeleteUserProfile(ctx context.Context, req models.DeleteUserProfileRequest) error {
	return callNull(ctx, a, "deleteUserProfile", req)
}

func (a *rpcActor) ListCustomDomainRecords(ctx context.Context) ([]models.CustomDomainRecord, error) {
	return call[[]models.CustomDomainRecord](ctx, a, "listCustomDomainRecords")
}

func (a *rpcActor) CreateCustomDomainRecord(ctx context.Context, req models.CreateCustomDomainRecordRequest) (models.CustomDomainRecord, error) {
	return call[models.CustomDomainRecord](ctx, a, "createCustomDomainRecord", req)
}

func (a *rpcActor) UpdateCustomDomainRecord(ctx context.Context, req models.UpdateCustomDomainRecordRequest) error {
	return callNull(ctx, a, "updateCustomDomainRecord", req)
}

func (a *rpcActor) DeleteCustomDomainRecord(ctx context.Context, req models.DeleteCustomDomainRecordRequest) error {
	return callNull(ctx, a, "deleteCustomDomainRecord", req)
}
