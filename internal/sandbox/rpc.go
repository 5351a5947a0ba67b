package sandbox

import (
	"context"

	"wheeladmin/internal/errorx"
	"wheeladmin/internal/models"
)

// RPCService exposes a Backend over JSON-RPC. Every method answers with the
// service envelope, so service errors never surface as JSON-RPC errors.
type RPCService struct {
	b *Backend
}

func NewRPCService(b *Backend) *RPCService {
	return &RPCService{b: b}
}

func null(err error) errorx.Result[errorx.Null] {
	return errorx.ResultOf(errorx.Null{}, err)
}

func (s *RPCService) ListWheelPrizes(ctx context.Context) errorx.Result[[]models.WheelPrize] {
	return errorx.ResultOf(s.b.ListWheelPrizes(ctx))
}

func (s *RPCService) UpdateWheelPrizesOrder(ctx context.Context, req models.UpdateWheelPrizesOrderRequest) errorx.Result[errorx.Null] {
	return null(s.b.UpdateWheelPrizesOrder(ctx, req))
}

func (s *RPCService) ListWheelAssets(ctx context.Context, req models.ListWheelAssetsRequest) errorx.Result[[]models.WheelAsset] {
	return errorx.ResultOf(s.b.ListWheelAssets(ctx, req))
}

func (s *RPCService) CreateWheelAsset(ctx context.Context, req models.CreateWheelAssetRequest) errorx.Result[models.WheelAsset] {
	return errorx.ResultOf(s.b.CreateWheelAsset(ctx, req))
}

func (s *RPCService) UpdateWheelAsset(ctx context.Context, req models.UpdateWheelAssetRequest) errorx.Result[errorx.Null] {
	return null(s.b.UpdateWheelAsset(ctx, req))
}

func (s *RPCService) DeleteWheelAsset(ctx context.Context, req models.DeleteWheelAssetRequest) errorx.Result[errorx.Null] {
	return null(s.b.DeleteWheelAsset(ctx, req))
}

func (s *RPCService) UpdateWheelAssetImage(ctx context.Context, req models.UpdateWheelAssetImageRequest) errorx.Result[errorx.Null] {
	return null(s.b.UpdateWheelAssetImage(ctx, req))
}

func (s *RPCService) SetDefaultWheelAssets(ctx context.Context) errorx.Result[errorx.Null] {
	return null(s.b.SetDefaultWheelAssets(ctx))
}

func (s *RPCService) FetchTokensData(ctx context.Context) errorx.Result[errorx.Null] {
	return null(s.b.FetchTokensData(ctx))
}

func (s *RPCService) GetLastWheelPrizeExtraction(ctx context.Context) errorx.Result[*models.WheelPrizeExtraction] {
	return errorx.ResultOf(s.b.GetLastWheelPrizeExtraction(ctx))
}

func (s *RPCService) GetWheelPrizeExtraction(ctx context.Context, req models.GetWheelPrizeExtractionRequest) errorx.Result[models.WheelPrizeExtraction] {
	return errorx.ResultOf(s.b.GetWheelPrizeExtraction(ctx, req))
}

func (s *RPCService) ListWheelPrizeExtractions(ctx context.Context) errorx.Result[[]models.WheelPrizeExtraction] {
	return errorx.ResultOf(s.b.ListWheelPrizeExtractions(ctx))
}

func (s *RPCService) GetWheelPrizeExtractionsStats(ctx context.Context) errorx.Result[models.WheelPrizeExtractionsStats] {
	return errorx.ResultOf(s.b.GetWheelPrizeExtractionsStats(ctx))
}

func (s *RPCService) CreateWheelPrizeExtraction(ctx context.Context, req models.CreateWheelPrizeExtractionRequest) errorx.Result[errorx.Null] {
	return null(s.b.CreateWheelPrizeExtraction(ctx, req))
}

func (s *RPCService) TransferToken(ctx context.Context, req models.TransferTokenRequest) errorx.Result[uint64] {
	return errorx.ResultOf(s.b.TransferToken(ctx, req))
}

func (s *RPCService) GetMyUserProfile(ctx context.Context) errorx.Result[models.UserProfile] {
	return errorx.ResultOf(s.b.GetMyUserProfile(ctx))
}

func (s *RPCService) CreateMyUserProfile(ctx context.Context) errorx.Result[models.UserProfile] {
	return errorx.ResultOf(s.b.CreateMyUserProfile(ctx))
}

func (s *RPCService) UpdateMyUserProfile(ctx context.Context, req models.UpdateMyUserProfileRequest) errorx.Result[errorx.Null] {
	return null(s.b.UpdateMyUserProfile(ctx, req))
}

func (s *RPCService) ListUsers(ctx context.Context) errorx.Result[[]models.UserProfile] {
	return errorx.ResultOf(s.b.ListUsers(ctx))
}

func (s *RPCService) UpdateUserProfile(ctx context.Context, req models.UpdateUserProfileRequest) errorx.Result[errorx.Null] {
	return null(s.b.UpdateUserProfile(ctx, req))
}

func (s *RPCService) DeleteUserProfile(ctx context.Context, req models.DeleteUserProfileRequest) errorx.Result[errorx.Null] {
	return null(s.b.DeleteUserProfile(ctx, req))
}

func (s *RPCService) ListCustomDomainRecords(ctx context.Context) errorx.Result[[]models.CustomDomainRecord] {
	return errorx.ResultOf(s.b.ListCustomDomainRecords(ctx))
}

func (s *RPCService) CreateCustomDomainRecord(ctx context.Context, req models.CreateCustomDomainRecordRequest) errorx.Result[models.CustomDomainRecord] {
	return errorx.ResultOf(s.b.CreateCustomDomainRecord(ctx, req))
}

func (s *RPCService) UpdateCustomDomainRecord(ctx context.Context, req models.UpdateCustomDomainRecordRequest) errorx.Result[errorx.Null] {
	return null(s.b.UpdateCustomDomainRecord(ctx, req))
}

func (s *RPCService) DeleteCustomDomainRecord(ctx context.Context, req models.DeleteCustomDomainRecordRequest) errorx.Result[errorx.Null] {
	return null(s.b.DeleteCustomDomainRecord(ctx, req))
}
