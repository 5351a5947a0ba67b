package client

import (
	"context"

	"wheeladmin/internal/models"
)

// Actor is the wheel service contract. Every method unwraps the service
// envelope: the error branch is returned as an errorx.Err.
type Actor interface {
	ListWheelPrizes(ctx context.Context) ([]models.WheelPrize, error)
	UpdateWheelPrizesOrder(ctx context.Context, req models.UpdateWheelPrizesOrderRequest) error

	ListWheelAssets(ctx context.Context, req models.ListWheelAssetsRequest) ([]models.WheelAsset, error)
	CreateWheelAsset(ctx context.Context, req models.CreateWheelAssetRequest) (models.WheelAsset, error)
	UpdateWheelAsset(ctx context.Context, req models.UpdateWheelAssetRequest) error
	DeleteWheelAsset(ctx context.Context, req models.DeleteWheelAssetRequest) error
	UpdateWheelAssetImage(ctx context.Context, req models.UpdateWheelAssetImageRequest) error
	SetDefaultWheelAssets(ctx context.Context) error
	FetchTokensData(ctx context.Context) error

	GetLastWheelPrizeExtraction(ctx context.Context) (*models.WheelPrizeExtraction, error)
	GetWheelPrizeExtraction(ctx context.Context, req models.GetWheelPrizeExtractionRequest) (models.WheelPrizeExtraction, error)
	ListWheelPrizeExtractions(ctx context.Context) ([]models.WheelPrizeExtraction, error)
	GetWheelPrizeExtractionsStats(ctx context.Context) (models.WheelPrizeExtractionsStats, error)
	CreateWheelPrizeExtraction(ctx context.Context, req models.CreateWheelPrizeExtractionRequest) error

	TransferToken(ctx context.Context, req models.TransferTokenRequest) (uint64, error)

	GetMyUserProfile(ctx context.Context) (models.UserProfile, error)
	CreateMyUserProfile(ctx context.Context) (models.UserProfile, error)
	UpdateMyUserProfile(ctx context.Context, req models.UpdateMyUserProfileRequest) error
	ListUsers(ctx context.Context) ([]models.UserProfile, error)
	UpdateUserProfile(ctx context.Context, req models.UpdateUserProfileRequest) error
	DeleteUserProfile(ctx context.Context, req models.DeleteUserProfileRequest) error

	ListCustomDomainRecords(ctx context.Context) ([]models.CustomDomainRecord, error)
	CreateCustomDomainRecord(ctx context.Context, req models.CreateCustomDomainRecordRequest) (models.CustomDomainRecord, error)
	UpdateCustomDomainRecord(ctx context.Context, req models.UpdateCustomDomainRecordRequest) error
	DeleteCustomDomainRecord(ctx context.Context, req models.DeleteCustomDomainRecordRequest) error
}
