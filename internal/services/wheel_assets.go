package services

import (
	"bytes"
	"context"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/nfnt/resize"
	"github.com/shopspring/decimal"

	"wheeladmin/internal/client"
	"wheeladmin/internal/errorx"
	"wheeladmin/internal/models"
)

// MaxWheelImageSize is the largest side, in pixels, of a stored wheel image.
const MaxWheelImageSize = 512

var ErrTokenNotDeletable = errorx.NewInvalidArgument("Token wheel assets cannot be deleted, disable them instead")

type WheelAssetClient interface {
	ListWheelAssets(ctx context.Context, req models.ListWheelAssetsRequest) ([]models.WheelAsset, error)
	CreateWheelAsset(ctx context.Context, req models.CreateWheelAssetRequest) (models.WheelAsset, error)
	UpdateWheelAsset(ctx context.Context, req models.UpdateWheelAssetRequest) error
	DeleteWheelAsset(ctx context.Context, req models.DeleteWheelAssetRequest) error
	UpdateWheelAssetImage(ctx context.Context, req models.UpdateWheelAssetImageRequest) error
	SetDefaultWheelAssets(ctx context.Context) error
	FetchTokensData(ctx context.Context) error
}

type WheelAssets struct {
	client WheelAssetClient
	images *client.AssetFetcher
}

func NewWheelAssets(c WheelAssetClient, images *client.AssetFetcher) *WheelAssets {
	return &WheelAssets{client: c, images: images}
}

// List returns the wheel assets, optionally only those in state.
func (s *WheelAssets) List(ctx context.Context, state *models.WheelAssetState) ([]models.WheelAsset, error) {
	return s.client.ListWheelAssets(ctx, models.ListWheelAssetsRequest{State: state})
}

func (s *WheelAssets) Get(ctx context.Context, id string) (models.WheelAsset, error) {
	assets, err := s.List(ctx, nil)
	if err != nil {
		return models.WheelAsset{}, err
	}
	for _, a := range assets {
		if a.ID == id {
			return a, nil
		}
	}
	return models.WheelAsset{}, errorx.NewNotFound("Wheel asset with id %s not found", id)
}

// Tokens returns the token assets, highest total USD value first.
func (s *WheelAssets) Tokens(ctx context.Context) ([]models.WheelAsset, error) {
	assets, err := s.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	var tokens []models.WheelAsset
	for _, a := range assets {
		if a.IsToken() {
			tokens = append(tokens, a)
		}
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		return tokens[i].TokenUsdValue().GreaterThan(tokens[j].TokenUsdValue())
	})
	return tokens, nil
}

// TokensUsdValueSum is the total USD value held by all token assets.
func (s *WheelAssets) TokensUsdValueSum(ctx context.Context) (decimal.Decimal, error) {
	tokens, err := s.Tokens(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return models.TokensUsdValueSum(tokens), nil
}

func (s *WheelAssets) Create(ctx context.Context, req models.CreateWheelAssetRequest) (models.WheelAsset, error) {
	return s.client.CreateWheelAsset(ctx, req)
}

func (s *WheelAssets) Update(ctx context.Context, req models.UpdateWheelAssetRequest) error {
	return s.client.UpdateWheelAsset(ctx, req)
}

// SetState enables or disables an asset, which adds it to or removes it
// from the wheel.
func (s *WheelAssets) SetState(ctx context.Context, id string, state models.WheelAssetState) error {
	return s.client.UpdateWheelAsset(ctx, models.UpdateWheelAssetRequest{ID: id, State: &state})
}

func (s *WheelAssets) Delete(ctx context.Context, id string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if a.IsToken() {
		return ErrTokenNotDeletable
	}
	return s.client.DeleteWheelAsset(ctx, models.DeleteWheelAssetRequest{ID: id})
}

func (s *WheelAssets) SetDefaults(ctx context.Context) error {
	return s.client.SetDefaultWheelAssets(ctx)
}

// RefreshTokens asks the service to refresh token balances and prices.
func (s *WheelAssets) RefreshTokens(ctx context.Context) error {
	return s.client.FetchTokensData(ctx)
}

// UploadImage stores an asset image. The content type is sniffed from the
// bytes; raster wheel images are scaled down to fit MaxWheelImageSize.
func (s *WheelAssets) UploadImage(ctx context.Context, id string, kind models.ImageKind, content []byte) error {
	if len(content) == 0 {
		return errorx.NewInvalidArgument("Image content cannot be empty")
	}
	mt := mimetype.Detect(content)
	if !isAllowedImage(mt) {
		return errorx.NewInvalidArgument("Unsupported image type %s", mt.String())
	}
	contentType, _, _ := strings.Cut(mt.String(), ";")

	if kind == models.ImageKindWheel {
		scaled, err := fitImage(contentType, content, MaxWheelImageSize)
		if err != nil {
			return errorx.NewInvalidArgument("Cannot decode image: %v", err)
		}
		content = scaled
	}

	return s.client.UpdateWheelAssetImage(ctx, models.UpdateWheelAssetImageRequest{
		ID: id,
		ImageConfig: models.UpdateWheelAssetImageConfig{
			Kind:         kind,
			ImageContent: models.ImageContent{ContentType: contentType, ContentBytes: content},
		},
	})
}

// Image downloads an existing asset image, for example to prefill an edit
// form.
func (s *WheelAssets) Image(ctx context.Context, id string, kind models.ImageKind) ([]byte, string, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}
	path := a.WheelImagePath
	if kind == models.ImageKindModal {
		path = a.ModalImagePath
	}
	if path == nil {
		return nil, "", errorx.NewNotFound("Wheel asset %s has no %s image", id, kind)
	}
	return s.images.Fetch(ctx, *path)
}

func isAllowedImage(mt *mimetype.MIME) bool {
	for _, allowed := range []string{"image/png", "image/jpeg", "image/gif", "image/webp", "image/svg+xml"} {
		if mt.Is(allowed) {
			return true
		}
	}
	return false
}

// fitImage scales raster images larger than limit down, keeping the aspect
// ratio. Other images are returned unchanged.
func fitImage(contentType string, content []byte, limit uint) ([]byte, error) {
	var (
		img image.Image
		err error
	)
	switch contentType {
	case "image/png":
		img, err = png.Decode(bytes.NewReader(content))
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(content))
	case "image/gif":
		img, err = gif.Decode(bytes.NewReader(content))
	default:
		return content, nil
	}
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	if uint(b.Dx()) <= limit && uint(b.Dy()) <= limit {
		return content, nil
	}
	img = resize.Thumbnail(limit, limit, img, resize.Lanczos2)

	buf := new(bytes.Buffer)
	switch contentType {
	case "image/png":
		err = png.Encode(buf, img)
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
