package models

import (
	"encoding/json"
)

type WheelAssetState string

const (
	WheelAssetStateEnabled  WheelAssetState = "enabled"
	WheelAssetStateDisabled WheelAssetState = "disabled"
)

func (s WheelAssetState) MarshalJSON() ([]byte, error) {
	return marshalUnit(string(s))
}

func (s *WheelAssetState) UnmarshalJSON(data []byte) error {
	tag, err := unmarshalUnit(data, "wheel asset state", string(WheelAssetStateEnabled), string(WheelAssetStateDisabled))
	if err != nil {
		return err
	}
	*s = WheelAssetState(tag)
	return nil
}

type WheelAssetUISettings struct {
	BackgroundColorHex string `json:"background_color_hex" binding:"required,hexcolor"`
}

type TokenLedgerConfig struct {
	LedgerCanisterID string `json:"ledger_canister_id" binding:"required"`
	Decimals         uint8  `json:"decimals"`
}

type TokenPrice struct {
	UsdPrice      float64 `json:"usd_price"`
	LastFetchedAt string  `json:"last_fetched_at"`
}

type TokenBalance struct {
	Balance       uint64 `json:"balance"`
	LastFetchedAt string `json:"last_fetched_at"`
}

// WheelAssetType is one of Token, Gadget or Jackpot.
type WheelAssetType interface {
	json.Marshaler
	isWheelAssetType()
}

// Token is a fungible token prize paid out from a ledger.
type Token struct {
	LedgerConfig        TokenLedgerConfig `json:"ledger_config"`
	ExchangeRateSymbol  *string           `json:"exchange_rate_symbol"`
	PrizeUsdAmount      float64           `json:"prize_usd_amount"`
	UsdPrice            *TokenPrice       `json:"usd_price"`
	Balance             *TokenBalance     `json:"balance"`
	AvailableDrawsCount uint32            `json:"available_draws_count"`
}

// Gadget is a physical prize.
type Gadget struct {
	ArticleType *string `json:"article_type"`
}

// Jackpot bundles other wheel assets into one prize.
type Jackpot struct {
	WheelAssetIDs []string `json:"wheel_asset_ids"`
}

func (Token) isWheelAssetType()   {}
func (Gadget) isWheelAssetType()  {}
func (Jackpot) isWheelAssetType() {}

func (t Token) MarshalJSON() ([]byte, error) {
	type plain Token
	return marshalVariant("token", plain(t))
}

func (g Gadget) MarshalJSON() ([]byte, error) {
	type plain Gadget
	return marshalVariant("gadget", plain(g))
}

func (j Jackpot) MarshalJSON() ([]byte, error) {
	type plain Jackpot
	if j.WheelAssetIDs == nil {
		j.WheelAssetIDs = []string{}
	}
	return marshalVariant("jackpot", plain(j))
}

func decodeWheelAssetType(data []byte) (WheelAssetType, error) {
	tag, payload, err := unmarshalVariant(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "token":
		type plain Token
		var v plain
		err = decodePayload(payload, &v)
		return Token(v), err
	case "gadget":
		type plain Gadget
		var v plain
		err = decodePayload(payload, &v)
		return Gadget(v), err
	case "jackpot":
		type plain Jackpot
		var v plain
		err = decodePayload(payload, &v)
		return Jackpot(v), err
	}
	return nil, unknownVariantError{kind: "wheel asset type", tag: tag}
}

type WheelAsset struct {
	ID              string               `json:"id"`
	Name            string               `json:"name"`
	AssetType       WheelAssetType       `json:"asset_type"`
	TotalAmount     uint32               `json:"total_amount"`
	UsedAmount      uint32               `json:"used_amount"`
	AvailableAmount uint32               `json:"available_amount"`
	State           WheelAssetState      `json:"state"`
	WheelUISettings WheelAssetUISettings `json:"wheel_ui_settings"`
	WheelImagePath  *string              `json:"wheel_image_path"`
	ModalImagePath  *string              `json:"modal_image_path"`
}

func (a *WheelAsset) UnmarshalJSON(data []byte) error {
	type plain WheelAsset
	aux := struct {
		*plain
		AssetType json.RawMessage `json:"asset_type"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	assetType, err := decodeWheelAssetType(aux.AssetType)
	if err != nil {
		return err
	}
	a.AssetType = assetType
	return nil
}

// CreateWheelAssetTypeConfig is one of CreateToken, Gadget or Jackpot.
type CreateWheelAssetTypeConfig interface {
	json.Marshaler
	isCreateWheelAssetTypeConfig()
}

type CreateToken struct {
	LedgerConfig       TokenLedgerConfig `json:"ledger_config"`
	ExchangeRateSymbol *string           `json:"exchange_rate_symbol"`
	PrizeUsdAmount     float64           `json:"prize_usd_amount"`
}

func (CreateToken) isCreateWheelAssetTypeConfig() {}
func (Gadget) isCreateWheelAssetTypeConfig()      {}
func (Jackpot) isCreateWheelAssetTypeConfig()     {}

func (t CreateToken) MarshalJSON() ([]byte, error) {
	type plain CreateToken
	return marshalVariant("token", plain(t))
}

func DecodeCreateWheelAssetTypeConfig(data []byte) (CreateWheelAssetTypeConfig, error) {
	tag, payload, err := unmarshalVariant(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "token":
		type plain CreateToken
		var v plain
		err = decodePayload(payload, &v)
		return CreateToken(v), err
	case "gadget":
		type plain Gadget
		var v plain
		err = decodePayload(payload, &v)
		return Gadget(v), err
	case "jackpot":
		type plain Jackpot
		var v plain
		err = decodePayload(payload, &v)
		return Jackpot(v), err
	}
	return nil, unknownVariantError{kind: "create wheel asset type config", tag: tag}
}

// UpdateWheelAssetTypeConfig is one of UpdateToken, Gadget or Jackpot.
type UpdateWheelAssetTypeConfig interface {
	json.Marshaler
	isUpdateWheelAssetTypeConfig()
}

type UpdateTokenLedgerConfig struct {
	Decimals *uint8 `json:"decimals"`
}

type UpdateToken struct {
	LedgerConfig       *UpdateTokenLedgerConfig `json:"ledger_config"`
	ExchangeRateSymbol *string                  `json:"exchange_rate_symbol"`
	PrizeUsdAmount     *float64                 `json:"prize_usd_amount"`
}

func (UpdateToken) isUpdateWheelAssetTypeConfig() {}
func (Gadget) isUpdateWheelAssetTypeConfig()      {}
func (Jackpot) isUpdateWheelAssetTypeConfig()     {}

func (t UpdateToken) MarshalJSON() ([]byte, error) {
	type plain UpdateToken
	return marshalVariant("token", plain(t))
}

func DecodeUpdateWheelAssetTypeConfig(data []byte) (UpdateWheelAssetTypeConfig, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	tag, payload, err := unmarshalVariant(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "token":
		type plain UpdateToken
		var v plain
		err = decodePayload(payload, &v)
		return UpdateToken(v), err
	case "gadget":
		type plain Gadget
		var v plain
		err = decodePayload(payload, &v)
		return Gadget(v), err
	case "jackpot":
		type plain Jackpot
		var v plain
		err = decodePayload(payload, &v)
		return Jackpot(v), err
	}
	return nil, unknownVariantError{kind: "update wheel asset type config", tag: tag}
}

type ListWheelAssetsRequest struct {
	State *WheelAssetState `json:"state"`
}

type CreateWheelAssetRequest struct {
	Name            string                     `json:"name" binding:"required"`
	TotalAmount     uint32                     `json:"total_amount"`
	AssetTypeConfig CreateWheelAssetTypeConfig `json:"asset_type_config" binding:"required"`
	WheelUISettings *WheelAssetUISettings      `json:"wheel_ui_settings"`
}

func (r *CreateWheelAssetRequest) UnmarshalJSON(data []byte) error {
	type plain CreateWheelAssetRequest
	aux := struct {
		*plain
		AssetTypeConfig json.RawMessage `json:"asset_type_config"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	cfg, err := DecodeCreateWheelAssetTypeConfig(aux.AssetTypeConfig)
	if err != nil {
		return err
	}
	r.AssetTypeConfig = cfg
	return nil
}

// UpdateWheelAssetRequest leaves every nil field untouched.
type UpdateWheelAssetRequest struct {
	ID              string                     `json:"id"`
	Name            *string                    `json:"name"`
	TotalAmount     *uint32                    `json:"total_amount"`
	UsedAmount      *uint32                    `json:"used_amount"`
	State           *WheelAssetState           `json:"state"`
	AssetTypeConfig UpdateWheelAssetTypeConfig `json:"asset_type_config"`
	WheelUISettings *WheelAssetUISettings      `json:"wheel_ui_settings"`
}

func (r *UpdateWheelAssetRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateWheelAssetRequest
	aux := struct {
		*plain
		AssetTypeConfig json.RawMessage `json:"asset_type_config"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	cfg, err := DecodeUpdateWheelAssetTypeConfig(aux.AssetTypeConfig)
	if err != nil {
		return err
	}
	r.AssetTypeConfig = cfg
	return nil
}

type DeleteWheelAssetRequest struct {
	ID string `json:"id"`
}

// ImageKind selects which of the two images of an asset is addressed.
type ImageKind string

const (
	ImageKindWheel ImageKind = "wheel"
	ImageKindModal ImageKind = "modal"
)

type ImageContent struct {
	ContentType  string `json:"content_type"`
	ContentBytes []byte `json:"content_bytes"`
}

// UpdateWheelAssetImageConfig is encoded as {"wheel": {...}} or
// {"modal": {...}} depending on Kind.
type UpdateWheelAssetImageConfig struct {
	Kind ImageKind
	ImageContent
}

func (c UpdateWheelAssetImageConfig) MarshalJSON() ([]byte, error) {
	return marshalVariant(string(c.Kind), c.ImageContent)
}

func (c *UpdateWheelAssetImageConfig) UnmarshalJSON(data []byte) error {
	tag, payload, err := unmarshalVariant(data)
	if err != nil {
		return err
	}
	switch ImageKind(tag) {
	case ImageKindWheel, ImageKindModal:
	default:
		return unknownVariantError{kind: "image config", tag: tag}
	}
	c.Kind = ImageKind(tag)
	return decodePayload(payload, &c.ImageContent)
}

type UpdateWheelAssetImageRequest struct {
	ID          string                      `json:"id"`
	ImageConfig UpdateWheelAssetImageConfig `json:"image_config"`
}
