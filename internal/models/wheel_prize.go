package models

// WheelPrize is the projection of an enabled wheel asset as shown on the
// wheel.
type WheelPrize struct {
	WheelAssetID    string               `json:"wheel_asset_id"`
	Name            string               `json:"name"`
	WheelImagePath  *string              `json:"wheel_image_path"`
	ModalImagePath  *string              `json:"modal_image_path"`
	PrizeUsdAmount  *float64             `json:"prize_usd_amount"`
	WheelUISettings WheelAssetUISettings `json:"wheel_ui_settings"`
}

type UpdateWheelPrizesOrderRequest struct {
	WheelAssetIDs []string `json:"wheel_asset_ids"`
}
