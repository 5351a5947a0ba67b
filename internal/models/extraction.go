package models

import (
	"encoding/json"

	"wheeladmin/internal/errorx"
)

// ExtractionState is one of Processing, Completed or Failed.
type ExtractionState interface {
	json.Marshaler
	isExtractionState()
}

type Processing struct{}

type Completed struct {
	PrizeUsdAmount *float64 `json:"prize_usd_amount"`
}

type Failed struct {
	Error errorx.Err `json:"error"`
}

func (Processing) isExtractionState() {}
func (Completed) isExtractionState()  {}
func (Failed) isExtractionState()     {}

func (Processing) MarshalJSON() ([]byte, error) {
	return marshalVariant("processing", nil)
}

func (c Completed) MarshalJSON() ([]byte, error) {
	type plain Completed
	return marshalVariant("completed", plain(c))
}

func (f Failed) MarshalJSON() ([]byte, error) {
	type plain Failed
	return marshalVariant("failed", plain(f))
}

func decodeExtractionState(data []byte) (ExtractionState, error) {
	tag, payload, err := unmarshalVariant(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "processing":
		return Processing{}, nil
	case "completed":
		type plain Completed
		var v plain
		err = decodePayload(payload, &v)
		return Completed(v), err
	case "failed":
		type plain Failed
		var v plain
		err = decodePayload(payload, &v)
		return Failed(v), err
	}
	return nil, unknownVariantError{kind: "extraction state", tag: tag}
}

type WheelPrizeExtraction struct {
	ID                    string          `json:"id"`
	ExtractedForPrincipal string          `json:"extracted_for_principal"`
	ExtractedByUserID     string          `json:"extracted_by_user_id"`
	WheelAssetID          *string         `json:"wheel_asset_id"`
	State                 ExtractionState `json:"state"`
	CreatedAt             string          `json:"created_at"`
	UpdatedAt             string          `json:"updated_at"`
}

func (e *WheelPrizeExtraction) UnmarshalJSON(data []byte) error {
	type plain WheelPrizeExtraction
	aux := struct {
		*plain
		State json.RawMessage `json:"state"`
	}{plain: (*plain)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	state, err := decodeExtractionState(aux.State)
	if err != nil {
		return err
	}
	e.State = state
	return nil
}

func (e WheelPrizeExtraction) IsCompleted() bool {
	_, ok := e.State.(Completed)
	return ok
}

type WheelPrizeExtractionsStats struct {
	TotalCompletedExtractions uint32  `json:"total_completed_extractions"`
	TotalSpentUsd             float64 `json:"total_spent_usd"`
}

type CreateWheelPrizeExtractionRequest struct {
	ExtractForPrincipal string `json:"extract_for_principal"`
}

type GetWheelPrizeExtractionRequest struct {
	WheelPrizeExtractionID string `json:"wheel_prize_extraction_id"`
}
