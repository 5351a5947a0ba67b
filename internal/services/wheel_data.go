package services

import (
	"sort"

	"wheeladmin/internal/models"
)

const (
	wheelImageSizeMultiplier = 0.5
	wheelImageOffsetY        = 180
)

type WheelImage struct {
	URI            string  `json:"uri"`
	SizeMultiplier float64 `json:"size_multiplier"`
	OffsetY        float64 `json:"offset_y"`
}

type WheelStyle struct {
	BackgroundColor string `json:"background_color"`
}

// WheelDataEntry is one slice of the rendered wheel.
type WheelDataEntry struct {
	Option string      `json:"option"`
	Image  *WheelImage `json:"image,omitempty"`
	Style  WheelStyle  `json:"style"`
}

// WheelData maps prizes, in order, to wheel slices. assetURL resolves image
// paths returned by the service.
func WheelData(prizes []models.WheelPrize, assetURL func(string) string) []WheelDataEntry {
	entries := make([]WheelDataEntry, 0, len(prizes))
	for _, p := range prizes {
		e := WheelDataEntry{
			Option: p.Name,
			Style:  WheelStyle{BackgroundColor: p.WheelUISettings.BackgroundColorHex},
		}
		if p.WheelImagePath != nil {
			if uri := assetURL(*p.WheelImagePath); uri != "" {
				e.Image = &WheelImage{URI: uri, SizeMultiplier: wheelImageSizeMultiplier, OffsetY: wheelImageOffsetY}
			}
		}
		entries = append(entries, e)
	}
	return entries
}

type PrizeWithProbability struct {
	models.WheelPrize
	DrawProbability float64 `json:"draw_probability"`
}

// WithProbability returns each distinct prize once with the share of wheel
// slices it occupies, most likely first.
func WithProbability(prizes []models.WheelPrize) []PrizeWithProbability {
	counts := make(map[string]int, len(prizes))
	latest := make(map[string]models.WheelPrize, len(prizes))
	var ids []string
	for _, p := range prizes {
		if counts[p.WheelAssetID] == 0 {
			ids = append(ids, p.WheelAssetID)
		}
		counts[p.WheelAssetID]++
		latest[p.WheelAssetID] = p
	}

	out := make([]PrizeWithProbability, 0, len(ids))
	for _, id := range ids {
		out = append(out, PrizeWithProbability{
			WheelPrize:      latest[id],
			DrawProbability: float64(counts[id]) / float64(len(prizes)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].DrawProbability > out[j].DrawProbability })
	return out
}
