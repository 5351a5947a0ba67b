package models

import (
	"math/big"

	"github.com/shopspring/decimal"
)

func (a WheelAsset) Token() (Token, bool) {
	t, ok := a.AssetType.(Token)
	return t, ok
}

func (a WheelAsset) IsToken() bool {
	_, ok := a.AssetType.(Token)
	return ok
}

func (a WheelAsset) IsGadget() bool {
	_, ok := a.AssetType.(Gadget)
	return ok
}

func (a WheelAsset) IsJackpot() bool {
	_, ok := a.AssetType.(Jackpot)
	return ok
}

func (a WheelAsset) IsDisabled() bool {
	return a.State == WheelAssetStateDisabled
}

// TypeName returns the variant tag of the asset type.
func (a WheelAsset) TypeName() string {
	switch a.AssetType.(type) {
	case Token:
		return "token"
	case Gadget:
		return "gadget"
	case Jackpot:
		return "jackpot"
	}
	return ""
}

// TokenBalance converts the raw ledger balance to token units using the
// ledger decimals. Non-token assets and unfetched balances are zero.
func (a WheelAsset) TokenBalance() decimal.Decimal {
	t, ok := a.Token()
	if !ok || t.Balance == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(new(big.Int).SetUint64(t.Balance.Balance), 0).Shift(-int32(t.LedgerConfig.Decimals))
}

// TokenUsdValue is the balance valued at the last fetched USD price.
func (a WheelAsset) TokenUsdValue() decimal.Decimal {
	t, ok := a.Token()
	if !ok || t.UsdPrice == nil {
		return decimal.Zero
	}
	return a.TokenBalance().Mul(decimal.NewFromFloat(t.UsdPrice.UsdPrice))
}

// TokensUsdValueSum sums the USD value of every token asset.
func TokensUsdValueSum(assets []WheelAsset) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range assets {
		if a.IsToken() {
			sum = sum.Add(a.TokenUsdValue())
		}
	}
	return sum
}
