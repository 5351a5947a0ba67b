package sandbox

import (
	"wheeladmin/internal/models"
)

type defaultAsset struct {
	name   string
	color  string
	config models.CreateWheelAssetTypeConfig
}

func strPtr(s string) *string {
	return &s
}

func defaultAssets() []defaultAsset {
	token := func(ledger string, decimals uint8, symbol *string) models.CreateToken {
		return models.CreateToken{
			LedgerConfig:       models.TokenLedgerConfig{LedgerCanisterID: ledger, Decimals: decimals},
			ExchangeRateSymbol: symbol,
			PrizeUsdAmount:     1,
		}
	}
	return []defaultAsset{
		{name: "ICP", color: "#29ABE2", config: token("ryjl3-tyaaa-aaaaa-aaaba-cai", 8, strPtr("ICP"))},
		{name: "ckBTC", color: "#F15A24", config: token("mxzaz-hqaaa-aaaar-qaada-cai", 8, strPtr("BTC"))},
		{name: "ckETH", color: "#ED1E79", config: token("ss2fx-dyaaa-aaaar-qacoq-cai", 18, strPtr("ETH"))},
		{name: "ckUSDC", color: "#522785", config: token("xevnm-gaaaa-aaaar-qafnq-cai", 6, nil)},
	}
}
