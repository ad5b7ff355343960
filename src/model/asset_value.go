package model

// Stablecoins are valued 1:1 against the base asset and never sold to it.
var Stablecoins = map[string]bool{
	"USDC":  true,
	"USDT":  true,
	"BUSD":  true,
	"TUSD":  true,
	"USDP":  true,
	"FDUSD": true,
}

func IsStablecoin(asset string) bool {
	return Stablecoins[asset]
}

const AssetNotSellableBaseAsset = "base asset"
const AssetNotSellableStablecoin = "stablecoin"
const AssetNotSellableNoPrice = "no price available"
const AssetNotSellableNoDirectPair = "no direct USDC pair"
const AssetNotSellableBelowMinNotional = "value below min notional"
const AssetNotSellableFiltersUnavailable = "exchange filters unavailable"

// AssetValue is a spot balance enriched with its estimated base asset
// value for the take profit flow.
type AssetValue struct {
	Asset     string  `json:"asset"`
	Free      float64 `json:"free"`
	Locked    float64 `json:"locked"`
	Price     float64 `json:"price,omitempty"`
	BaseValue float64 `json:"baseValue"`
	CanSell   bool    `json:"canSell"`
	Reason    string  `json:"reason,omitempty"`
}

func (a AssetValue) GetSymbol() string {
	return a.Asset + BaseAsset
}
