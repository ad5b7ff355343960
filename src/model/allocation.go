package model

import "fmt"

// BaseAsset is the reference asset all capital is quoted in. It is never
// traded itself: an allocation to it stays on the balance.
const BaseAsset = "USDC"

type Allocation struct {
	Asset  string  `json:"asset"`
	Amount float64 `json:"amount"`
}

func (a Allocation) GetSymbol() string {
	return fmt.Sprintf("%s%s", a.Asset, BaseAsset)
}

func (a Allocation) IsBaseAsset() bool {
	return a.Asset == BaseAsset
}
