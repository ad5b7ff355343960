package model

type Percent float64

func (p Percent) Value() float64 {
	return float64(p)
}
