package entities

import "strings"

type CityColor string

const (
	CityColorBlue   CityColor = "Blue"
	CityColorYellow CityColor = "Yellow"
	CityColorBlack  CityColor = "Black"
	CityColorRed    CityColor = "Red"
)

// CityColorOrder 城市颜色的固定展示顺序
var CityColorOrder = []CityColor{CityColorBlue, CityColorYellow, CityColorBlack, CityColorRed}

// Priority 返回颜色在 CityColorOrder 中的位置，未知颜色排在最后
func (c CityColor) Priority() int {
	for i, color := range CityColorOrder {
		if color == c {
			return i
		}
	}
	return len(CityColorOrder)
}

func (c CityColor) Valid() bool {
	return c.Priority() < len(CityColorOrder)
}

// ParseCityColor 解析颜色名（不区分大小写）
func ParseCityColor(s string) (CityColor, bool) {
	for _, color := range CityColorOrder {
		if strings.EqualFold(string(color), strings.TrimSpace(s)) {
			return color, true
		}
	}
	return "", false
}

type CityInfo struct {
	Name                string    `json:"name"`
	Color               CityColor `json:"color"`
	InfectionCardsCount int       `json:"infectionCardsCount"`
	PlayerCardsCount    int       `json:"playerCardsCount"`
}

// NormalizeCityName 去掉城市名两端空白
func NormalizeCityName(name string) string {
	return strings.TrimSpace(name)
}
