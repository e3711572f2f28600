package entities

import (
	"slices"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale 城市名排序默认使用的语言
var DefaultLocale = language.Korean

// ParseLocale 解析配置中的语言标签，无法识别时回退到 DefaultLocale
func ParseLocale(s string) language.Tag {
	if s == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLocale
	}
	return tag
}

// CityOrdering 城市列表的统一排序：先按颜色优先级，再按当地语言的名称排序。
// collate.Collator 不是并发安全的，每次投影都要新建一个。
type CityOrdering struct {
	colors   map[string]CityColor
	collator *collate.Collator
}

func NewCityOrdering(cities []CityInfo, locale language.Tag) *CityOrdering {
	colors := make(map[string]CityColor, len(cities))
	for _, city := range cities {
		colors[city.Name] = city.Color
	}
	return &CityOrdering{
		colors:   colors,
		collator: collate.New(locale),
	}
}

func (o *CityOrdering) Color(name string) CityColor {
	return o.colors[name]
}

func (o *CityOrdering) Compare(a, b string) int {
	pa, pb := o.colors[a].Priority(), o.colors[b].Priority()
	if pa != pb {
		return pa - pb
	}
	return o.collator.CompareString(a, b)
}

func (o *CityOrdering) SortNames(names []string) {
	slices.SortStableFunc(names, o.Compare)
}

func (o *CityOrdering) SortCounts(list []CityCount) {
	slices.SortStableFunc(list, func(a, b CityCount) int {
		return o.Compare(a.Name, b.Name)
	})
}
