package entities

// DefaultCityCards 初始城市每个拥有的感染卡和玩家卡数量
const DefaultCityCards = 3

// DefaultCities 完全重置时使用的初始城市
var DefaultCities = []CityInfo{
	{Name: "New York", Color: CityColorBlue, InfectionCardsCount: DefaultCityCards, PlayerCardsCount: DefaultCityCards},
	{Name: "Washington", Color: CityColorBlue, InfectionCardsCount: DefaultCityCards, PlayerCardsCount: DefaultCityCards},
	{Name: "London", Color: CityColorBlue, InfectionCardsCount: DefaultCityCards, PlayerCardsCount: DefaultCityCards},
	{Name: "Jacksonville", Color: CityColorYellow, InfectionCardsCount: DefaultCityCards, PlayerCardsCount: DefaultCityCards},
	{Name: "Sao Paulo", Color: CityColorYellow, InfectionCardsCount: DefaultCityCards, PlayerCardsCount: DefaultCityCards},
	{Name: "Lagos", Color: CityColorYellow, InfectionCardsCount: DefaultCityCards, PlayerCardsCount: DefaultCityCards},
	{Name: "Istanbul", Color: CityColorBlack, InfectionCardsCount: DefaultCityCards, PlayerCardsCount: DefaultCityCards},
	{Name: "Tripoli", Color: CityColorBlack, InfectionCardsCount: DefaultCityCards, PlayerCardsCount: DefaultCityCards},
	{Name: "Cairo", Color: CityColorBlack, InfectionCardsCount: DefaultCityCards, PlayerCardsCount: DefaultCityCards},
}

// DefaultSetup 重置后自动发牌使用的参数
var DefaultSetup = GameSetup{Players: 4, Events: 0}

const (
	MinPlayers = 2
	MaxPlayers = 4
)

type epidemicThreshold struct {
	maxCityCards int
	epidemics    int
}

// 玩家城市卡总数 -> 传染卡数量
var epidemicTable = []epidemicThreshold{
	{maxCityCards: 36, epidemics: 5},
	{maxCityCards: 44, epidemics: 6},
	{maxCityCards: 51, epidemics: 7},
	{maxCityCards: 57, epidemics: 8},
	{maxCityCards: 62, epidemics: 9},
}

const maxEpidemics = 10

// EpidemicCountFor 根据牌堆中玩家城市卡的总数查表得到传染卡数量
func EpidemicCountFor(cityCards int) int {
	for _, t := range epidemicTable {
		if cityCards <= t.maxCityCards {
			return t.epidemics
		}
	}
	return maxEpidemics
}

// InitialHandSize 开局每位玩家的手牌数
func InitialHandSize(players int) int {
	switch players {
	case 2:
		return 4
	case 3:
		return 3
	default:
		return 2
	}
}
