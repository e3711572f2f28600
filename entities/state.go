package entities

// InfectionCityCardState 单个城市感染卡在各区域的数量
type InfectionCityCardState struct {
	Name    string `json:"name"`
	Discard int    `json:"discard"` // zone A
	Safe    int    `json:"safe"`    // zone C
	Pending int    `json:"pending"` // zone D
	Removed int    `json:"removed"` // zone E
}

type CityCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// RestackLayer B 区的一层（传染后重新洗回牌堆顶部的弃牌），Cards 为无序多重集
type RestackLayer struct {
	ID    int         `json:"id"`
	Cards []CityCount `json:"cards"`
}

func (l RestackLayer) Total() int {
	total := 0
	for _, c := range l.Cards {
		total += c.Count
	}
	return total
}

// Count 返回该层中某城市的卡数
func (l RestackLayer) Count(city string) int {
	for _, c := range l.Cards {
		if c.Name == city {
			return c.Count
		}
	}
	return 0
}

// Add 按 delta 调整城市数量，归零时删除该条目
func (l *RestackLayer) Add(city string, delta int) {
	for i, c := range l.Cards {
		if c.Name != city {
			continue
		}
		l.Cards[i].Count += delta
		if l.Cards[i].Count <= 0 {
			l.Cards = append(l.Cards[:i], l.Cards[i+1:]...)
		}
		return
	}
	if delta > 0 {
		l.Cards = append(l.Cards, CityCount{Name: city, Count: delta})
	}
}

type PlayerCityCardState struct {
	Name    string `json:"name"`
	Undrawn int    `json:"undrawn"`
	Drawn   int    `json:"drawn"`
	Removed int    `json:"removed"`
}

// GameSetup 新游戏开始时的参数
type GameSetup struct {
	Players int `json:"players"`
	Events  int `json:"events"`
}

// GameState 会话中唯一的可变聚合。
// Infection 与 PlayerCities 和 Cities 按下标一一对应
type GameState struct {
	Revision     int                      `json:"revision"`
	Cities       []CityInfo               `json:"cities"`
	Infection    []InfectionCityCardState `json:"infection"`
	Layers       []RestackLayer           `json:"layers"`
	NextLayerID  int                      `json:"nextLayerId"`
	PlayerPiles  []int                    `json:"playerPiles"`
	PlayerCities []PlayerCityCardState    `json:"playerCities"`

	PlayerEventCounts         int `json:"playerEventCounts"`
	PlayerDrawnEventCounts    int `json:"playerDrawnEventCounts"`
	PlayerEpidemicCounts      int `json:"playerEpidemicCounts"`
	PlayerDrawnEpidemicCounts int `json:"playerDrawnEpidemicCounts"`
	InitialEpidemicCounts     int `json:"initialEpidemicCounts"`

	Setup GameSetup `json:"setup"`
}

// CityIndex 按注册顺序查找城市下标
func (s *GameState) CityIndex(name string) (int, bool) {
	for i, city := range s.Cities {
		if city.Name == name {
			return i, true
		}
	}
	return -1, false
}

// LayerCount 统计城市在所有 B 区层中的卡数
func (s *GameState) LayerCount(city string) int {
	total := 0
	for _, layer := range s.Layers {
		total += layer.Count(city)
	}
	return total
}

// DrawnEpidemics 本局已经翻出的传染卡数量
func (s *GameState) DrawnEpidemics() int {
	return s.InitialEpidemicCounts - s.PlayerEpidemicCounts
}

// Clone 深拷贝，历史记录中的状态不能与正在修改的状态共享切片
func (s GameState) Clone() GameState {
	out := s
	out.Cities = append([]CityInfo(nil), s.Cities...)
	out.Infection = append([]InfectionCityCardState(nil), s.Infection...)
	out.PlayerPiles = append([]int(nil), s.PlayerPiles...)
	out.PlayerCities = append([]PlayerCityCardState(nil), s.PlayerCities...)
	out.Layers = make([]RestackLayer, len(s.Layers))
	for i, layer := range s.Layers {
		out.Layers[i] = RestackLayer{
			ID:    layer.ID,
			Cards: append([]CityCount(nil), layer.Cards...),
		}
	}
	return out
}

// GameStorage 持久化的历史记录（旧的在前），存储层只把它当作不透明的数据
type GameStorage []GameState
