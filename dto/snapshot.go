package dto

import "pandemic-deck/entities"

type ZoneCityCount struct {
	Name  string             `json:"name"`
	Color entities.CityColor `json:"color"`
	Count int                `json:"count"`
}

type DeckLayer struct {
	ID       int             `json:"id"`
	Position int             `json:"position"` // 1 为最上层
	Cities   []ZoneCityCount `json:"cities"`
	Total    int             `json:"total"`
}

type ZoneTotals struct {
	A     int `json:"A"`
	B     int `json:"B"`
	C     int `json:"C"`
	D     int `json:"D"`
	E     int `json:"E"`
	Total int `json:"total"`
}

type PlayerPile struct {
	Index       int  `json:"index"`
	Count       int  `json:"count"`
	IsActive    bool `json:"isActive"`
	HasEpidemic bool `json:"hasEpidemic"`
}

type PlayerCity struct {
	Name    string             `json:"name"`
	Color   entities.CityColor `json:"color"`
	Undrawn int                `json:"undrawn"`
	Drawn   int                `json:"drawn"`
	Removed int                `json:"removed"`
}

type PlayerDeck struct {
	Piles                []PlayerPile               `json:"piles"`
	Cities               []PlayerCity               `json:"cities"`
	EventCount           int                        `json:"eventCount"`
	DrawnEventCount      int                        `json:"drawnEventCount"`
	EpidemicCount        int                        `json:"epidemicCount"`
	DrawnEpidemicCount   int                        `json:"drawnEpidemicCount"`
	InitialEpidemicCount int                        `json:"initialEpidemicCount"`
	CityColorTotals      map[entities.CityColor]int `json:"cityColorTotals"`
	RemainingCityTotal   int                        `json:"remainingCityTotal"`
	RemainingPlayerTotal int                        `json:"remainingPlayerTotal"`
	Setup                entities.GameSetup         `json:"setup"`
}

// Snapshot 对外唯一可见的状态视图，生成后不再修改
type Snapshot struct {
	Revision           int                 `json:"revision"`
	Cities             []entities.CityInfo `json:"cities"`
	ZoneA              []ZoneCityCount     `json:"zoneA"`
	ZoneBLayers        []DeckLayer         `json:"zoneBLayers"`
	ZoneC              []ZoneCityCount     `json:"zoneC"`
	ZoneD              []ZoneCityCount     `json:"zoneD"`
	ZoneE              []ZoneCityCount     `json:"zoneE"`
	Totals             ZoneTotals          `json:"totals"`
	CanTriggerEpidemic bool                `json:"canTriggerEpidemic"`
	Player             PlayerDeck          `json:"player"`
}
