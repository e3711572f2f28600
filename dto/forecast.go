package dto

import "pandemic-deck/probability"

type Forecast struct {
	Revision             int                           `json:"revision"`
	Draws                int                           `json:"draws"`
	AfterEpidemic        bool                          `json:"afterEpidemic"`
	Infection            []probability.CityProbability `json:"infection"`
	PlayerDraws          int                           `json:"playerDraws"`
	PlayerEpidemicChance float64                       `json:"playerEpidemicChance"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
