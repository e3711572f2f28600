package dto

type CityRequest struct {
	City string `json:"city" binding:"required"`
}

type AddCityRequest struct {
	City  string `json:"city" binding:"required"`
	Count int    `json:"count" binding:"required"`
	Color string `json:"color" binding:"required"`
}

type ReturnRemovedRequest struct {
	City string `json:"city" binding:"required"`
	Zone string `json:"zone" binding:"required,oneof=A B C"`
}

type NewGameRequest struct {
	Players int `json:"players" binding:"required,min=2,max=4"`
	Events  int `json:"events" binding:"min=0"`
}

type ForecastQuery struct {
	Draws    int  `form:"draws,default=2" binding:"min=1,max=12"`
	Epidemic bool `form:"epidemic"`
}
