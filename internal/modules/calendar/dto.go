package calendar

import "diligencias/internal/domain"

type MonthQuery struct {
	Year  int `form:"year"`
	Month int `form:"month"`
}

type Month struct {
	Year             int                     `json:"year"`
	Month            int                     `json:"month"`
	Start            string                  `json:"start"`
	End              string                  `json:"end"`
	Slots            []string                `json:"slots"`
	Days             []domain.CalendarDay    `json:"days"`
	Holidays         []domain.Holiday        `json:"holidays"`
	Unavailabilities []domain.Unavailability `json:"unavailabilities"`
}
