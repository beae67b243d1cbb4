package models

// RevenueResponse выручка за период
type RevenueResponse struct {
	From              string  `json:"from"` // RFC 3339 в часовом поясе салона
	To                string  `json:"to"`
	AppointmentsCount int     `json:"appointmentsCount"`
	Total             float64 `json:"total"`
}

// ProfessionalRevenueResponse выручка и комиссия профессионала за месяц
type ProfessionalRevenueResponse struct {
	ProfessionalID       string   `json:"professionalId"`
	FullName             string   `json:"fullName"`
	AppointmentsCount    int      `json:"appointmentsCount"`
	Total                float64  `json:"total"`
	CommissionPercentage *float64 `json:"commissionPercentage,omitempty"`
	Commission           float64  `json:"commission"`
}

// OverviewResponse сводка для панели администратора
type OverviewResponse struct {
	Timezone      string                        `json:"timezone"`
	Today         string                        `json:"today"` // "2026-03-10"
	TodayByStatus map[string]int                `json:"todayByStatus"`
	Revenue       RevenueByPeriod               `json:"revenue"`
	Professionals []ProfessionalRevenueResponse `json:"professionals"`
}

// RevenueByPeriod выручка за день, ISO неделю и календарный месяц
type RevenueByPeriod struct {
	Day   RevenueResponse `json:"day"`
	Week  RevenueResponse `json:"week"`
	Month RevenueResponse `json:"month"`
}
