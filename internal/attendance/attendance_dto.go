package attendance

type SummaryQuery struct {
	EmployeeID int64  `form:"employee_id"`
	Start      string `form:"start" binding:"required"`
	End        string `form:"end" binding:"required"`
}

type SummaryResponse struct {
	EmployeeID  int64  `json:"employee_id"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	WorkingDays int    `json:"working_days"`
	DaysWorked  int    `json:"days_worked"`
}
