package ledger

import (
	"sort"

	"pontual.app/pontual/model"
	"pontual.app/pontual/utils"
)

type DayReport struct {
	Date     string `json:"date"`
	Punches  int    `json:"punches"`
	Minutes  int    `json:"workedMinutes"`
	Worked   string `json:"workedHours"`
	Complete bool   `json:"complete"`
}

type Report struct {
	Days         []DayReport `json:"days"`
	DaysWorked   int         `json:"daysWorked"`
	TotalMinutes int         `json:"totalMinutes"`
	TotalHours   string      `json:"totalHours"`
}

// PeriodReport groups a subject's punches by day and sums the worked
// minutes over the effective timeline.
func PeriodReport(punches []model.Punch, adjustments []model.Adjustment) Report {
	effective := ProjectEffective(punches, adjustments)
	byDay := utils.GroupBy(effective, func(p EffectivePunch) string { return p.Date })

	report := Report{Days: make([]DayReport, 0, len(byDay))}
	for date, day := range byDay {
		minutes := DailyMinutes(day)
		report.TotalMinutes += minutes
		report.Days = append(report.Days, DayReport{
			Date:     date,
			Punches:  len(day),
			Minutes:  minutes,
			Worked:   FormatMinutes(minutes),
			Complete: Complete(day),
		})
	}
	sort.Slice(report.Days, func(i, j int) bool { return report.Days[i].Date < report.Days[j].Date })

	report.DaysWorked = len(report.Days)
	report.TotalHours = FormatMinutes(report.TotalMinutes)
	return report
}
