package punch

import (
	"github.com/gin-gonic/gin"

	"pontual.app/pontual/core"
	"pontual.app/pontual/ledger"
	"pontual.app/pontual/model"
	"pontual.app/pontual/web/common"
)

type Endpoint struct {
	base common.Handler
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}}
	r.POST("/punches", endpoint.Submit)
	r.GET("/punches/today", endpoint.Today)
	r.GET("/punches/history", endpoint.History)
	r.GET("/punches/report", endpoint.Report)
}

type SummaryDTO struct {
	TotalPunches     int    `json:"totalPunches"`
	WorkedMinutes    int    `json:"workedMinutes"`
	WorkedHours      string `json:"workedHours"`
	CompleteDay      bool   `json:"completeDay"`
	NextExpectedKind string `json:"nextExpectedKind,omitempty"`
}

func summarize(effective []ledger.EffectivePunch, raw []model.Punch) SummaryDTO {
	minutes := ledger.DailyMinutes(effective)
	summary := SummaryDTO{
		TotalPunches:  len(effective),
		WorkedMinutes: minutes,
		WorkedHours:   ledger.FormatMinutes(minutes),
		CompleteDay:   ledger.Complete(effective),
	}
	if next, ok := ledger.NextExpected(raw); ok {
		summary.NextExpectedKind = string(next)
	}
	return summary
}
