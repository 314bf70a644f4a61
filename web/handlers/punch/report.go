package punch

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pontual.app/pontual/ledger"
	"pontual.app/pontual/model"
	"pontual.app/pontual/web/common"
	"pontual.app/pontual/web/middlewares"
)

type ReportResponse struct {
	From common.DateOnly `json:"from"`
	To   common.DateOnly `json:"to"`
	ledger.Report
}

// Report sums worked hours per day over a period, using the effective
// timeline so approved corrections change the totals.
func (ep *Endpoint) Report(c *gin.Context) {
	subject := middlewares.SubjectFrom(c)

	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid 'from' date, expected yyyy-MM-dd"))
		return
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid 'to' date, expected yyyy-MM-dd"))
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("'to' must not be before 'from'"))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var punches []model.Punch
	if err := db.Where("employee_id = ? AND date BETWEEN ? AND ?",
		subject.ID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("timestamp ASC").
		Find(&punches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	adjustments, err := adjustmentsFor(db, punches)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(ReportResponse{
		From:   common.DateOnly{Time: from},
		To:     common.DateOnly{Time: to},
		Report: ledger.PeriodReport(punches, adjustments),
	}))
}
