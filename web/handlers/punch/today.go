package punch

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pontual.app/pontual/ledger"
	"pontual.app/pontual/model"
	"pontual.app/pontual/utils"
	"pontual.app/pontual/web/common"
	"pontual.app/pontual/web/middlewares"
)

type TodayResponse struct {
	Date    common.DateOnly        `json:"date"`
	Punches []ledger.EffectivePunch `json:"punches"`
	Summary SummaryDTO             `json:"summary"`
}

func (ep *Endpoint) Today(c *gin.Context) {
	subject := middlewares.SubjectFrom(c)
	today := time.Now()
	day := model.Day(today)

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var punches []model.Punch
	if err := db.Where("employee_id = ? AND date = ?", subject.ID, day).
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

	effective := ledger.ProjectEffective(punches, adjustments)

	c.JSON(http.StatusOK, common.NewSuccessResponse(TodayResponse{
		Date:    common.DateOnly{Time: today},
		Punches: effective,
		Summary: summarize(effective, punches),
	}))
}

// adjustmentsFor loads only the adjustments that reference the given
// punches, so projection never sees cross-day noise.
func adjustmentsFor(db *gorm.DB, punches []model.Punch) ([]model.Adjustment, error) {
	if len(punches) == 0 {
		return nil, nil
	}
	ids := utils.Map(punches, func(p model.Punch) string { return p.ID })

	var adjustments []model.Adjustment
	if err := db.Where("punch_id IN ?", ids).
		Order("created_at ASC").
		Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}
