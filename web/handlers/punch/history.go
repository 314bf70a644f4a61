package punch

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pontual.app/pontual/ledger"
	"pontual.app/pontual/model"
	"pontual.app/pontual/web/common"
	"pontual.app/pontual/web/middlewares"
)

const defaultHistoryLimit = 30

func (ep *Endpoint) History(c *gin.Context) {
	subject := middlewares.SubjectFrom(c)

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid limit"))
			return
		}
		limit = n
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	date := c.Query("date")
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid date, expected yyyy-MM-dd"))
			return
		}
	}

	filter := func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("employee_id = ?", subject.ID)
		if date != "" {
			tx = tx.Where("date = ?", date)
		}
		return tx
	}

	var total int64
	if err := filter(db.Model(&model.Punch{})).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	var punches []model.Punch
	if err := filter(db).Order("timestamp DESC").
		Limit(limit).
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

	c.JSON(http.StatusOK, common.NewSearchResponse(effective, total))
}
