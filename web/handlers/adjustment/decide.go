package adjustment

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pontual.app/pontual/model"
	"pontual.app/pontual/web/common"
	"pontual.app/pontual/web/middlewares"
)

type AdjustmentDecideDTO struct {
	Decision         string `json:"decision" binding:"required,oneof=approved rejected"`
	ReviewerResponse string `json:"reviewerResponse" binding:"omitempty,max=300"`
}

// Decide approves or rejects a pending adjustment. The transition is
// one-shot: the conditional update only matches status=pending, so a
// second decision loses the race and is reported as an invalid state, not
// silently re-applied.
func (ep *Endpoint) Decide(c *gin.Context) {
	id := c.Param("id")

	var dto AdjustmentDecideDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	result := db.Model(&model.Adjustment{}).
		Where("id = ? AND status = ?", id, model.StatusPending).
		Updates(map[string]interface{}{
			"status":            dto.Decision,
			"reviewer_response": dto.ReviewerResponse,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(result.Error.Error()))
		return
	}

	var record model.Adjustment
	if err := db.First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Adjustment not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	if result.RowsAffected == 0 {
		c.JSON(http.StatusConflict, common.NewErrorResponse("Adjustment already decided"))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(record))
}

// Withdraw deletes the caller's own adjustment while it is still pending.
func (ep *Endpoint) Withdraw(c *gin.Context) {
	subject := middlewares.SubjectFrom(c)
	id := c.Param("id")

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var record model.Adjustment
	if err := db.First(&record, "id = ? AND employee_id = ?", id, subject.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, common.NewErrorResponse("Adjustment not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	if record.Status.Terminal() {
		c.JSON(http.StatusConflict, common.NewErrorResponse("Only pending adjustments can be withdrawn"))
		return
	}

	result := db.Where("id = ? AND status = ?", id, model.StatusPending).Delete(&model.Adjustment{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(result.Error.Error()))
		return
	}
	if result.RowsAffected == 0 {
		// decided between the read and the delete
		c.JSON(http.StatusConflict, common.NewErrorResponse("Only pending adjustments can be withdrawn"))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{}))
}
