package adjustment

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/google/uuid"
	"pontual.app/pontual/model"
	"pontual.app/pontual/web/common"
	"pontual.app/pontual/web/middlewares"
)

const minReasonLength = 10

type AdjustmentSubmitDTO struct {
	PunchID      string               `json:"punchId" binding:"required"`
	ProposedTime common.LocalDateTime `json:"proposedTime"`
	Reason       string               `json:"reason" binding:"required,max=500"`
}

// Submit files a correction request against a punch. The punch reference
// is deliberately not verified here: devices submit against cached state
// that may be ahead of or behind the server, and a dangling reference is
// harmless because it resolves to nothing at projection time.
func (ep *Endpoint) Submit(c *gin.Context) {
	subject := middlewares.SubjectFrom(c)

	var dto AdjustmentSubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}
	if dto.ProposedTime.IsZero() {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Field 'proposedTime' is required"))
		return
	}

	reason := strings.TrimSpace(dto.Reason)
	if len(reason) < minReasonLength {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Reason must have at least 10 characters"))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var pending int64
	if err := db.Model(&model.Adjustment{}).
		Where("punch_id = ? AND status = ?", dto.PunchID, model.StatusPending).
		Count(&pending).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	if pending > 0 {
		c.JSON(http.StatusConflict, common.NewErrorResponse("A pending adjustment already exists for this punch"))
		return
	}

	record := model.Adjustment{
		ID:           uuid.NewString(),
		EmployeeID:   subject.ID,
		PunchID:      dto.PunchID,
		ProposedTime: dto.ProposedTime.Time,
		Reason:       reason,
		Status:       model.StatusPending,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(record))
}
