package adjustment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pontual.app/pontual/model"
	"pontual.app/pontual/security"
	"pontual.app/pontual/web/common"
	"pontual.app/pontual/web/middlewares"
)

// List returns the subject's own adjustments; a reviewer sees everyone's,
// optionally filtered by status.
func (ep *Endpoint) List(c *gin.Context) {
	subject := middlewares.SubjectFrom(c)

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	query := db.Order("created_at DESC")
	if subject.Role != security.RoleReviewer {
		query = query.Where("employee_id = ?", subject.ID)
	}
	if status := c.Query("status"); status != "" {
		switch model.AdjustmentStatus(status) {
		case model.StatusPending, model.StatusApproved, model.StatusRejected:
			query = query.Where("status = ?", status)
		default:
			c.JSON(http.StatusBadRequest, common.NewErrorResponse("Invalid status filter"))
			return
		}
	}

	var adjustments []model.Adjustment
	if err := query.Find(&adjustments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, common.NewSuccessResponse(adjustments))
}
