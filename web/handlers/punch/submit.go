package punch

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"pontual.app/pontual/ledger"
	"pontual.app/pontual/model"
	"pontual.app/pontual/web/common"
	"pontual.app/pontual/web/middlewares"
)

type PunchSubmitDTO struct {
	Kind      string               `json:"kind" binding:"required"`
	Timestamp common.LocalDateTime `json:"timestamp"`
	Note      string               `json:"note" binding:"omitempty,max=500"`
}

func (ep *Endpoint) Submit(c *gin.Context) {
	subject := middlewares.SubjectFrom(c)

	var dto PunchSubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}
	if dto.Timestamp.IsZero() {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse("Field 'timestamp' is required"))
		return
	}

	kind := model.Kind(dto.Kind)
	ts := dto.Timestamp.Time
	day := model.Day(ts)

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var existing []model.Punch
	if err := db.Where("employee_id = ? AND date = ?", subject.ID, day).
		Order("timestamp ASC").
		Find(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	if err := ledger.ValidateNext(existing, kind); err != nil {
		c.JSON(http.StatusBadRequest, rejectionResponse(err))
		return
	}

	record := model.Punch{
		ID:         uuid.NewString(),
		EmployeeID: subject.ID,
		Kind:       kind,
		Date:       day,
		Timestamp:  ts,
		Note:       dto.Note,
		CreatedAt:  time.Now(),
	}

	if err := db.Create(&record).Error; err != nil {
		// a concurrent submit for the same kind/day loses the race on the
		// unique index and reads the same as a duplicate punch
		if isDuplicateKey(err) {
			c.JSON(http.StatusBadRequest, rejectionResponse(&ledger.SequenceError{Kind: kind, Duplicate: true}))
			return
		}
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusCreated, common.NewSuccessResponse(record))
}

func rejectionResponse(err error) *common.ErrorResponse {
	var seqErr *ledger.SequenceError
	if errors.As(err, &seqErr) && !seqErr.Duplicate {
		return common.NewSequenceErrorResponse(seqErr.Error(), string(seqErr.Expected))
	}
	return common.NewErrorResponse(err.Error())
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "Duplicate entry")
}
