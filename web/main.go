package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pontual.app/pontual/core"
	"pontual.app/pontual/model"
	"pontual.app/pontual/web/common"
	"pontual.app/pontual/web/handlers/adjustment"
	"pontual.app/pontual/web/handlers/punch"
	"pontual.app/pontual/web/middlewares"
)

func main() {
	ctx := context.Background()

	cfg, err := LoadConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}

	jwtSecret, err := cfg.JWTSecret()
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	dm, err := core.New(cfg.DSN, cfg.MaxConnections)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	if err := dm.Migrate(ctx); err != nil {
		log.Fatal(err)
	}

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// liveness probe used by clients to rank candidate endpoints
	r.GET("/health", func(c *gin.Context) {
		if err := dm.SqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	protected := r.Group("/api/v1")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		punch.Register(protected, dm)
		adjustment.Register(protected, dm)

		protected.GET("/employees/me", func(c *gin.Context) {
			subject := middlewares.SubjectFrom(c)
			ctx := c.Request.Context()

			var emp model.Employee
			err := dm.Exec(ctx, func(db *gorm.DB) error {
				return db.First(&emp, "id = ?", subject.ID).Error
			})
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// identity service knows the subject even when the
					// employee record has not been mirrored yet
					c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
						"id":   subject.ID,
						"name": subject.Name,
						"role": subject.Role,
					}))
					return
				}
				c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
				return
			}

			c.JSON(http.StatusOK, common.NewSuccessResponse(gin.H{
				"id":           emp.ID,
				"name":         emp.FirstName,
				"surname":      emp.Surname,
				"organization": emp.Organization,
				"active":       emp.Active,
				"role":         subject.Role,
			}))
		})
	}

	r.Run(cfg.ListenAddr)
}
