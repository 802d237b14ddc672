package tracking

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"stringdesk/internal/tracking/controller"
	"stringdesk/internal/tracking/repository"
	"stringdesk/internal/tracking/service"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.TrackingController {
	itemRepo := repository.NewMySQLItemRepository(db)
	statusSvc := service.NewStatusService(db, itemRepo, logger, 5*time.Second)

	return controller.NewTrackingController(statusSvc, logger)
}
