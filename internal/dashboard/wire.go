package dashboard

import (
	"database/sql"

	"go.uber.org/zap"

	"stringdesk/internal/dashboard/controller"
	"stringdesk/internal/dashboard/repository"
	"stringdesk/internal/dashboard/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) *controller.DashboardController {
	queryRepo := repository.NewMySQLQueryRepository(db)
	uc := usecase.NewDashboardUseCase(queryRepo)

	return controller.NewDashboardController(uc, logger)
}
