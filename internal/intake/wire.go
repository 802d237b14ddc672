package intake

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"stringdesk/internal/config"
	"stringdesk/internal/intake/controller"
	"stringdesk/internal/intake/repository"
	"stringdesk/internal/intake/service"
	"stringdesk/internal/intake/usecase"
	"stringdesk/internal/token"
)

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *controller.IntakeController {
	customerRepo := repository.NewMySQLCustomerRepository(db)
	orderRepo := repository.NewMySQLOrderRepository(db)
	itemRepo := repository.NewMySQLItemRepository(db)

	intakeSvc := service.NewIntakeService(
		db,
		customerRepo,
		orderRepo,
		itemRepo,
		token.NewGenerator(cfg.Token.Length),
		logger,
		5*time.Second,
		cfg.Token.MaxAttempts,
	)

	uc := usecase.NewIntakeUseCase(intakeSvc, customerRepo, logger)

	return controller.NewIntakeController(uc, logger)
}
