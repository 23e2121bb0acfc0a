package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nestly-app/payments-service/internal/adapter/repository"
	domainRepo "github.com/nestly-app/payments-service/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	ProcessedEvent domainRepo.ProcessedEventRepository
	Payment        domainRepo.PaymentRepository
	RentLedger     domainRepo.RentLedgerRepository
	Wallet         domainRepo.WalletRepository
	Verification   domainRepo.VerificationRepository
	Notification   domainRepo.NotificationRepository
	UserProfile    domainRepo.UserProfileRepository
	Reporting      domainRepo.ReportingRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB, logger *zap.Logger) *Repositories {
	return &Repositories{
		ProcessedEvent: repository.NewProcessedEventRepository(db, logger),
		Payment:        repository.NewPaymentRepository(db, logger),
		RentLedger:     repository.NewRentLedgerRepository(db, logger),
		Wallet:         repository.NewWalletRepository(db, logger),
		Verification:   repository.NewVerificationRepository(db, logger),
		Notification:   repository.NewNotificationRepository(db, logger),
		UserProfile:    repository.NewUserProfileRepository(db, logger),
		Reporting:      repository.NewReportingRepository(db, logger),
	}
}
