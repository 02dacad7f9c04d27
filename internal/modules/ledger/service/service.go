package service

import (
	"fmt"

	"anoa.com/kitaplik/internal/entity"
	ledgerRepo "anoa.com/kitaplik/internal/modules/ledger/repository"
	notifService "anoa.com/kitaplik/internal/modules/notification/service"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/dbctx"
	"anoa.com/kitaplik/pkg/logger"
	"github.com/google/uuid"
)

// XP sources recorded in the XP log.
const (
	SourceBookCompleted = "book_completed"
	SourceQuestClaimed  = "quest_claimed"
	SourceDuelWon       = "duel_won"
	SourceTrivia        = "trivia"
)

// XPChange reports the wallet before and after a credit.
type XPChange struct {
	Amount      int `json:"amount"`
	XPBefore    int `json:"xp_before"`
	XPAfter     int `json:"xp_after"`
	LevelBefore int `json:"level_before"`
	LevelAfter  int `json:"level_after"`
}

func (c XPChange) LeveledUp() bool {
	return c.LevelAfter > c.LevelBefore
}

// LedgerService owns every write to a user's xp, level and points. Callers
// pass deltas only and must run inside a transaction when composing writes.
type LedgerService interface {
	LockWallet(dbc dbctx.Context, userID uuid.UUID) (*entity.User, error)
	Wallet(dbc dbctx.Context, userID uuid.UUID) (*entity.User, error)
	CreditXP(dbc dbctx.Context, userID uuid.UUID, amount int, source, referenceID string) (XPChange, error)
	DebitPoints(dbc dbctx.Context, userID uuid.UUID, amount int) error
	CreditPoints(dbc dbctx.Context, userID uuid.UUID, amount int) error
}

type ledgerService struct {
	repo     ledgerRepo.LedgerRepository
	notifier notifService.NotificationService
	clock    clock.Clock
	log      *logger.Logger
}

func NewLedgerService(repo ledgerRepo.LedgerRepository, notifier notifService.NotificationService, clk clock.Clock, log *logger.Logger) LedgerService {
	return &ledgerService{
		repo:     repo,
		notifier: notifier,
		clock:    clk,
		log:      log.With("service", "ledger"),
	}
}

func (s *ledgerService) LockWallet(dbc dbctx.Context, userID uuid.UUID) (*entity.User, error) {
	return s.repo.LockWallet(dbc, userID)
}

func (s *ledgerService) Wallet(dbc dbctx.Context, userID uuid.UUID) (*entity.User, error) {
	return s.repo.GetWallet(dbc, userID)
}

func (s *ledgerService) CreditXP(dbc dbctx.Context, userID uuid.UUID, amount int, source, referenceID string) (XPChange, error) {
	if amount < 0 {
		return XPChange{}, fmt.Errorf("credit xp: negative amount %d: %w", amount, apperror.ErrInvalidInput)
	}

	user, err := s.repo.LockWallet(dbc, userID)
	if err != nil {
		return XPChange{}, err
	}
	change := XPChange{
		XPBefore:    user.XP,
		XPAfter:     user.XP,
		LevelBefore: LevelOf(user.XP),
		LevelAfter:  LevelOf(user.XP),
	}
	if amount == 0 {
		return change, nil
	}

	change.Amount = amount
	change.XPAfter = user.XP + amount
	change.LevelAfter = LevelOf(change.XPAfter)

	if err := s.repo.SetXP(dbc, userID, change.XPAfter, change.LevelAfter); err != nil {
		return XPChange{}, fmt.Errorf("credit xp: %w", err)
	}
	if err := s.repo.CreateXPLog(dbc, &entity.XPLog{
		UserID:      userID,
		Amount:      amount,
		Source:      source,
		ReferenceID: referenceID,
		CreatedAt:   s.clock.Now(),
	}); err != nil {
		return XPChange{}, fmt.Errorf("append xp log: %w", err)
	}

	if change.LeveledUp() {
		if err := s.sendLevelUpNotification(dbc, userID, change); err != nil {
			return XPChange{}, err
		}
	}
	return change, nil
}

func (s *ledgerService) sendLevelUpNotification(dbc dbctx.Context, userID uuid.UUID, change XPChange) error {
	uid := userID
	return s.notifier.Notify(dbc, &entity.Notification{
		UserID:     userID,
		EntityID:   &uid,
		EntityType: "user",
		Type:       entity.NotifLevelUp,
		Message:    fmt.Sprintf("Tebrikler! %d. seviyeden %d. seviyeye yükseldin (%d XP).", change.LevelBefore, change.LevelAfter, change.XPAfter),
	})
}

func (s *ledgerService) DebitPoints(dbc dbctx.Context, userID uuid.UUID, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("debit points: amount %d: %w", amount, apperror.ErrInvalidInput)
	}
	ok, err := s.repo.DebitPoints(dbc, userID, amount)
	if err != nil {
		return fmt.Errorf("debit points: %w", err)
	}
	if ok {
		return nil
	}
	// Distinguish a missing wallet from a short balance.
	if _, err := s.repo.GetWallet(dbc, userID); err != nil {
		return err
	}
	return apperror.ErrInsufficientFunds
}

func (s *ledgerService) CreditPoints(dbc dbctx.Context, userID uuid.UUID, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("credit points: amount %d: %w", amount, apperror.ErrInvalidInput)
	}
	ok, err := s.repo.CreditPoints(dbc, userID, amount)
	if err != nil {
		return fmt.Errorf("credit points: %w", err)
	}
	if !ok {
		return apperror.ErrNotFound
	}
	return nil
}
