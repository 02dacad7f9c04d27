package service

import (
	"fmt"
	"sort"

	"anoa.com/kitaplik/internal/entity"
	badgeService "anoa.com/kitaplik/internal/modules/badge/service"
	bookRepo "anoa.com/kitaplik/internal/modules/book/repository"
	duelDto "anoa.com/kitaplik/internal/modules/duel/dto"
	duelRepo "anoa.com/kitaplik/internal/modules/duel/repository"
	ledgerService "anoa.com/kitaplik/internal/modules/ledger/service"
	notifService "anoa.com/kitaplik/internal/modules/notification/service"
	userRepo "anoa.com/kitaplik/internal/modules/user/repository"
	"anoa.com/kitaplik/pkg/apperror"
	"anoa.com/kitaplik/pkg/database"
	"anoa.com/kitaplik/pkg/dbctx"
	"anoa.com/kitaplik/pkg/logger"
	"github.com/google/uuid"
)

// DuelWinXP is credited to the first participant who finishes the duel book.
const DuelWinXP = 300

// DuelService runs the duel state machine:
// PENDING -> ACTIVE -> COMPLETED and PENDING -> REJECTED.
type DuelService interface {
	Challenge(dbc dbctx.Context, challengerID, opponentID, bookID uuid.UUID) (*entity.Duel, error)
	Respond(dbc dbctx.Context, duelID, responderID uuid.UUID, accept bool) (*entity.Duel, error)
	// ResolveOnBookCompletion completes the user's ACTIVE duel on bookID, if
	// any. It returns nil when no duel matched or another transaction won.
	ResolveOnBookCompletion(dbc dbctx.Context, userID, bookID uuid.UUID) (*duelDto.Resolution, error)
	ListForUser(dbc dbctx.Context, userID uuid.UUID, status entity.DuelStatus) ([]entity.Duel, error)
}

type duelService struct {
	repo     duelRepo.DuelRepository
	users    userRepo.UserRepository
	books    bookRepo.BookRepository
	ledger   ledgerService.LedgerService
	notifier notifService.NotificationService
	log      *logger.Logger
}

func NewDuelService(
	repo duelRepo.DuelRepository,
	users userRepo.UserRepository,
	books bookRepo.BookRepository,
	ledger ledgerService.LedgerService,
	notifier notifService.NotificationService,
	log *logger.Logger,
) DuelService {
	return &duelService{
		repo:     repo,
		users:    users,
		books:    books,
		ledger:   ledger,
		notifier: notifier,
		log:      log.With("service", "duel"),
	}
}

// ActiveKey identifies the unordered pair of users and the book.
func ActiveKey(a, b, bookID uuid.UUID) string {
	ids := []string{a.String(), b.String()}
	sort.Strings(ids)
	return ids[0] + ":" + ids[1] + ":" + bookID.String()
}

func (s *duelService) Challenge(dbc dbctx.Context, challengerID, opponentID, bookID uuid.UUID) (*entity.Duel, error) {
	if challengerID == opponentID {
		return nil, apperror.ErrSelfTarget
	}
	n, err := s.users.CountExisting(dbc, challengerID, opponentID)
	if err != nil {
		return nil, err
	}
	if n != 2 {
		return nil, fmt.Errorf("duel participant: %w", apperror.ErrNotFound)
	}
	book, err := s.books.FindByID(dbc, bookID)
	if err != nil {
		return nil, err
	}

	key := ActiveKey(challengerID, opponentID, bookID)
	live, err := s.repo.FindLive(dbc, key)
	if err != nil {
		return nil, err
	}
	if live != nil {
		return nil, apperror.ErrDuelAlreadyActive
	}

	duel := &entity.Duel{
		ChallengerID: challengerID,
		OpponentID:   opponentID,
		BookID:       bookID,
		Status:       entity.DuelPending,
		ActiveKey:    &key,
	}
	if err := s.repo.Create(dbc, duel); err != nil {
		if database.IsDuplicate(err) {
			return nil, apperror.ErrDuelAlreadyActive
		}
		return nil, fmt.Errorf("create duel: %w", err)
	}

	if err := s.notify(dbc, opponentID, challengerID, duel, entity.NotifDuelChallenge,
		fmt.Sprintf("\"%s\" için bir okuma düellosuna davet edildin!", book.Title)); err != nil {
		return nil, err
	}
	return duel, nil
}

func (s *duelService) Respond(dbc dbctx.Context, duelID, responderID uuid.UUID, accept bool) (*entity.Duel, error) {
	duel, err := s.repo.LockByID(dbc, duelID)
	if err != nil {
		return nil, err
	}
	if duel.OpponentID != responderID {
		return nil, apperror.ErrNotAuthorized
	}
	if duel.Status != entity.DuelPending {
		return nil, apperror.ErrInvalidTransition
	}

	to, notifType, msg := entity.DuelActive, entity.NotifDuelAccepted, "Düello davetin kabul edildi. İlk bitiren kazanır!"
	if !accept {
		to, notifType, msg = entity.DuelRejected, entity.NotifDuelRejected, "Düello davetin reddedildi."
	}
	ok, err := s.repo.Transition(dbc, duel.ID, entity.DuelPending, to, !accept)
	if err != nil {
		return nil, fmt.Errorf("respond to duel: %w", err)
	}
	if !ok {
		return nil, apperror.ErrInvalidTransition
	}
	duel.Status = to
	if !accept {
		duel.ActiveKey = nil
	}

	if err := s.notify(dbc, duel.ChallengerID, responderID, duel, notifType, msg); err != nil {
		return nil, err
	}
	return duel, nil
}

func (s *duelService) ResolveOnBookCompletion(dbc dbctx.Context, userID, bookID uuid.UUID) (*duelDto.Resolution, error) {
	duel, err := s.repo.LockActiveForBook(dbc, userID, bookID)
	if err != nil {
		return nil, fmt.Errorf("find active duel: %w", err)
	}
	if duel == nil {
		return nil, nil
	}

	ok, err := s.repo.Complete(dbc, duel.ID, userID)
	if err != nil {
		return nil, fmt.Errorf("complete duel: %w", err)
	}
	if !ok {
		s.log.Debug("duel already resolved", "duel_id", duel.ID)
		return nil, nil
	}
	winner := userID
	duel.Status = entity.DuelCompleted
	duel.WinnerID = &winner
	duel.ActiveKey = nil

	if _, err := s.ledger.CreditXP(dbc, userID, DuelWinXP, ledgerService.SourceDuelWon, duel.ID.String()); err != nil {
		return nil, err
	}

	loser := duel.OpponentID
	if loser == userID {
		loser = duel.ChallengerID
	}
	if err := s.notify(dbc, loser, userID, duel, entity.NotifDuelLost,
		"Rakibin kitabı senden önce bitirdi, düelloyu kaybettin."); err != nil {
		return nil, err
	}

	wins, err := s.repo.CountWins(dbc, userID)
	if err != nil {
		return nil, err
	}
	return &duelDto.Resolution{
		Duel:     duel,
		BonusXP:  DuelWinXP,
		LoserID:  loser.String(),
		FirstWin: badgeService.FirstDuelWin(wins),
	}, nil
}

func (s *duelService) ListForUser(dbc dbctx.Context, userID uuid.UUID, status entity.DuelStatus) ([]entity.Duel, error) {
	return s.repo.ListForUser(dbc, userID, status)
}

func (s *duelService) notify(dbc dbctx.Context, to, actor uuid.UUID, duel *entity.Duel, notifType, msg string) error {
	actorID := actor
	duelID := duel.ID
	return s.notifier.Notify(dbc, &entity.Notification{
		UserID:     to,
		ActorID:    &actorID,
		EntityID:   &duelID,
		EntityType: "duel",
		Type:       notifType,
		Message:    msg,
	})
}
