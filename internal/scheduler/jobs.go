package scheduler

import (
	"context"
	"time"

	notifService "anoa.com/kitaplik/internal/modules/notification/service"
	questService "anoa.com/kitaplik/internal/modules/quest/service"
	"anoa.com/kitaplik/pkg/clock"
	"anoa.com/kitaplik/pkg/logger"
)

// ReadNotificationTTL is how long read notifications are kept.
const ReadNotificationTTL = 90 * 24 * time.Hour

// QuestRollover deletes quest rows whose period ended more than retention ago.
type QuestRollover struct {
	Quests    questService.QuestService
	Clock     clock.Clock
	Retention time.Duration
}

func (j *QuestRollover) Name() string     { return "quest-rollover" }
func (j *QuestRollover) Schedule() string { return "5 0 * * *" }

func (j *QuestRollover) Run(ctx context.Context) error {
	_, err := j.Quests.PruneExpired(ctx, j.Clock.Now().Add(-j.Retention))
	return err
}

type NotificationCleanup struct {
	Notifications notifService.NotificationService
	Log           *logger.Logger
}

func (j *NotificationCleanup) Name() string     { return "notification-cleanup" }
func (j *NotificationCleanup) Schedule() string { return "30 3 * * 1" }

func (j *NotificationCleanup) Run(ctx context.Context) error {
	n, err := j.Notifications.CleanupRead(ctx, ReadNotificationTTL)
	if err != nil {
		return err
	}
	j.Log.Info("read notifications removed", "rows", n)
	return nil
}
