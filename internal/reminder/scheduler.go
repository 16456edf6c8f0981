// Package reminder nudges the user to fill in the daily check-in at the
// reminder time from the profile.
package reminder

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"mellow/internal/dailylog"
	"mellow/internal/pregnancy"
	"mellow/internal/profile"
)

// everyMinute is the check-in poll schedule.
const everyMinute = "* * * * *"

type ProfileReader interface {
	GetProfile(ctx context.Context) (*profile.Profile, error)
}

type LogReader interface {
	Get(ctx context.Context, date string) (*dailylog.DailyLog, error)
}

type Scheduler struct {
	profiles ProfileReader
	logs     LogReader
	notifier Notifier
	loc      *time.Location
	logger   *zap.Logger
	cron     *cron.Cron

	mu       sync.Mutex
	lastSent string
}

func NewScheduler(profiles ProfileReader, logs LogReader, notifier Notifier, loc *time.Location, logger *zap.Logger) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		profiles: profiles,
		logs:     logs,
		notifier: notifier,
		loc:      loc,
		logger:   logger,
		cron:     cron.New(cron.WithLocation(loc)),
	}
}

// Start runs CheckIn every minute until Stop. ctx is handed to each run.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(everyMinute, func() {
		if _, err := s.CheckIn(ctx, time.Now()); err != nil {
			s.logger.Error("Reminder check failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}
	s.cron.Start()
	s.logger.Info("Reminder scheduler started", zap.String("timezone", s.loc.String()))
	return nil
}

// Stop halts the schedule; the returned context is done once a running
// check has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// CheckIn sends the reminder when now, in the scheduler's timezone, is the
// profile's reminder minute and today has no log. It sends at most once
// per day and reports whether it sent.
func (s *Scheduler) CheckIn(ctx context.Context, now time.Time) (bool, error) {
	local := now.In(s.loc)

	p, err := s.profiles.GetProfile(ctx)
	if err != nil {
		return false, err
	}
	if local.Format("15:04") != p.ReminderTime {
		return false, nil
	}

	today := local.Format(pregnancy.DateLayout)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastSent == today {
		return false, nil
	}

	_, err = s.logs.Get(ctx, today)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, dailylog.ErrNotFound):
		return false, err
	}

	r := Reminder{
		Date:    today,
		Time:    p.ReminderTime,
		Name:    p.Name,
		Message: "Time for your daily check-in",
	}
	if p.Name != "" {
		r.Message = fmt.Sprintf("Hi %s, time for your daily check-in", p.Name)
	}
	if err := s.notifier.Notify(ctx, r); err != nil {
		return false, fmt.Errorf("notify: %w", err)
	}
	s.lastSent = today
	return true, nil
}
