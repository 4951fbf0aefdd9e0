package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"minutes-tracker/internal/metrics"
	"minutes-tracker/internal/models"
	"minutes-tracker/internal/repo"
)

// Run starts the daily cap digest: at each cron tick it lists the users whose
// minutes for the current date exceed their cap, logs each one and updates
// the users_over_cap gauge. The returned cron can be stopped on shutdown.
func Run(users *repo.UserRepo, cronExpr string) (*cron.Cron, error) {
	c := cron.New()

	_, err := c.AddFunc(cronExpr, func() { digest(users) })
	if err != nil {
		return nil, err
	}

	c.Start()
	slog.Info("cap digest scheduled", "cron", cronExpr)
	return c, nil
}

func digest(users *repo.UserRepo) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	over, err := users.ListOverCap(ctx, models.Today())
	if err != nil {
		slog.Error("cap digest failed", "error", err)
		return
	}

	for _, u := range over {
		slog.Warn("user over daily minute cap",
			"username", u.Username,
			"minutes", u.Minutes,
			"cap", u.Cap)
	}
	metrics.SetUsersOverCap(len(over))
}
