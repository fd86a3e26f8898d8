package jobs

import (
	"context"
	"time"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/store"

	"github.com/labstack/gommon/log"
)

// EventSweeper flips is_past on events whose date has gone by. The managed
// store keeps the flag current with a trigger, a local store relies on this.
type EventSweeper struct {
	store    store.Store
	interval time.Duration
	now      func() time.Time
}

func NewEventSweeper(s store.Store, interval time.Duration) *EventSweeper {
	return &EventSweeper{
		store:    s,
		interval: interval,
		now:      time.Now,
	}
}

func (e *EventSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	log.Info("Event sweeper cron started")
	e.Sweep(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("Stopping event sweeper...")
			return
		case <-ticker.C:
			e.Sweep(ctx)
		}
	}
}

// Sweep runs a single pass and returns how many events were marked past.
func (e *EventSweeper) Sweep(ctx context.Context) int {
	q := store.From(entity.TableEvents).Eq("is_past", false)
	rows, err := e.store.Select(ctx, q)
	if err != nil {
		log.Errorf("Sweeper: failed to fetch upcoming events: %v", err)
		return 0
	}

	now := e.now()
	swept := 0
	for _, row := range rows {
		id, _ := row["id"].(string)
		date, _ := row["date"].(string)
		if id == "" || !entity.EventIsPast(date, now) {
			continue
		}

		upd := store.From(entity.TableEvents).Eq("id", id)
		if _, err = e.store.Update(ctx, upd, store.Record{"is_past": true}); err != nil {
			log.Errorf("Sweeper: failed to mark event %s as past: %v", id, err)
			continue
		}
		swept++
	}

	if swept > 0 {
		log.Debugf("Sweeper: marked %d events as past", swept)
	}
	return swept
}
