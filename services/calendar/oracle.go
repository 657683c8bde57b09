package calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	unavailableRepo "revamp/database/repository/unavailable"
	"revamp/models"
	"revamp/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Oracle answers whether a calendar date can take appointments.
type Oracle interface {
	IsUnavailable(ctx context.Context, date string) (bool, error)
	IsWeeklyClosure(date string) bool
	IsClosed(ctx context.Context, date string) (bool, error)
	Add(ctx context.Context, req models.UnavailableDateRequest) (*models.UnavailableDate, error)
	Remove(ctx context.Context, id string) error
	List(ctx context.Context, from, to string) ([]models.UnavailableDate, error)
}

// DefaultOracle reads unavailable dates from Mongo through a Redis cache.
// Cache is optional; a Redis failure falls back to the store and is never surfaced.
type DefaultOracle struct {
	Repo     unavailableRepo.UnavailableDateRepository
	Cache    *redis.Client
	TTL      time.Duration
	Schedule Schedule
	Logger   *zap.Logger

	group singleflight.Group
	mu    sync.Mutex
	// gen counts invalidations per date; a load that spans one must not write the cache.
	gen map[string]uint64
}

// loadTimeout bounds a shared store read. It is detached from the first caller's context
// so one caller giving up does not fail everyone waiting on the same load.
const loadTimeout = 5 * time.Second

func cacheKey(date string) string {
	return utils.CalendarCachePrefix + date
}

func (o *DefaultOracle) IsUnavailable(ctx context.Context, date string) (bool, error) {
	if _, err := ParseDate(date); err != nil {
		return false, ErrInvalidDate
	}
	logger := utils.LoggerOr(o.Logger)

	if o.Cache != nil {
		val, err := o.Cache.Get(ctx, cacheKey(date)).Result()
		switch {
		case err == nil:
			return val == "1", nil
		case errors.Is(err, redis.Nil):
		default:
			logger.Warn("calendar cache read failed", zap.String("date", date), zap.Error(err))
		}
	}

	v, err, _ := o.group.Do(date, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		gen := o.generation(date)
		blocked, err := o.Repo.Exists(loadCtx, date)
		if err != nil {
			return false, err
		}
		if o.Cache != nil {
			o.fill(loadCtx, logger, date, gen, blocked)
		}
		return blocked, nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to check availability of %s: %w", date, err)
	}
	return v.(bool), nil
}

func (o *DefaultOracle) IsWeeklyClosure(date string) bool {
	d, err := ParseDate(date)
	if err != nil {
		return false
	}
	return o.Schedule.IsWeeklyClosure(d)
}

func (o *DefaultOracle) IsClosed(ctx context.Context, date string) (bool, error) {
	if o.IsWeeklyClosure(date) {
		return true, nil
	}
	return o.IsUnavailable(ctx, date)
}

func (o *DefaultOracle) Add(ctx context.Context, req models.UnavailableDateRequest) (*models.UnavailableDate, error) {
	if _, err := ParseDate(req.Date); err != nil {
		return nil, ErrInvalidDate
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}
	out, err := o.Repo.Upsert(ctx, req.Date, req.Reason, req.Description)
	if err != nil {
		return nil, err
	}
	o.invalidate(ctx, req.Date)
	utils.LoggerOr(o.Logger).Info("date marked unavailable", zap.String("date", req.Date), zap.String("reason", req.Reason))
	return out, nil
}

func (o *DefaultOracle) Remove(ctx context.Context, id string) error {
	removed, err := o.Repo.DeleteByID(ctx, id)
	if errors.Is(err, unavailableRepo.ErrUnavailableDateNotFound) {
		return ErrUnavailableDateNotFound
	}
	if err != nil {
		return err
	}
	o.invalidate(ctx, removed.Date)
	return nil
}

func (o *DefaultOracle) List(ctx context.Context, from, to string) ([]models.UnavailableDate, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := ParseDate(d); err != nil {
			return nil, ErrInvalidDate
		}
	}
	return o.Repo.ListRange(ctx, from, to)
}

// fill caches a loaded flag unless the date was invalidated while it loaded.
// The check and the write share o.mu with invalidate's bump, so the Del always lands last.
func (o *DefaultOracle) fill(ctx context.Context, logger *zap.Logger, date string, gen uint64, blocked bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.gen[date] != gen {
		logger.Debug("calendar changed during load, not caching", zap.String("date", date))
		return
	}
	flag := "0"
	if blocked {
		flag = "1"
	}
	if err := o.Cache.Set(ctx, cacheKey(date), flag, o.TTL).Err(); err != nil {
		logger.Warn("calendar cache write failed", zap.String("date", date), zap.Error(err))
	}
}

func (o *DefaultOracle) generation(date string) uint64 {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gen[date]
}

func (o *DefaultOracle) invalidate(ctx context.Context, date string) {
	o.mu.Lock()
	if o.gen == nil {
		o.gen = map[string]uint64{}
	}
	o.gen[date]++
	o.mu.Unlock()
	// Callers arriving from now on start a fresh load instead of joining one that read the old state.
	o.group.Forget(date)

	if o.Cache == nil {
		return
	}
	if err := o.Cache.Del(ctx, cacheKey(date)).Err(); err != nil {
		utils.LoggerOr(o.Logger).Warn("calendar cache invalidation failed", zap.String("date", date), zap.Error(err))
	}
}
