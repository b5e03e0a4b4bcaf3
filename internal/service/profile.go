package service

import (
	"context"

	"github.com/ivanpodgorny/clubhost/internal/entity"
)

// Profile держит локальные снимки профиля и сводки подписки. Снимки
// обновляются из биллинга на конвейере успешной оплаты и читаются
// веб-клиентом из кеша без похода в сеть.
type Profile struct {
	billing ProfileBilling
	cache   SnapshotCache
}

type ProfileBilling interface {
	GetProfile(ctx context.Context) (entity.Profile, error)
	GetSummary(ctx context.Context) (entity.Summary, error)
}

type SnapshotCache interface {
	Set(key string, v any) error
	Get(key string, v any) error
}

const (
	profileCacheKey = "snapshot/profile"
	summaryCacheKey = "snapshot/summary"
)

func NewProfile(b ProfileBilling, c SnapshotCache) *Profile {
	return &Profile{
		billing: b,
		cache:   c,
	}
}

// Resync запрашивает актуальный профиль и замещает локальный снимок целиком.
func (p *Profile) Resync(ctx context.Context) error {
	profile, err := p.billing.GetProfile(ctx)
	if err != nil {
		return err
	}

	return p.cache.Set(profileCacheKey, profile)
}

// Reload запрашивает актуальную сводку подписки и замещает локальный снимок.
func (p *Profile) Reload(ctx context.Context) error {
	summary, err := p.billing.GetSummary(ctx)
	if err != nil {
		return err
	}

	return p.cache.Set(summaryCacheKey, summary)
}

// Snapshot возвращает последний сохраненный снимок профиля.
func (p *Profile) Snapshot() (entity.Profile, error) {
	profile := entity.Profile{}
	err := p.cache.Get(profileCacheKey, &profile)

	return profile, err
}

// Summary возвращает последнюю сохраненную сводку подписки.
func (p *Profile) Summary() (entity.Summary, error) {
	summary := entity.Summary{}
	err := p.cache.Get(summaryCacheKey, &summary)

	return summary, err
}
