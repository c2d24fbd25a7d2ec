package service

import (
	"context"
	"sync"

	"github.com/jellydator/ttlcache/v3"
	"github.com/lightbnb/lightbnb/config"
	"github.com/lightbnb/lightbnb/data"
	"github.com/lightbnb/lightbnb/internal/jsonlog"
	"github.com/lightbnb/lightbnb/repository"
	"golang.org/x/time/rate"
)

type Service interface {
	users
	reservations
	properties
	Wait()
}

// Mailer delivers templated e-mails.
type Mailer interface {
	Send(recipient, templateFile string, data any) error
}

// PhotoStore persists photo bytes and returns their public URL.
type PhotoStore interface {
	Upload(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// ListingCache holds listing search results keyed by criteria and limit.
type ListingCache = ttlcache.Cache[string, []*data.Listing]

// NewListingCache creates a listing cache from the cache settings. Callers
// start and stop its expiry loop.
func NewListingCache(cfg config.Config) *ListingCache {
	return ttlcache.New(
		ttlcache.WithTTL[string, []*data.Listing](cfg.Cache.TTL),
		ttlcache.WithCapacity[string, []*data.Listing](cfg.Cache.Capacity),
	)
}

// service defines the service layer. mailer and photos are optional.
type service struct {
	config  config.Config
	wg      *sync.WaitGroup
	logger  *jsonlog.Logger
	repo    repository.Repository
	cache   *ListingCache
	mailer  Mailer
	photos  PhotoStore
	limiter *rate.Limiter
}

// New creates a new instance of Service. A nil mailer disables welcome e-mails
// and a nil photo store disables photo uploads.
func New(cfg config.Config, wg *sync.WaitGroup, logger *jsonlog.Logger, repo repository.Repository, cache *ListingCache, mailer Mailer, photos PhotoStore) *service {
	return &service{
		config:  cfg,
		wg:      wg,
		logger:  logger,
		repo:    repo,
		cache:   cache,
		mailer:  mailer,
		photos:  photos,
		limiter: rate.NewLimiter(rate.Limit(cfg.Import.RPS), cfg.Import.Burst),
	}
}

// Wait blocks until background tasks have completed.
func (s *service) Wait() {
	s.wg.Wait()
}
