// Package shoprank embeds the product discovery engine — free-text
// search, content-based similarity, personalized and popularity
// recommendations — into a host application, backed by Redis.
package shoprank

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/shoprank/internal/db"
	dbRedis "github.com/kailas-cloud/shoprank/internal/db/redis"
	behaviorrepo "github.com/kailas-cloud/shoprank/internal/repository/behavior"
	productrepo "github.com/kailas-cloud/shoprank/internal/repository/product"
	activityuc "github.com/kailas-cloud/shoprank/internal/usecase/activity"
	cataloguc "github.com/kailas-cloud/shoprank/internal/usecase/catalog"
	recommenduc "github.com/kailas-cloud/shoprank/internal/usecase/recommend"
	searchuc "github.com/kailas-cloud/shoprank/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	addrs            []string
	password         string
	keyPrefix        string
	priceCeiling     int
	readinessTimeout time.Duration
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	}
}

// WithKeyPrefix namespaces all stored keys. Default: "shoprank:".
func WithKeyPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.keyPrefix = prefix
	}
}

// WithPriceCeiling sets the price normalization ceiling for text-search
// scoring, in minor currency units. Default: 300000.
func WithPriceCeiling(ceiling int) Option {
	return func(c *clientConfig) {
		c.priceCeiling = ceiling
	}
}

// WithReadinessTimeout bounds the initial database readiness wait.
func WithReadinessTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		c.readinessTimeout = d
	}
}

// Client is the shoprank SDK entry point.
type Client struct {
	store        db.Store
	catalogSvc   *cataloguc.Service
	searchSvc    *searchuc.Service
	recommendSvc *recommenduc.Service
	activitySvc  *activityuc.Service
}

// New creates a shoprank Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{readinessTimeout: defaultReadinessTimeout}
	for _, o := range opts {
		o(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("shoprank: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Password: cfg.password,
	})
	if err != nil {
		return nil, fmt.Errorf("shoprank: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("shoprank: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	products := productrepo.New(store, cfg.keyPrefix)
	behaviors := behaviorrepo.New(store, cfg.keyPrefix)

	searchSvc := searchuc.New(products)
	if cfg.priceCeiling > 0 {
		searchSvc = searchSvc.WithPriceCeiling(cfg.priceCeiling)
	}

	return &Client{
		store:        store,
		catalogSvc:   cataloguc.New(products),
		searchSvc:    searchSvc,
		recommendSvc: recommenduc.New(products, behaviors),
		activitySvc:  activityuc.New(behaviors),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a natural-language product search ("wireless headphones
// under 100") and returns ranked matches.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Product, error) {
	products, err := c.searchSvc.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return productsFromDomain(products), nil
}

// SimilarTo returns products most similar to the given one, best first.
func (c *Client) SimilarTo(ctx context.Context, productID string, limit int) ([]Product, error) {
	products, err := c.recommendSvc.SimilarTo(ctx, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("similar to %s: %w", productID, err)
	}
	return productsFromDomain(products), nil
}

// RecommendFor returns personalized recommendations for a user, falling
// back to popularity ranking when no history exists.
func (c *Client) RecommendFor(ctx context.Context, userID string, limit int) ([]Product, error) {
	products, err := c.recommendSvc.RecommendFor(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("recommend for %s: %w", userID, err)
	}
	return productsFromDomain(products), nil
}

// Popular returns the most purchased products over the trailing window.
func (c *Client) Popular(ctx context.Context, limit int) ([]Product, error) {
	products, err := c.recommendSvc.Popular(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("popular: %w", err)
	}
	return productsFromDomain(products), nil
}

// Track records a user interaction (ActionView, ActionAddToCart,
// ActionPurchase) and returns the generated event id.
func (c *Client) Track(ctx context.Context, userID, productID, action string) (string, error) {
	e, err := c.activitySvc.Track(ctx, userID, productID, action)
	if err != nil {
		return "", fmt.Errorf("track: %w", err)
	}
	return e.ID(), nil
}

// Products returns the catalog management service.
func (c *Client) Products() *ProductService {
	return &ProductService{svc: c.catalogSvc}
}

// ProductService manages the product catalog.
type ProductService struct {
	svc *cataloguc.Service
}

// Upsert creates or replaces a product. Returns true if created.
func (s *ProductService) Upsert(ctx context.Context, in ProductInput) (Product, bool, error) {
	p, created, err := s.svc.Upsert(ctx, cataloguc.Input{
		ID:          in.ID,
		Slug:        in.Slug,
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		Tags:        in.Tags,
		Stock:       in.Stock,
		Rating:      in.Rating,
	})
	if err != nil {
		return Product{}, false, fmt.Errorf("upsert product: %w", err)
	}
	return productFromDomain(&p), created, nil
}

// Get retrieves a product by id.
func (s *ProductService) Get(ctx context.Context, id string) (Product, error) {
	p, err := s.svc.Get(ctx, id)
	if err != nil {
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return productFromDomain(&p), nil
}

// GetBySlug retrieves a product by its URL handle.
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (Product, error) {
	p, err := s.svc.GetBySlug(ctx, slug)
	if err != nil {
		return Product{}, fmt.Errorf("get product by slug: %w", err)
	}
	return productFromDomain(&p), nil
}

// List returns one page of the filtered catalog.
func (s *ProductService) List(ctx context.Context, f ProductFilter, offset, limit int) (ProductPage, error) {
	page, err := s.svc.List(ctx, f.toDomain(), offset, limit)
	if err != nil {
		return ProductPage{}, fmt.Errorf("list products: %w", err)
	}
	return ProductPage{
		Products: productsFromDomain(page.Products),
		Total:    page.Total,
		Offset:   page.Offset,
	}, nil
}

// Delete removes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}
