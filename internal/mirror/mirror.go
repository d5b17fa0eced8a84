package mirror

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"audimew-storefront/config"
	"audimew-storefront/internal/format"
	"audimew-storefront/internal/model"
	"audimew-storefront/internal/store"
)

// Source is the part of the storefront API a mirror reads from.
// *remote.Client satisfies it.
type Source interface {
	ListProducts(ctx context.Context, req model.PageRequest) (model.PageResult[model.Product], error)
	ListConcerts(ctx context.Context, req model.PageRequest) (model.PageResult[model.Concert], error)
}

// Service copies a live storefront catalog into the local store.
type Service struct {
	cfg   config.MirrorConfig
	src   Source
	store store.Store
	log   *zap.Logger
}

// Stats reports how many rows one sync wrote.
type Stats struct {
	Products int
	Concerts int
	Skipped  int
}

// NewService creates and initializes a new mirror service.
func NewService(cfg config.MirrorConfig, src Source, st store.Store, log *zap.Logger) *Service {
	return &Service{cfg: cfg, src: src, store: st, log: log}
}

// Run syncs once and then on every interval until ctx is cancelled.
func (s *Service) Run(ctx context.Context) {
	s.log.Info("starting mirror service", zap.String("source", s.cfg.SourceURL), zap.Duration("interval", s.cfg.Interval))

	s.runOnce(ctx)

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("mirror service shutting down")
			return
		case <-timer.C:
			s.runOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	stats, err := s.SyncOnce(ctx)
	if err != nil {
		s.log.Warn("mirror cycle finished with errors",
			zap.Int("products", stats.Products), zap.Int("concerts", stats.Concerts), zap.Error(err))
		return
	}
	s.log.Info("mirror cycle finished",
		zap.Int("products", stats.Products), zap.Int("concerts", stats.Concerts), zap.Int("skipped", stats.Skipped))
}

// SyncOnce fetches every page of both verticals and upserts what it got.
// A vertical whose fetch failed without yielding any item is left untouched.
func (s *Service) SyncOnce(ctx context.Context) (Stats, error) {
	var (
		stats Stats
		errs  []error
	)

	products, err := fetchAll(ctx, s.src.ListProducts, s.cfg.PageSize, s.cfg.Workers, s.cfg.MaxPages)
	if err != nil {
		errs = append(errs, fmt.Errorf("products: %w", err))
	}
	if len(products) > 0 {
		rows := make([]store.Product, 0, len(products))
		for _, p := range products {
			row, err := toProduct(p)
			if err != nil {
				s.log.Warn("skipping product", zap.Int64("pno", p.Pno), zap.Error(err))
				stats.Skipped++
				continue
			}
			rows = append(rows, row)
		}
		if err := s.store.UpsertProducts(ctx, rows); err != nil {
			errs = append(errs, err)
		} else {
			stats.Products = len(rows)
		}
	}

	concerts, err := fetchAll(ctx, s.src.ListConcerts, s.cfg.PageSize, s.cfg.Workers, s.cfg.MaxPages)
	if err != nil {
		errs = append(errs, fmt.Errorf("concerts: %w", err))
	}
	if len(concerts) > 0 {
		rows := make([]store.Concert, 0, len(concerts))
		for _, c := range concerts {
			row, err := toConcert(c)
			if err != nil {
				s.log.Warn("skipping concert", zap.Int64("cno", c.Cno), zap.Error(err))
				stats.Skipped++
				continue
			}
			rows = append(rows, row)
		}
		if err := s.store.UpsertConcerts(ctx, rows); err != nil {
			errs = append(errs, err)
		} else {
			stats.Concerts = len(rows)
		}
	}

	return stats, errors.Join(errs...)
}

// toProduct converts a listed product into a row. Mirrored products carry no
// reviews.
func toProduct(p model.Product) (store.Product, error) {
	price, err := format.PriceDigits(string(p.Price))
	if err != nil {
		return store.Product{}, err
	}
	images := make([]store.ProductImage, 0, len(p.UploadFileNames))
	for i, name := range p.UploadFileNames {
		if name == "" {
			continue
		}
		images = append(images, store.ProductImage{FileName: name, Ord: i})
	}
	return store.Product{
		Pno:      p.Pno,
		Pname:    p.Pname,
		Price:    price,
		Pdesc:    p.Pdesc,
		Pstock:   p.Pstock,
		Category: p.Category,
		Deleted:  p.Deleted,
		Images:   images,
	}, nil
}

// toConcert converts a listed concert into a row. Schedules are only
// reachable one slot at a time upstream, so none are mirrored.
func toConcert(c model.Concert) (store.Concert, error) {
	price, err := format.PriceDigits(string(c.Cprice))
	if err != nil {
		return store.Concert{}, err
	}
	start, err := parseTime(c.StartTime)
	if err != nil {
		return store.Concert{}, err
	}
	end, err := parseTime(c.EndTime)
	if err != nil {
		return store.Concert{}, err
	}
	return store.Concert{
		Cno:            c.Cno,
		Cname:          c.Cname,
		Cplace:         c.Cplace,
		Cprice:         price,
		Category:       c.Category,
		Cdesc:          c.Cdesc,
		StartTime:      start,
		EndTime:        end,
		UploadFileName: c.UploadFileName,
	}, nil
}

var timeLayouts = []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02 15:04:05"}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("failed to parse timestamp %q", s)
}
