package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"audimew-storefront/internal/model"
)

// ErrNotFound is returned when a product, concert or schedule does not exist.
var ErrNotFound = errors.New("store: not found")

// Store defines the interface for all catalog database operations. Category
// filtering happens here and nowhere else.
type Store interface {
	Migrate(ctx context.Context) error
	ListProducts(ctx context.Context, req model.PageRequest) (model.PageResult[model.Product], error)
	ReadProduct(ctx context.Context, pno int64) (*model.ProductDetail, error)
	ListConcerts(ctx context.Context, req model.PageRequest) (model.PageResult[model.Concert], error)
	ReadConcert(ctx context.Context, cno int64) (*model.Concert, error)
	Schedule(ctx context.Context, cno int64, startTime time.Time) (*model.ConcertSchedule, error)
	UpsertProducts(ctx context.Context, products []Product) error
	UpsertConcerts(ctx context.Context, concerts []Concert) error
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB, log *zap.Logger) Store {
	return &gormStore{db: db, log: log}
}

// Migrate creates or updates the catalog tables.
func (s *gormStore) Migrate(ctx context.Context) error {
	s.log.Info("running database migrations")
	if err := s.db.WithContext(ctx).AutoMigrate(
		&Product{},
		&ProductImage{},
		&Review{},
		&Concert{},
		&ConcertSchedule{},
	); err != nil {
		return fmt.Errorf("automigrate failed: %w", err)
	}
	return nil
}

// byCategory narrows a query to one category unless it is the all-category.
func byCategory(category string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if category == "" || category == model.AllCategory {
			return db
		}
		return db.Where("category = ?", category)
	}
}

func offset(req model.PageRequest) int {
	return (req.Page - 1) * req.Size
}

// ListProducts returns one page of live products, newest first.
func (s *gormStore) ListProducts(ctx context.Context, req model.PageRequest) (model.PageResult[model.Product], error) {
	q := byCategory(req.Category)(s.db.WithContext(ctx).Model(&Product{})).
		Where("deleted = ?", false).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return model.PageResult[model.Product]{}, fmt.Errorf("failed to count products: %w", err)
	}

	var rows []Product
	if err := q.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("ord ASC")
	}).Order("pno DESC").Offset(offset(req)).Limit(req.Size).Find(&rows).Error; err != nil {
		return model.PageResult[model.Product]{}, fmt.Errorf("failed to list products: %w", err)
	}

	items := make([]model.Product, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toModel())
	}
	return NewPageResult(items, req, int(total)), nil
}

// ReadProduct returns a product with its review summary. Deleted products
// are returned too so the caller can tell them apart from missing ones.
func (s *gormStore) ReadProduct(ctx context.Context, pno int64) (*model.ProductDetail, error) {
	var row Product
	err := s.db.WithContext(ctx).Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("ord ASC")
	}).First(&row, pno).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read product %d: %w", pno, err)
	}

	var agg struct {
		ReviewCount int
		AvgRating   float64
	}
	if err := s.db.WithContext(ctx).Model(&Review{}).
		Select("COUNT(*) AS review_count, COALESCE(AVG(rating), 0) AS avg_rating").
		Where("pno = ?", pno).
		Scan(&agg).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews of product %d: %w", pno, err)
	}

	return &model.ProductDetail{
		ProductDTO:      row.toModel(),
		ReviewRatingDTO: model.ReviewRating{ReviewCount: agg.ReviewCount, AvgRating: agg.AvgRating},
	}, nil
}

// ListConcerts returns one page of concerts ordered by start time.
func (s *gormStore) ListConcerts(ctx context.Context, req model.PageRequest) (model.PageResult[model.Concert], error) {
	q := byCategory(req.Category)(s.db.WithContext(ctx).Model(&Concert{})).Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return model.PageResult[model.Concert]{}, fmt.Errorf("failed to count concerts: %w", err)
	}

	var rows []Concert
	if err := q.Order("start_time ASC").Order("cno ASC").Offset(offset(req)).Limit(req.Size).Find(&rows).Error; err != nil {
		return model.PageResult[model.Concert]{}, fmt.Errorf("failed to list concerts: %w", err)
	}

	items := make([]model.Concert, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.toModel())
	}
	return NewPageResult(items, req, int(total)), nil
}

// ReadConcert returns a single concert.
func (s *gormStore) ReadConcert(ctx context.Context, cno int64) (*model.Concert, error) {
	var row Concert
	err := s.db.WithContext(ctx).First(&row, cno).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read concert %d: %w", cno, err)
	}
	c := row.toModel()
	return &c, nil
}

// Schedule returns the performance of cno starting at startTime.
func (s *gormStore) Schedule(ctx context.Context, cno int64, startTime time.Time) (*model.ConcertSchedule, error) {
	var row ConcertSchedule
	err := s.db.WithContext(ctx).Where("cno = ? AND start_time = ?", cno, startTime).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule of concert %d: %w", cno, err)
	}
	sc := row.toModel()
	return &sc, nil
}

// UpsertProducts inserts or replaces products together with their images
// and reviews.
func (s *gormStore) UpsertProducts(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "pno"}},
			DoUpdates: clause.AssignmentColumns([]string{"pname", "price", "pdesc", "pstock", "category", "deleted", "updated_at"}),
		}).Omit(clause.Associations).Create(&products).Error; err != nil {
			return fmt.Errorf("batch upsert products failed: %w", err)
		}

		for _, p := range products {
			if err := tx.Where("pno = ?", p.Pno).Delete(&ProductImage{}).Error; err != nil {
				return fmt.Errorf("failed to clear images of product %d: %w", p.Pno, err)
			}
			if err := tx.Where("pno = ?", p.Pno).Delete(&Review{}).Error; err != nil {
				return fmt.Errorf("failed to clear reviews of product %d: %w", p.Pno, err)
			}
			for i := range p.Images {
				p.Images[i].ID = 0
				p.Images[i].Pno = p.Pno
			}
			for i := range p.Reviews {
				p.Reviews[i].ID = 0
				p.Reviews[i].Pno = p.Pno
			}
			if len(p.Images) > 0 {
				if err := tx.Create(&p.Images).Error; err != nil {
					return fmt.Errorf("failed to store images of product %d: %w", p.Pno, err)
				}
			}
			if len(p.Reviews) > 0 {
				if err := tx.Create(&p.Reviews).Error; err != nil {
					return fmt.Errorf("failed to store reviews of product %d: %w", p.Pno, err)
				}
			}
		}
		s.log.Info("products upserted", zap.Int("count", len(products)))
		return nil
	})
}

// UpsertConcerts inserts or replaces concerts together with their schedules.
func (s *gormStore) UpsertConcerts(ctx context.Context, concerts []Concert) error {
	if len(concerts) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cno"}},
			DoUpdates: clause.AssignmentColumns([]string{"cname", "cplace", "cprice", "category", "cdesc", "start_time", "end_time", "upload_file_name"}),
		}).Omit(clause.Associations).Create(&concerts).Error; err != nil {
			return fmt.Errorf("batch upsert concerts failed: %w", err)
		}

		for _, c := range concerts {
			if err := tx.Where("cno = ?", c.Cno).Delete(&ConcertSchedule{}).Error; err != nil {
				return fmt.Errorf("failed to clear schedules of concert %d: %w", c.Cno, err)
			}
			for i := range c.Schedules {
				c.Schedules[i].ID = 0
				c.Schedules[i].Cno = c.Cno
			}
			if len(c.Schedules) > 0 {
				if err := tx.Create(&c.Schedules).Error; err != nil {
					return fmt.Errorf("failed to store schedules of concert %d: %w", c.Cno, err)
				}
			}
		}
		s.log.Info("concerts upserted", zap.Int("count", len(concerts)))
		return nil
	})
}
