package store

import (
	"time"

	"audimew-storefront/internal/format"
	"audimew-storefront/internal/model"
)

// Product is a catalog row.
type Product struct {
	Pno       int64  `gorm:"primaryKey"`
	Pname     string `gorm:"size:256;not null"`
	Price     int64  `gorm:"not null"`
	Pdesc     string `gorm:"type:text"`
	Pstock    int    `gorm:"not null;default:0"`
	Category  string `gorm:"size:32;index;not null"`
	Deleted   bool   `gorm:"index;not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// Associations
	Images  []ProductImage `gorm:"foreignKey:Pno;constraint:OnDelete:CASCADE"`
	Reviews []Review       `gorm:"foreignKey:Pno;constraint:OnDelete:CASCADE"`
}

// ProductImage is one uploaded image of a product. Ord 0 is the cover.
type ProductImage struct {
	ID       int64  `gorm:"primaryKey"`
	Pno      int64  `gorm:"index;not null"`
	FileName string `gorm:"size:256;not null"`
	Ord      int    `gorm:"not null;default:0"`
}

// Review is a rating left on a product.
type Review struct {
	ID     int64   `gorm:"primaryKey"`
	Pno    int64   `gorm:"index;not null"`
	UserID string  `gorm:"size:64;not null"`
	Rating float64 `gorm:"not null"`
	Text   string  `gorm:"type:text"`
}

// Concert is an event row.
type Concert struct {
	Cno            int64  `gorm:"primaryKey"`
	Cname          string `gorm:"size:256;not null"`
	Cplace         string `gorm:"size:256"`
	Cprice         int64  `gorm:"not null"`
	Category       string `gorm:"size:32;index;not null"`
	Cdesc          string `gorm:"type:text"`
	StartTime      time.Time
	EndTime        time.Time
	UploadFileName *string `gorm:"size:256"`

	// Associations
	Schedules []ConcertSchedule `gorm:"foreignKey:Cno;constraint:OnDelete:CASCADE"`
}

// ConcertSchedule is one performance slot with its seat count.
type ConcertSchedule struct {
	ID        int64     `gorm:"primaryKey"`
	Cno       int64     `gorm:"uniqueIndex:idx_schedule_slot;not null"`
	StartTime time.Time `gorm:"uniqueIndex:idx_schedule_slot;not null"`
	Seats     int       `gorm:"not null"`
	Remaining int       `gorm:"not null"`
}

// timeLayout is how the storefront API writes concert times.
const timeLayout = "2006-01-02T15:04:05"

func (p Product) toModel() model.Product {
	names := make([]string, 0, len(p.Images))
	for _, img := range p.Images {
		names = append(names, img.FileName)
	}
	return model.Product{
		Pno:             p.Pno,
		Pname:           p.Pname,
		Price:           model.Amount(format.Won(p.Price)),
		Pdesc:           p.Pdesc,
		Pstock:          p.Pstock,
		Category:        p.Category,
		UploadFileNames: names,
		Deleted:         p.Deleted,
	}
}

func (c Concert) toModel() model.Concert {
	return model.Concert{
		Cno:            c.Cno,
		Cname:          c.Cname,
		Cplace:         c.Cplace,
		Cprice:         model.Amount(format.Won(c.Cprice)),
		Category:       c.Category,
		Cdesc:          c.Cdesc,
		StartTime:      c.StartTime.Format(timeLayout),
		EndTime:        c.EndTime.Format(timeLayout),
		UploadFileName: c.UploadFileName,
	}
}

func (s ConcertSchedule) toModel() model.ConcertSchedule {
	return model.ConcertSchedule{
		Cno:       s.Cno,
		StartTime: s.StartTime.Format(timeLayout),
		Seats:     s.Seats,
		Remaining: s.Remaining,
	}
}
