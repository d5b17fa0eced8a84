package store

import (
	"context"
	"fmt"
	"time"
)

var productCategories = []string{"헤드셋", "이어폰", "스피커", "앰프"}

var concertCategories = []string{"뮤지컬", "연극", "클래식", "콘서트"}

// SeedProducts returns n demo products spread over the catalog categories.
// Every seventh product is sold out and every eleventh is deleted.
func SeedProducts(n int) []Product {
	products := make([]Product, 0, n)
	for i := 1; i <= n; i++ {
		category := productCategories[(i-1)%len(productCategories)]
		p := Product{
			Pno:      int64(i),
			Pname:    fmt.Sprintf("%s %03d", category, i),
			Price:    int64(50000 + i*1000),
			Pdesc:    fmt.Sprintf("%s 데모 상품입니다.", category),
			Pstock:   10,
			Category: category,
			Images:   []ProductImage{{FileName: fmt.Sprintf("product_%03d.jpg", i)}},
			Reviews: []Review{
				{UserID: "demo", Rating: float64(i%5 + 1)},
				{UserID: "guest", Rating: 4.5},
			},
		}
		if i%7 == 0 {
			p.Pstock = 0
		}
		if i%11 == 0 {
			p.Deleted = true
		}
		products = append(products, p)
	}
	return products
}

// SeedConcerts returns n demo concerts with two performances each.
func SeedConcerts(n int, from time.Time) []Concert {
	from = from.UTC().Truncate(time.Hour)
	concerts := make([]Concert, 0, n)
	for i := 1; i <= n; i++ {
		category := concertCategories[(i-1)%len(concertCategories)]
		start := from.Add(time.Duration(i) * 24 * time.Hour)
		poster := fmt.Sprintf("concert_%03d.jpg", i)
		concerts = append(concerts, Concert{
			Cno:            int64(i),
			Cname:          fmt.Sprintf("%s %03d", category, i),
			Cplace:         "예술의전당",
			Cprice:         int64(70000 + i*500),
			Category:       category,
			Cdesc:          fmt.Sprintf("%s 데모 공연입니다.", category),
			StartTime:      start,
			EndTime:        start.Add(7 * 24 * time.Hour),
			UploadFileName: &poster,
			Schedules: []ConcertSchedule{
				{StartTime: start, Seats: 100, Remaining: 100 - i%100},
				{StartTime: start.Add(24 * time.Hour), Seats: 100, Remaining: 0},
			},
		})
	}
	return concerts
}

// Seed loads the demo catalog.
func Seed(ctx context.Context, s Store, now time.Time) error {
	if err := s.UpsertProducts(ctx, SeedProducts(40)); err != nil {
		return err
	}
	return s.UpsertConcerts(ctx, SeedConcerts(24, now))
}
