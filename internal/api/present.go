package api

import (
	"audimew-storefront/internal/format"
	"audimew-storefront/internal/listing"
	"audimew-storefront/internal/model"
	"audimew-storefront/internal/pager"
	"audimew-storefront/internal/remote"
)

// ProductCard is one tile of the product grid.
type ProductCard struct {
	Pno       int64  `json:"pno"`
	Pname     string `json:"pname"`
	Price     string `json:"price"`
	Category  string `json:"category"`
	Thumbnail string `json:"thumbnail"`
	SoldOut   bool   `json:"soldOut"`
}

// ConcertCard is one row of the concert list.
type ConcertCard struct {
	Cno       int64  `json:"cno"`
	Cname     string `json:"cname"`
	Cplace    string `json:"cplace"`
	Cprice    string `json:"cprice"`
	Category  string `json:"category"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Image     string `json:"image"`
}

// ListResponse is a list view ready to render.
type ListResponse[C any] struct {
	SelectedCategory string         `json:"selectedCategory"`
	CurrentPage      int            `json:"currentPage"`
	Categories       []string       `json:"categories"`
	Items            []C            `json:"items"`
	TotalCount       int            `json:"totalCount"`
	TotalPage        int            `json:"totalPage"`
	Pager            pager.Controls `json:"pager"`
	Empty            bool           `json:"empty"`
	EmptyMessage     string         `json:"emptyMessage,omitempty"`
	ScrollTop        bool           `json:"scrollTop"`
	Superseded       bool           `json:"superseded,omitempty"`
}

func presentList[T, C any](snap listing.Snapshot[T], card func(T) C) ListResponse[C] {
	items := make([]C, 0, len(snap.Result.DTOList))
	for _, item := range snap.Result.DTOList {
		items = append(items, card(item))
	}
	return ListResponse[C]{
		SelectedCategory: snap.SelectedCategory,
		CurrentPage:      snap.CurrentPage,
		Categories:       snap.Categories,
		Items:            items,
		TotalCount:       snap.Result.TotalCount,
		TotalPage:        snap.Result.TotalPage,
		Pager:            snap.Pager,
		Empty:            snap.Empty,
		EmptyMessage:     snap.EmptyMessage,
		ScrollTop:        snap.ScrollTop,
		Superseded:       snap.Superseded,
	}
}

func productCard(client *remote.Client) func(model.Product) ProductCard {
	return func(p model.Product) ProductCard {
		return ProductCard{
			Pno:       p.Pno,
			Pname:     p.Pname,
			Price:     string(p.Price),
			Category:  p.Category,
			Thumbnail: client.ProductThumbnailURL(p),
			SoldOut:   p.Pstock <= 0,
		}
	}
}

func concertCard(client *remote.Client) func(model.Concert) ConcertCard {
	return func(cn model.Concert) ConcertCard {
		return ConcertCard{
			Cno:       cn.Cno,
			Cname:     cn.Cname,
			Cplace:    cn.Cplace,
			Cprice:    string(cn.Cprice),
			Category:  cn.Category,
			StartTime: cn.StartTime,
			EndTime:   cn.EndTime,
			Image:     client.ConcertImageURL(cn),
		}
	}
}

// ProductDetailResponse is the product detail page.
type ProductDetailResponse struct {
	Product     model.Product      `json:"product"`
	Rating      model.ReviewRating `json:"rating"`
	Image       string             `json:"image"`
	UnitPrice   int64              `json:"unitPrice,omitempty"`
	PriceLabel  string             `json:"priceLabel"`
	MinQuantity int                `json:"minQuantity"`
}

func presentProduct(client *remote.Client, d model.ProductDetail) ProductDetailResponse {
	resp := ProductDetailResponse{
		Product:     d.ProductDTO,
		Rating:      d.ReviewRatingDTO,
		Image:       client.ProductImageURL(d.ProductDTO),
		PriceLabel:  string(d.ProductDTO.Price),
		MinQuantity: 1,
	}
	if n, err := format.PriceDigits(string(d.ProductDTO.Price)); err == nil {
		resp.UnitPrice = n
		resp.PriceLabel = format.Won(n)
	}
	return resp
}
