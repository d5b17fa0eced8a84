package model

import (
	"bytes"
	"encoding/json"
)

// Amount is a display price. The backend sends it either as a JSON string
// ("129,000원") or as a bare number.
type Amount string

// UnmarshalJSON accepts both string and numeric prices.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// Product is a single catalog item as listed by the backend.
type Product struct {
	Pno             int64    `json:"pno" validate:"gt=0"`
	Pname           string   `json:"pname" validate:"required"`
	Price           Amount   `json:"price"`
	Pdesc           string   `json:"pdesc"`
	Pstock          int      `json:"pstock"`
	Category        string   `json:"category"`
	UploadFileNames []string `json:"uploadFileNames"`
	Deleted         bool     `json:"deleted"`
}

// ReviewRating summarizes the reviews of a product.
type ReviewRating struct {
	ReviewCount int     `json:"reviewcount" validate:"gte=0"`
	AvgRating   float64 `json:"avgrating" validate:"gte=0,lte=5"`
}

// ProductDetail is the payload of the product read endpoint.
type ProductDetail struct {
	ProductDTO      Product      `json:"productDTO"`
	ReviewRatingDTO ReviewRating `json:"reviewRatingDTO"`
}
