package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageRequest_Query(t *testing.T) {
	testCases := []struct {
		name       string
		req        PageRequest
		wantQuery  string
		wantFilter string
	}{
		{
			name:       "All category is not repeated in the query",
			req:        PageRequest{Page: 1, Size: 12, Category: AllCategory},
			wantQuery:  "page=1&size=12",
			wantFilter: "page=1&size=12",
		},
		{
			name:       "Specific category is repeated in the filter query",
			req:        PageRequest{Page: 2, Size: 10, Category: "뮤지컬"},
			wantQuery:  "page=2&size=10",
			wantFilter: "category=%EB%AE%A4%EC%A7%80%EC%BB%AC&page=2&size=10",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantQuery, tc.req.Query().Encode())
			assert.Equal(t, tc.wantFilter, tc.req.FilterQuery().Encode())
		})
	}
}

func TestPageResult_NormalizeUsesRequestPage(t *testing.T) {
	var page PageResult[Product]
	body := `{"dtoList":null,"pageRequestDTO":{"page":3,"size":12},"totalCount":30,"totalPage":3}`
	require.NoError(t, json.Unmarshal([]byte(body), &page))

	page.Normalize()

	assert.Equal(t, 3, page.Current)
	assert.NotNil(t, page.DTOList)
	assert.NotNil(t, page.PageNumList)
}

func TestAmount_AcceptsStringsAndNumbers(t *testing.T) {
	var products []Product
	body := `[{"pno":1,"pname":"A","price":"129,000원"},{"pno":2,"pname":"B","price":59000},{"pno":3,"pname":"C","price":null}]`
	require.NoError(t, json.Unmarshal([]byte(body), &products))

	assert.Equal(t, Amount("129,000원"), products[0].Price)
	assert.Equal(t, Amount("59000"), products[1].Price)
	assert.Equal(t, Amount(""), products[2].Price)
}
