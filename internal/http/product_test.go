package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductPageActionFollowsSelectedSize(t *testing.T) {
	ta := newTestApp(t)

	cases := []struct {
		query string
		want  []string
	}{
		{"", []string{"Select a size"}},
		{"?size=48", []string{"Add to bag", "Ships from La Scala", "Pre-owned from $3,900"}},
		{"?size=50", []string{"Add to bag", "Fulfilled by authorized partner"}},
		{"?size=52", []string{"Add to bag", "redirected to complete your purchase"}},
		{"?size=54", []string{"View 1 pre-owned"}},
		{"?size=46", []string{"Sold out"}},
		{"?size=99", []string{"Sold out"}},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			resp := ta.get(t, "/product/BC-FJ-001"+tc.query)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			html := body(t, resp)
			for _, w := range tc.want {
				assert.Contains(t, html, w)
			}
		})
	}
}

func TestProductPageSoldOutSizeIsNotSelectable(t *testing.T) {
	ta := newTestApp(t)

	html := body(t, ta.get(t, "/product/BC-FJ-001"))
	assert.NotContains(t, html, `?size=46"`)
	assert.Contains(t, html, `<span class="size size-unavailable" aria-disabled="true"`)
	assert.Contains(t, html, `?size=48"`)
}

func TestProductPageListsPreowned(t *testing.T) {
	ta := newTestApp(t)

	html := body(t, ta.get(t, "/product/BC-FJ-001"))
	assert.Contains(t, html, "Pre-owned (2)")
	assert.Contains(t, html, "Sold by Marco")
	assert.Contains(t, html, "$3,200")

	html = body(t, ta.get(t, "/product/BC-FJ-001?listings=48"))
	assert.Contains(t, html, "$3,900")
	assert.NotContains(t, html, "$3,200")
}

func TestProductUnknownSKU(t *testing.T) {
	ta := newTestApp(t)
	for _, path := range []string{"/product/NOPE-1", "/product/bad%20sku!", "/product"} {
		resp := ta.get(t, path)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
		assert.Contains(t, body(t, resp), "no longer available", path)
	}
}

type availability struct {
	SKU   string `json:"sku"`
	Sizes []struct {
		Size     string `json:"size"`
		Category string `json:"category"`
		Retail   *struct {
			InventoryID string `json:"inventory_id"`
			SourceType  string `json:"source_type"`
			Quantity    int    `json:"quantity"`
		} `json:"retail"`
		PreownedCount int      `json:"preowned_count"`
		PreownedFrom  *float64 `json:"preowned_from"`
	} `json:"sizes"`
}

func TestAPIAvailability(t *testing.T) {
	ta := newTestApp(t)
	resp := ta.get(t, "/api/v1/products/BC-FJ-001/availability")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got availability
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, "BC-FJ-001", got.SKU)
	require.Len(t, got.Sizes, 5)

	var sizes, cats []string
	for _, s := range got.Sizes {
		sizes = append(sizes, s.Size)
		cats = append(cats, s.Category)
	}
	assert.Equal(t, []string{"46", "48", "50", "52", "54"}, sizes)
	assert.Equal(t, []string{"unavailable", "retail_and_preowned", "retail", "retail", "preowned_only"}, cats)

	s48 := got.Sizes[1]
	require.NotNil(t, s48.Retail)
	assert.Equal(t, "owned", s48.Retail.SourceType)
	assert.Equal(t, 2, s48.Retail.Quantity)
	require.NotNil(t, s48.PreownedFrom)
	assert.Equal(t, 3900.0, *s48.PreownedFrom)

	assert.Nil(t, got.Sizes[4].Retail)
	assert.Equal(t, 1, got.Sizes[4].PreownedCount)
}

func TestAPIAction(t *testing.T) {
	ta := newTestApp(t)

	var a struct {
		Kind          string `json:"kind"`
		Size          string `json:"size"`
		PreownedCount int    `json:"preowned_count"`
		Disabled      bool   `json:"disabled"`
	}
	resp := ta.get(t, "/api/v1/products/BC-FJ-001/action")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&a))
	assert.Equal(t, "select_size", a.Kind)
	assert.True(t, a.Disabled)

	resp = ta.get(t, "/api/v1/products/BC-FJ-001/action?size=54")
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&a))
	assert.Equal(t, "view_preowned", a.Kind)
	assert.Equal(t, 1, a.PreownedCount)

	resp = ta.get(t, "/api/v1/products/NOPE-1/action?size=54")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestAPISearch(t *testing.T) {
	ta := newTestApp(t)
	var got struct {
		Results []struct {
			SKU string `json:"sku"`
		} `json:"results"`
	}
	resp := ta.get(t, "/api/v1/search?q=suit")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, got.Results, 1)
	assert.Equal(t, "KT-SUIT-004", got.Results[0].SKU)
}

func TestCollectionsAndSearchPages(t *testing.T) {
	ta := newTestApp(t)

	html := body(t, ta.get(t, "/collections?gender=W"))
	assert.Contains(t, html, "/product/LP-TRV-002")
	assert.NotContains(t, html, "/product/KT-SUIT-004")

	resp := ta.get(t, "/search?q=%3Cscript%3Ealert(1)%3C%2Fscript%3E")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotContains(t, body(t, resp), "<script>alert(1)</script>")

	html = body(t, ta.get(t, "/search?q=cashmere"))
	assert.Contains(t, html, "Cashmere Field Jacket")
}
