package entity_test

import (
	"encoding/json"
	"net/url"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/impilo-stock/internal/domain/entity"
)

func TestClassifyStock(t *testing.T) {
	cases := []struct {
		qty, min, reorder int
		want              entity.StockStatus
	}{
		{0, 0, 0, entity.StatusCritical},
		{5, 10, 20, entity.StatusCritical},
		{10, 10, 20, entity.StatusCritical},
		{15, 10, 20, entity.StatusWarning},
		{20, 10, 20, entity.StatusWarning},
		{50, 10, 20, entity.StatusNormal},
		{60, 10, 20, entity.StatusNormal},
		{61, 10, 20, entity.StatusExcess},
		{500, 0, 0, entity.StatusNormal},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, entity.ClassifyStock(c.qty, c.min, c.reorder), "qty=%d min=%d reorder=%d", c.qty, c.min, c.reorder)
	}
}

func TestFacilityStock_StatusSinUmbrales(t *testing.T) {
	assert.Equal(t, entity.StatusNormal, entity.FacilityStock{StockLevel: 3}.Status())
	min, reorder := 5, 10
	assert.Equal(t, entity.StatusWarning, entity.FacilityStock{StockLevel: 8, MinLevel: &min, ReOrderLevel: &reorder}.Status())
}

func TestPageable_EncodeQuery(t *testing.T) {
	v := url.Values{}
	entity.Pageable{Page: 2, Size: 20, Sort: []string{"name,asc", "id,desc"}}.EncodeQuery(v)
	assert.Equal(t, "page=2&size=20&sort=name%2Casc&sort=id%2Cdesc", v.Encode())
}

func TestDate_JSON(t *testing.T) {
	var b entity.StockBatch
	require.NoError(t, json.Unmarshal([]byte(`{"batchNumber":"B-1","expiryDate":"2027-03-31","manufacturingDate":null,"initialQuantity":10,"currentQuantity":4}`), &b))
	require.NotNil(t, b.ExpiryDate)
	assert.Equal(t, "2027-03-31", b.ExpiryDate.String())
	assert.Nil(t, b.ManufacturingDate)

	d, err := entity.ParseDate("2027-03-31T10:15:00Z")
	require.NoError(t, err)
	assert.Equal(t, entity.NewDate(2027, time.March, 31), d)

	out, err := json.Marshal(struct {
		D entity.Date `json:"d"`
	}{D: d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2027-03-31"}`, string(out))

	_, err = entity.ParseDate("31/03/2027")
	assert.Error(t, err)
}

func TestDate_DaysUntil(t *testing.T) {
	now := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, 7, entity.NewDate(2026, time.October, 26).DaysUntil(now))
	assert.Equal(t, 0, entity.NewDate(2026, time.October, 19).DaysUntil(now))
	assert.Equal(t, -1, entity.NewDate(2026, time.October, 18).DaysUntil(now))
}

func TestTimestamp_AceptaLocalDateTime(t *testing.T) {
	var tx entity.StockTransaction
	require.NoError(t, json.Unmarshal([]byte(`{"transactionDate":"2026-10-01T08:30:00","quantity":5}`), &tx))
	require.NotNil(t, tx.TransactionDate)
	assert.Equal(t, 8, tx.TransactionDate.Hour())
}

func TestDrug_PrecioComoNumero(t *testing.T) {
	price := decimal.RequireFromString("12.50")
	out, err := json.Marshal(entity.Drug{Name: "Amoxicillin", UnitPrice: &price})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Amoxicillin","unitPrice":12.5}`, string(out))
}

func TestProvinceStock_TotalsSumaDistritos(t *testing.T) {
	p := entity.ProvinceStock{Districts: []entity.DistrictStock{
		{Categories: map[entity.ItemCategory]entity.CategoryStock{
			entity.CategoryMedications: {Total: 10, Critical: 1, Warning: 2, Normal: 7},
		}},
		{Categories: map[entity.ItemCategory]entity.CategoryStock{
			entity.CategoryMedications: {Total: 5, Critical: 0, Warning: 1, Normal: 4},
			entity.CategoryVaccines:    {Total: 3, Normal: 3},
		}},
	}}
	totals := p.Totals()
	assert.Equal(t, entity.CategoryStock{Total: 15, Critical: 1, Warning: 3, Normal: 11}, totals[entity.CategoryMedications])
	assert.Equal(t, entity.CategoryStock{Total: 3, Normal: 3}, totals[entity.CategoryVaccines])
}

func TestUser_FullName(t *testing.T) {
	assert.Equal(t, "Tendai Moyo", entity.User{FirstName: "Tendai", LastName: "Moyo"}.FullName())
	assert.Equal(t, "tmoyo", entity.User{Username: "tmoyo"}.FullName())
}

func TestCategoryStock_Status(t *testing.T) {
	assert.Equal(t, entity.StatusCritical, entity.CategoryStock{Total: 100, Critical: 16}.Status())
	assert.Equal(t, entity.StatusWarning, entity.CategoryStock{Total: 100, Critical: 15}.Status())
	assert.Equal(t, entity.StatusNormal, entity.CategoryStock{Total: 100, Critical: 5}.Status())
	assert.Equal(t, entity.StatusUnknown, entity.CategoryStock{}.Status())
}

func TestProvinceStock_StatusEsElPeorDistrito(t *testing.T) {
	p := entity.ProvinceStock{Districts: []entity.DistrictStock{
		{Categories: map[entity.ItemCategory]entity.CategoryStock{entity.CategorySupplies: {Total: 100, Critical: 2}}},
		{Categories: map[entity.ItemCategory]entity.CategoryStock{entity.CategorySupplies: {Total: 100, Critical: 10}}},
	}}
	assert.Equal(t, entity.StatusWarning, p.Status())
	assert.Equal(t, entity.StatusUnknown, entity.WorstStatus())
}
