package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const farmersJSON = `[
	{
		"farmer_id": "F001",
		"name": "Aysel Mammadova",
		"region": "Shirvan",
		"farm_type": "grain",
		"crop_type": "wheat",
		"farm_size_hectares": 45,
		"years_experience": 12,
		"previous_bnpl_count": 3,
		"previous_bnpl_status": "all_on_time",
		"average_monthly_revenue": 2800,
		"seasonal_revenue_volatility": "low",
		"land_ownership": true,
		"has_irrigation": true,
		"has_bank_loan": false,
		"requested_amount": 4500,
		"requested_products": ["seeds", "fertilizer"]
	},
	{
		"farmer_id": "F002",
		"name": "Rasim Aliyev",
		"region": "Guba",
		"farm_type": "orchard",
		"crop_type": "apple",
		"farm_size_hectares": 8,
		"years_experience": 4,
		"previous_bnpl_count": 0,
		"previous_bnpl_status": "none",
		"average_monthly_revenue": 1400,
		"seasonal_revenue_volatility": "high",
		"land_ownership": false,
		"has_irrigation": false,
		"has_bank_loan": true,
		"requested_amount": 1200
	}
]`

const productsJSON = `[
	{
		"product_id": "P001",
		"category": "seeds",
		"name": "Premium Wheat Seeds",
		"name_az": "Premium Buğda Toxumu",
		"compatible_crops": ["wheat"],
		"unit_price": 10,
		"unit": "kg",
		"quantity_per_hectare": 5,
		"seasonal_timing": "autumn"
	},
	{
		"product_id": "P002",
		"category": "fertilizer",
		"name": "Universal NPK",
		"compatible_crops": ["all"],
		"unit_price": 2,
		"unit": "kg",
		"quantity_per_hectare": 10
	}
]`

func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FarmersFile), []byte(farmersJSON), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProductsFile), []byte(productsJSON), 0o644))
	return dir
}

func TestLoad(t *testing.T) {
	store, err := Load(writeDataDir(t))
	require.NoError(t, err)

	assert.Len(t, store.Farmers(), 2)
	assert.Len(t, store.Products(), 2)

	farmer, ok := store.FarmerByID("F001")
	require.True(t, ok)
	assert.Equal(t, "Aysel Mammadova", farmer.Name)
	assert.Equal(t, 45.0, farmer.FarmSizeHectares)
	assert.Equal(t, []string{"seeds", "fertilizer"}, farmer.RequestedProducts)

	_, ok = store.FarmerByID("F999")
	assert.False(t, ok)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestDecode_InvalidPayload(t *testing.T) {
	_, err := Decode([]byte("not json"), []byte(productsJSON))
	assert.Error(t, err)

	_, err = Decode([]byte(farmersJSON), []byte("not json"))
	assert.Error(t, err)
}

func TestDecode_ProductHelpers(t *testing.T) {
	store, err := Decode([]byte(farmersJSON), []byte(productsJSON))
	require.NoError(t, err)

	products := store.Products()
	require.Len(t, products, 2)

	assert.True(t, products[0].SupportsCrop("wheat"))
	assert.False(t, products[0].SupportsCrop("apple"))
	assert.True(t, products[1].SupportsCrop("apple"), "sentinel covers every crop")
}
