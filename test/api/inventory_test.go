package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryFlow(t *testing.T) {
	requireServer(t)

	clinicResp := makeRequest("POST", "/clinics", map[string]interface{}{
		"name":     uniqueName("Inventory Clinic"),
		"address":  "456 Supply Rd",
		"phone":    "+1234509876",
		"timezone": "UTC",
	}, authToken)
	require.True(t, clinicResp.IsSuccess(), "failed to create clinic: %s", clinicResp.Message)
	clinicID := clinicResp.GetString("id")

	supplierResp := makeRequest("POST", "/suppliers", map[string]interface{}{
		"name":  uniqueName("Dental Supplies Co"),
		"email": "orders@example.com",
	}, authToken)
	require.True(t, supplierResp.IsSuccess(), "failed to create supplier: %s", supplierResp.Message)
	supplierID := supplierResp.GetString("id")

	itemResp := makeRequest("POST", "/inventory", map[string]interface{}{
		"clinic_id":     clinicID,
		"supplier_id":   supplierID,
		"name":          uniqueName("composite resin"),
		"sku":           uniqueName("CR"),
		"unit":          "syringe",
		"current_stock": 10,
		"minimum_stock": 3,
		"unit_cost":     12.5,
	}, authToken)
	require.True(t, itemResp.IsSuccess(), "failed to create item: %s", itemResp.Message)
	itemID := itemResp.GetString("id")
	require.NotEmpty(t, itemID)

	// Outgoing movement
	outResp := makeRequest("POST", "/inventory/"+itemID+"/movements", map[string]interface{}{
		"type":     "out",
		"quantity": 4,
	}, authToken)
	require.True(t, outResp.IsSuccess(), "failed to record movement: %s", outResp.Message)
	assert.Equal(t, float64(6), outResp.Data["current_stock"])

	// Stock cannot go negative
	overdraw := makeRequest("POST", "/inventory/"+itemID+"/movements", map[string]interface{}{
		"type":     "out",
		"quantity": 100,
	}, authToken)
	assert.False(t, overdraw.IsSuccess())
	assert.Equal(t, http.StatusBadRequest, overdraw.StatusCode)

	// Draining to the minimum puts the item on the low stock report
	drain := makeRequest("POST", "/inventory/"+itemID+"/movements", map[string]interface{}{
		"type":     "out",
		"quantity": 3,
	}, authToken)
	require.True(t, drain.IsSuccess(), "failed to drain stock: %s", drain.Message)

	lowResp := makeRequest("GET", "/inventory/low-stock?clinic_id="+clinicID, nil, authToken)
	require.True(t, lowResp.IsSuccess())
	assert.NotEmpty(t, lowResp.RawData)

	// Movement history
	movementsResp := makeRequest("GET", "/inventory/"+itemID+"/movements", nil, authToken)
	require.True(t, movementsResp.IsSuccess())
}
