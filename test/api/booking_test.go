package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingFlow(t *testing.T) {
	requireServer(t)

	// Clinic
	clinicResp := makeRequest("POST", "/clinics", map[string]interface{}{
		"name":     uniqueName("Test Clinic"),
		"address":  "123 Test St",
		"phone":    "+1234567890",
		"timezone": "UTC",
	}, authToken)
	require.True(t, clinicResp.IsSuccess(), "failed to create clinic: %s", clinicResp.Message)
	clinicID := clinicResp.GetString("id")
	require.NotEmpty(t, clinicID)

	// Dentist account
	dentistResp := makeRequest("POST", "/auth/register", map[string]interface{}{
		"name":     "Dr. Test",
		"email":    uniqueName("dentist") + "@example.com",
		"password": "test-password-123",
		"role":     "dentist",
	}, "")
	require.True(t, dentistResp.IsSuccess(), "failed to register dentist: %s", dentistResp.Message)
	dentistID := dentistResp.GetString("id")

	// Patient
	patientResp := makeRequest("POST", "/patients", map[string]interface{}{
		"clinic_id":  clinicID,
		"first_name": "Pat",
		"last_name":  "Tester",
		"phone":      "+1987654321",
	}, authToken)
	require.True(t, patientResp.IsSuccess(), "failed to create patient: %s", patientResp.Message)
	patientID := patientResp.GetString("id")

	// Working hours for the booking day, one week out.
	bookingDay := time.Now().AddDate(0, 0, 7)
	scheduleResp := makeRequest("POST", "/schedules", map[string]interface{}{
		"dentist_id":  dentistID,
		"clinic_id":   clinicID,
		"day_of_week": int(bookingDay.Weekday()),
		"start_time":  "09:00",
		"end_time":    "17:00",
	}, authToken)
	require.True(t, scheduleResp.IsSuccess(), "failed to create schedule: %s", scheduleResp.Message)

	// Slots for a 30 minute appointment
	slotsPath := fmt.Sprintf("/appointments/slots?dentist_id=%s&date=%s&duration=30",
		dentistID, bookingDay.Format("2006-01-02"))
	slotsResp := makeRequest("GET", slotsPath, nil, authToken)
	require.True(t, slotsResp.IsSuccess(), "failed to list slots: %s", slotsResp.Message)

	var slots []struct {
		Time      time.Time `json:"time"`
		Available bool      `json:"available"`
	}
	require.NoError(t, json.Unmarshal(slotsResp.RawData, &slots))
	require.NotEmpty(t, slots, "a scheduled dentist must have slots")
	assert.True(t, slots[0].Available)

	// Book the first slot
	createResp := makeRequest("POST", "/appointments", map[string]interface{}{
		"clinic_id":        clinicID,
		"dentist_id":       dentistID,
		"patient_id":       patientID,
		"start_time":       slots[0].Time.Format(time.RFC3339),
		"duration_minutes": 30,
		"service_type":     "checkup",
	}, authToken)
	require.True(t, createResp.IsSuccess(), "failed to book appointment: %s", createResp.Message)
	appointmentID := createResp.GetString("id")
	require.NotEmpty(t, appointmentID)

	// The same slot cannot be booked twice
	conflictResp := makeRequest("POST", "/appointments", map[string]interface{}{
		"clinic_id":        clinicID,
		"dentist_id":       dentistID,
		"patient_id":       patientID,
		"start_time":       slots[0].Time.Format(time.RFC3339),
		"duration_minutes": 30,
		"service_type":     "cleaning",
	}, authToken)
	assert.False(t, conflictResp.IsSuccess())
	assert.Equal(t, http.StatusConflict, conflictResp.StatusCode)

	// The booked slot shows as unavailable now
	slotsResp = makeRequest("GET", slotsPath, nil, authToken)
	require.True(t, slotsResp.IsSuccess())
	require.NoError(t, json.Unmarshal(slotsResp.RawData, &slots))
	assert.False(t, slots[0].Available)

	// Cancel frees the slot again
	cancelResp := makeRequest("POST", "/appointments/"+appointmentID+"/cancel", map[string]interface{}{
		"reason": "integration test cleanup",
	}, authToken)
	require.True(t, cancelResp.IsSuccess(), "failed to cancel: %s", cancelResp.Message)
	assert.Equal(t, "cancelled", cancelResp.GetString("status"))
}

func TestSlotsValidation(t *testing.T) {
	requireServer(t)

	resp := makeRequest("GET", "/appointments/slots?date=2026-09-14&duration=30", nil, authToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "dentist_id is required")

	resp = makeRequest("GET", "/appointments/slots?dentist_id=not-a-uuid&date=2026-09-14&duration=30", nil, authToken)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthRequired(t *testing.T) {
	requireServer(t)

	resp := makeRequest("GET", "/appointments", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
