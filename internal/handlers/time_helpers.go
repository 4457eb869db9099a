package handlers

import (
	"time"

	"github.com/fluxoapp/fluxo-api/internal/models"
	"github.com/fluxoapp/fluxo-api/internal/timezone"
)

// --------------------------------------------------
// Timezone centralizado por negócio
// --------------------------------------------------

func locationFromBusiness(biz *models.Business) *time.Location {
	if biz != nil {
		return timezone.Location(biz.Timezone)
	}
	return timezone.Location("")
}

func parseDateInBusiness(biz *models.Business, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromBusiness(biz),
	)
}

// parseTimestampInBusiness lê ISO-8601. Timestamp sem offset é
// interpretado na timezone do negócio (convenção do contrato da API).
func parseTimestampInBusiness(biz *models.Business, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}

	loc := locationFromBusiness(biz)
	layouts := []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
	}

	var lastErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
