package get_salon_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// date задает один день и имеет приоритет над startDate/endDate
func ToServiceRequest(salonID, userID int64, query url.Values) (*models.GetSalonBookingsRequest, error) {
	req := &models.GetSalonBookingsRequest{
		UserID:  userID,
		SalonID: salonID,
	}

	if raw := query.Get("masterId"); raw != "" {
		masterID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid masterId: %w", err)
		}
		req.MasterID = &masterID
	}

	if raw := query.Get("status"); raw != "" {
		req.Status = &raw
	}

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate = &date
		req.EndDate = &date
	} else {
		var err error
		if req.StartDate, err = parseOptionalDate(query.Get("startDate")); err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		if req.EndDate, err = parseOptionalDate(query.Get("endDate")); err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
