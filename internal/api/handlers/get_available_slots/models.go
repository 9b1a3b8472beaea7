package get_available_slots

import (
	"strconv"
	"time"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBookingService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	SalonID         int64           `json:"salonId"`
	MasterID        *int64          `json:"masterId"`
	DurationMinutes int             `json:"durationMinutes"`
	Outcome         string          `json:"outcome"`
	WorkHours       *WorkHours      `json:"workHours"` // null, если салон закрыт
	Slots           []AvailableSlot `json:"slots"`
}

// WorkHours рабочие часы салона в выбранную дату
type WorkHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.String(),
			EndTime:   slot.AddMinutes(resp.DurationMinutes).String(),
		}
	}

	result := &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		SalonID:         resp.SalonID,
		MasterID:        resp.MasterID,
		DurationMinutes: resp.DurationMinutes,
		Outcome:         resp.Outcome,
		Slots:           slots,
	}
	if resp.WorkStart != nil && resp.WorkEnd != nil {
		result.WorkHours = &WorkHours{Start: resp.WorkStart.String(), End: resp.WorkEnd.String()}
	}

	return result
}

// ToUseCaseRequest создает запрос use case из query параметров
func ToUseCaseRequest(userID, salonID int64, serviceIDs []int64, masterIDStr, dateStr, lang string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailableSlots.Request{
		UserID:     userID,
		SalonID:    salonID,
		ServiceIDs: serviceIDs,
		Date:       date,
		Lang:       lang,
	}

	if masterIDStr != "" {
		masterID, err := strconv.ParseInt(masterIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.MasterID = &masterID
	}

	return req, nil
}
