package cancel_booking

import (
	"github.com/m04kA/SMC-SalonBookingService/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason *string `json:"reason,omitempty"`
}

// ToServiceRequest собирает запрос сервиса, пользователь берется из заголовка авторизации
func (r *CancelBookingRequest) ToServiceRequest(userID int64) *models.CancelBookingRequest {
	req := &models.CancelBookingRequest{UserID: userID}
	if r.Reason != nil {
		req.CancellationReason = *r.Reason
	}
	return req
}
