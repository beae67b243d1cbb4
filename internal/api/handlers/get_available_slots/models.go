package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-SalonBooking/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	ServiceID       int64           `json:"serviceId"`
	Professional    string          `json:"professional"` // UUID или "any"
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime       string   `json:"startTime"` // RFC 3339 в часовом поясе салона
	EndTime         string   `json:"endTime"`
	ProfessionalIDs []string `json:"professionalIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		ids := make([]string, len(slot.ProfessionalIDs))
		for j, id := range slot.ProfessionalIDs {
			ids[j] = id.String()
		}
		slots[i] = AvailableSlot{
			StartTime:       slot.StartTime.Format(time.RFC3339),
			EndTime:         slot.EndTime.Format(time.RFC3339),
			ProfessionalIDs: ids,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Day.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		Professional:    resp.Professional.String(),
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(session *domain.Session, serviceID int64, dateStr, professional string) (*getAvailableSlots.Request, error) {
	day, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	selector, err := domain.ParseProfessionalSelector(professional)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidProfessional, err)
	}

	return &getAvailableSlots.Request{
		Session:      session,
		Day:          day,
		ServiceID:    serviceID,
		Professional: selector,
	}, nil
}
