package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Outcome результат подтверждения записи
type Outcome string

const (
	// OutcomeConfirmed запись создана
	OutcomeConfirmed Outcome = "confirmed"
	// OutcomeSlotNoLongerAvailable слот заняли между расчетом и подтверждением
	OutcomeSlotNoLongerAvailable Outcome = "slot_no_longer_available"
	// OutcomeTransientError конфликт сериализации, запрос можно повторить
	OutcomeTransientError Outcome = "transient_error"
)

// Request модель запроса на создание записи
type Request struct {
	Session      *domain.Session             // nil для анонимного клиента
	ClientName   string                      // Имя клиента
	ClientPhone  string                      // Телефон клиента
	ClientID     *int64                      // ID зарегистрированного клиента (опционально)
	ServiceID    int64                       // ID услуги
	Professional domain.ProfessionalSelector // Конкретный профессионал или "любой"
	StartTime    time.Time                   // Время начала из списка доступных слотов
	Notes        *string                     // Дополнительные заметки (опционально)
}

// Response модель ответа с результатом подтверждения
type Response struct {
	Outcome     Outcome             // Результат подтверждения
	Appointment *domain.Appointment // Созданная запись, только для OutcomeConfirmed
}
