package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	Session      *domain.Session             // nil для анонимного клиента, влияет только на логирование
	Day          time.Time                   // Календарный день в часовом поясе салона (время игнорируется)
	ServiceID    int64                       // ID услуги
	Professional domain.ProfessionalSelector // Конкретный профессионал или "любой"
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Day             time.Time                   // Полночь запрошенного дня в часовом поясе салона
	ServiceID       int64                       // ID услуги
	Professional    domain.ProfessionalSelector // Селектор из запроса
	DurationMinutes int                         // Длительность услуги
	Slots           []Slot                      // Слоты по возрастанию времени начала
}

// Slot модель свободного времени начала услуги
type Slot struct {
	StartTime       time.Time
	EndTime         time.Time
	ProfessionalIDs []uuid.UUID // Свободные профессионалы в порядке списка сотрудников
}
