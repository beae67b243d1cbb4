package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// generateCandidates генерирует интервалы-кандидаты на день.
// Начала идут от открытия с шагом hours.StepMinutes, конец = начало + длительность услуги.
// Кандидат отбрасывается, если заканчивается позже закрытия
// или начинается раньше notBefore (текущее время + минимальный запас).
func generateCandidates(
	hours domain.BusinessHours,
	day time.Time,
	durationMinutes int,
	notBefore time.Time,
) []domain.TimeRange {
	if hours.StepMinutes <= 0 || durationMinutes <= 0 {
		return []domain.TimeRange{}
	}

	window := hours.Window(day)
	step := time.Duration(hours.StepMinutes) * time.Minute
	duration := time.Duration(durationMinutes) * time.Minute

	candidates := make([]domain.TimeRange, 0)
	for start := window.Start; start.Before(window.End); start = start.Add(step) {
		end := start.Add(duration)
		if end.After(window.End) {
			break
		}

		// Слоты, начинающиеся раньше допустимого времени, пропускаем
		if start.Before(notBefore) {
			continue
		}

		candidates = append(candidates, domain.TimeRange{Start: start, End: end})
	}

	return candidates
}

// calculateSlots оставляет кандидатов, на которые свободен хотя бы один профессионал из списка.
// Отмененные записи не занимают время, записи без профессионала занимают всех.
func calculateSlots(
	candidates []domain.TimeRange,
	roster []uuid.UUID,
	appointments []*domain.Appointment,
) []Slot {
	result := make([]Slot, 0, len(candidates))

	for _, candidate := range candidates {
		free := domain.FreeProfessionals(candidate, roster, appointments)
		if len(free) == 0 {
			continue
		}

		result = append(result, Slot{
			StartTime:       candidate.Start,
			EndTime:         candidate.End,
			ProfessionalIDs: free,
		})
	}

	return result
}
