package get_agenda

import (
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/appointments/models"
)

// ToServiceRequest разбирает query параметры: date, professionalId, includeCanceled
func ToServiceRequest(query url.Values) (*models.AgendaRequest, error) {
	req := &models.AgendaRequest{}

	if v := query.Get("date"); v != "" {
		day, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.Day = day
	}

	if v := query.Get("professionalId"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		req.ProfessionalID = &id
	}

	if v := query.Get("includeCanceled"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			return nil, err
		}
		req.IncludeCanceled = include
	}

	return req, nil
}
