package reports

import "errors"

var (
	// ErrAccessDenied возвращается, когда отчеты запрашивает не администратор
	ErrAccessDenied = errors.New("reports: access denied")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reports: internal error")
)
