package domain

import (
	"time"

	"github.com/google/uuid"
)

// Client is a salon customer registered by the staff.
// UserID is set when the customer also has an account in the auth backend.
type Client struct {
	ID        int64
	UserID    *uuid.UUID
	FullName  string
	Phone     string
	CreatedAt time.Time
}

// ClientsFilter narrows the client list. Search matches name or phone
type ClientsFilter struct {
	Search string
	Limit  int
	Offset int
}
