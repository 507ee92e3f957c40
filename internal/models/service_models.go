package models

// Service is a catalog item that can be attached to clients. The catalog
// is global; it is not owned by any user.
type Service struct {
	ID          int64   `json:"id" db:"id"`
	ServiceName string  `json:"service_name" db:"service_name"`
	Description *string `json:"description,omitempty" db:"description"`
}

// ClientService is the join row linking a client to a catalog service.
// Rows have no independent lifecycle; they are created and deleted in bulk
// when a client's service list is replaced.
type ClientService struct {
	ClientID  int64 `json:"client_id" db:"client_id"`
	ServiceID int64 `json:"service_id" db:"service_id"`
}
