package domain

// Client customer of a dealership
type Client struct {
	ID           int64
	DealershipID int64
	Name         string
	Phone        string
}

// Vehicle owned by a client
type Vehicle struct {
	ID       int64
	ClientID int64
	Plate    string
	Make     *string
	Model    *string
}

// Technician mechanic assigned to a workshop
type Technician struct {
	ID           int64
	DealershipID int64
	WorkshopID   int64
	Name         string
	IsActive     bool
}
