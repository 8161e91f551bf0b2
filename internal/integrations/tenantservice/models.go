package tenantservice

// Workshop мастерская дилера из сервиса дилеров
type Workshop struct {
	ID           int64  `json:"id"`
	DealershipID int64  `json:"dealership_id"`
	Name         string `json:"name"`
	IsActive     bool   `json:"is_active"`
}
