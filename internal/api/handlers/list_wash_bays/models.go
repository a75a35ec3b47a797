package list_wash_bays

import (
	"github.com/m04kA/CWP-AllocationService/internal/domain"
)

// WashBayModel HTTP модель стационарного бокса
type WashBayModel struct {
	ID             int64    `json:"id"`
	BayNumber      int      `json:"bayNumber"`
	MaxVehicleSize string   `json:"maxVehicleSize"`
	EquipmentTypes []string `json:"equipmentTypes"`
	Status         string   `json:"status"`
}

// WashBayListResponse HTTP response model
type WashBayListResponse struct {
	WashBays []WashBayModel `json:"washBays"`
}

// FromDomainList конвертирует доменные модели в HTTP response
func FromDomainList(bays []*domain.WashBay) *WashBayListResponse {
	models := make([]WashBayModel, 0, len(bays))
	for _, bay := range bays {
		models = append(models, WashBayModel{
			ID:             bay.ID,
			BayNumber:      bay.BayNumber,
			MaxVehicleSize: string(bay.MaxVehicleSize),
			EquipmentTypes: bay.EquipmentTypes,
			Status:         string(bay.Status),
		})
	}

	return &WashBayListResponse{WashBays: models}
}
