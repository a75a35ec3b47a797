package list_mobile_teams

import (
	"github.com/m04kA/CWP-AllocationService/internal/domain"
)

// GeoPointModel координаты базы бригады
type GeoPointModel struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// MobileTeamModel HTTP модель выездной бригады
type MobileTeamModel struct {
	ID              int64         `json:"id"`
	Name            string        `json:"name"`
	BaseLocation    GeoPointModel `json:"baseLocation"`
	ServiceRadiusKm float64       `json:"serviceRadiusKm"`
	DailyCapacity   int           `json:"dailyCapacity"`
	EquipmentTypes  []string      `json:"equipmentTypes"`
	Status          string        `json:"status"`
}

// MobileTeamListResponse HTTP response model
type MobileTeamListResponse struct {
	MobileTeams []MobileTeamModel `json:"mobileTeams"`
}

// FromDomainList конвертирует доменные модели в HTTP response
func FromDomainList(teams []*domain.MobileTeam) *MobileTeamListResponse {
	models := make([]MobileTeamModel, 0, len(teams))
	for _, team := range teams {
		models = append(models, MobileTeamModel{
			ID:   team.ID,
			Name: team.Name,
			BaseLocation: GeoPointModel{
				Latitude:  team.BaseLocation.Latitude,
				Longitude: team.BaseLocation.Longitude,
			},
			ServiceRadiusKm: team.ServiceRadiusKm,
			DailyCapacity:   team.DailyCapacity,
			EquipmentTypes:  team.EquipmentTypes,
			Status:          string(team.Status),
		})
	}

	return &MobileTeamListResponse{MobileTeams: models}
}
