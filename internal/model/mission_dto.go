package model

import (
	"time"
)

// MissionDTO is the wire form of a mission. Timestamps travel as unix
// milliseconds.
type MissionDTO struct {
	UID            string       `json:"id"`
	Title          string       `json:"title"`
	Scenario       ScenarioType `json:"scenarioType"`
	AssignedTo     Platoon      `json:"assignedPlatoon"`
	Objective      string       `json:"objective"`
	Description    string       `json:"description"`
	Assets         string       `json:"assets"`
	CreatorUID     string       `json:"creatorId"`
	CreatorPlatoon Platoon      `json:"creatorPlatoon"`
	CreatedAt      int64        `json:"createdAt"`
	UpdatedAt      int64        `json:"updatedAt"`
}

func ToMissionDTO(m *Mission) *MissionDTO {
	if m == nil {
		return nil
	}

	return &MissionDTO{
		UID:            m.UID,
		Title:          m.Title,
		Scenario:       m.Scenario,
		AssignedTo:     m.AssignedTo,
		Objective:      m.Objective,
		Description:    m.Description,
		Assets:         m.Assets,
		CreatorUID:     m.CreatorUID,
		CreatorPlatoon: m.CreatorPlatoon,
		CreatedAt:      m.CreateTime.UnixMilli(),
		UpdatedAt:      m.LastEdit.UnixMilli(),
	}
}

func (d *MissionDTO) ToMission() *Mission {
	if d == nil {
		return nil
	}

	return &Mission{
		UID:            d.UID,
		Title:          d.Title,
		Scenario:       d.Scenario,
		AssignedTo:     d.AssignedTo,
		Objective:      d.Objective,
		Description:    d.Description,
		Assets:         d.Assets,
		CreatorUID:     d.CreatorUID,
		CreatorPlatoon: d.CreatorPlatoon,
		CreateTime:     time.UnixMilli(d.CreatedAt),
		LastEdit:       time.UnixMilli(d.UpdatedAt),
	}
}
