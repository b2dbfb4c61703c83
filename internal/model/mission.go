package model

import (
	"time"
)

// Mission is a tasking record. UID is assigned at creation and never
// changes; CreatorUID, CreatorPlatoon and CreateTime are immutable
// after the first write. CreatorPlatoon is a snapshot taken at creation
// time, stored independently and never re-derived from the creator.
type Mission struct {
	ID             uint   `gorm:"primarykey"`
	UID            string `gorm:"uniqueIndex"`
	Title          string
	Scenario       ScenarioType
	AssignedTo     Platoon `gorm:"index"`
	Objective      string
	Description    string
	Assets         string
	CreatorUID     string
	CreatorPlatoon Platoon
	CreateTime     time.Time
	LastEdit       time.Time
}
