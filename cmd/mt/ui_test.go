package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brm5/taccom/internal/model"
)

func TestMissionRowTags(t *testing.T) {
	green := &model.UserDTO{UID: "u-green", Platoon: model.GRPL}

	own := &model.MissionDTO{
		UID: "m1", Title: "Bridge sweep", Scenario: model.RECON,
		AssignedTo: model.GRPL, CreatorUID: "u-green", CreatorPlatoon: model.GRPL,
	}

	command := &model.MissionDTO{
		UID: "m2", Title: "Hold the line", Scenario: model.DEFENSE,
		AssignedTo: model.GRPL, CreatorUID: "u-lt", CreatorPlatoon: model.LTPG,
	}

	foreign := &model.MissionDTO{
		UID: "m3", Title: "Depot raid", Scenario: model.ASSAULT,
		AssignedTo: model.GENERAL, CreatorUID: "u-blue", CreatorPlatoon: model.BLPL,
	}

	assert.NotContains(t, missionRow(green, own), "COMMAND")
	assert.NotContains(t, missionRow(green, own), "RO")

	assert.Contains(t, missionRow(green, command), "COMMAND")
	assert.Contains(t, missionRow(green, foreign), "RO")

	// RDPL manages everything, so only the COMMAND marker survives
	red := &model.UserDTO{UID: "u-red", Platoon: model.RDPL}
	assert.NotContains(t, missionRow(red, foreign), "RO")
	assert.Contains(t, missionRow(red, command), "COMMAND")
}

func TestAccessTag(t *testing.T) {
	green := &model.UserDTO{UID: "u-green", Platoon: model.GRPL}
	red := &model.UserDTO{UID: "u-red", Platoon: model.RDPL}

	own := &model.MissionDTO{UID: "m1", CreatorUID: "u-green", CreatorPlatoon: model.GRPL}
	foreign := &model.MissionDTO{UID: "m2", CreatorUID: "u-blue", CreatorPlatoon: model.BLPL}

	assert.Equal(t, "[manageable]", accessTag(green, own))
	assert.Equal(t, "[read-only]", accessTag(green, foreign))
	assert.Equal(t, "[manageable]", accessTag(red, foreign))
}

func TestTrimLastRune(t *testing.T) {
	assert.Equal(t, "", trimLastRune(""))
	assert.Equal(t, "abc", trimLastRune("abcd"))
	assert.Equal(t, "точк", trimLastRune("точка"))
	assert.Equal(t, "op ", trimLastRune("op №"))
}
