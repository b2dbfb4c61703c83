package model

// Platoon identifies a unit: a user's membership or a mission's tasked
// audience. GENERAL is a broadcast assignment target only and is never
// a valid user membership.
type Platoon string

const (
	RDPL    Platoon = "RDPL"
	GRPL    Platoon = "GRPL"
	BLPL    Platoon = "BLPL"
	LTPR    Platoon = "LTPR"
	LTPG    Platoon = "LTPG"
	LTPB    Platoon = "LTPB"
	GENERAL Platoon = "GENERAL"
)

func (p Platoon) Valid() bool {
	switch p {
	case RDPL, GRPL, BLPL, LTPR, LTPG, LTPB, GENERAL:
		return true
	}

	return false
}

// Line reports whether p is one of the three line units. Only line
// platoons may be picked at self-registration.
func (p Platoon) Line() bool {
	switch p {
	case RDPL, GRPL, BLPL:
		return true
	}

	return false
}

func (p Platoon) Lieutenant() bool {
	switch p {
	case LTPR, LTPG, LTPB:
		return true
	}

	return false
}

type ScenarioType string

const (
	RESCUE  ScenarioType = "RESCUE"
	ASSAULT ScenarioType = "ASSAULT"
	RECON   ScenarioType = "RECON"
	DEFENSE ScenarioType = "DEFENSE"
	CUSTOM  ScenarioType = "CUSTOM"
)

func (s ScenarioType) Valid() bool {
	switch s {
	case RESCUE, ASSAULT, RECON, DEFENSE, CUSTOM:
		return true
	}

	return false
}
