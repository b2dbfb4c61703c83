package authz

import "github.com/brm5/taccom/internal/model"

// LieutenantRoles are the command-tier variants of the line platoons.
// They never appear as self-registration choices; they are provisioned
// through the admin tooling only.
var LieutenantRoles = []model.Platoon{model.LTPR, model.LTPG, model.LTPB}

// FullVisibilityRoles see every mission and may task every platoon.
var FullVisibilityRoles = []model.Platoon{model.RDPL, model.LTPR, model.LTPG, model.LTPB}

func IsLieutenant(p model.Platoon) bool {
	switch p {
	case model.LTPR, model.LTPG, model.LTPB:
		return true
	}

	return false
}

func HasFullVisibility(p model.Platoon) bool {
	return p == model.RDPL || IsLieutenant(p)
}

// Option is a selectable value with a display label. Hidden options are
// valid stored values that never show up as a fresh choice; disabled
// options are shown but not pickable for the current actor.
type Option struct {
	Value    string
	Label    string
	Hidden   bool
	Disabled bool
}

var ScenarioOptions = []Option{
	{Value: string(model.RESCUE), Label: "Rescue Operation (RESCUE)"},
	{Value: string(model.ASSAULT), Label: "Assault (ASSAULT)"},
	{Value: string(model.RECON), Label: "Reconnaissance (RECON)"},
	{Value: string(model.DEFENSE), Label: "Defense (DEFENSE)"},
	{Value: string(model.CUSTOM), Label: "Custom (CUSTOM)"},
}

var PlatoonOptions = []Option{
	{Value: string(model.GENERAL), Label: "General / All Platoons"},
	{Value: string(model.RDPL), Label: "Red Platoon (RDPL)"},
	{Value: string(model.GRPL), Label: "Green Platoon (GRPL)"},
	{Value: string(model.BLPL), Label: "Blue Platoon (BLPL)"},
	{Value: string(model.LTPR), Label: "Red Lieutenant (LTPR)", Hidden: true},
	{Value: string(model.LTPG), Label: "Green Lieutenant (LTPG)", Hidden: true},
	{Value: string(model.LTPB), Label: "Blue Lieutenant (LTPB)", Hidden: true},
}

// RegistrationPlatoons lists the platoons an operator may pick for
// themselves at signup: line units only, never GENERAL or a lieutenant
// tier.
func RegistrationPlatoons() []Option {
	res := make([]Option, 0, 3)

	for _, o := range PlatoonOptions {
		if o.Hidden || o.Value == string(model.GENERAL) {
			continue
		}

		res = append(res, o)
	}

	return res
}

// AssignmentOptions lists tasking targets for the given actor. Targets
// the actor may not task are kept in the list but flagged, so a form can
// show them disabled. When editing a mission whose stored assignment the
// actor could not legally pick anymore, that value is appended as an
// enabled "(Current)" entry so the record can be saved without touching
// the assignment.
func AssignmentOptions(actor model.Platoon, current model.Platoon) []Option {
	res := make([]Option, 0, len(PlatoonOptions))

	for _, o := range PlatoonOptions {
		if o.Hidden {
			continue
		}

		res = append(res, Option{Value: o.Value, Label: o.Label, Disabled: !CanAssignTo(actor, model.Platoon(o.Value))})
	}

	if current != "" && !CanAssignTo(actor, current) {
		for _, o := range PlatoonOptions {
			if o.Value == string(current) {
				res = append(res, Option{Value: o.Value, Label: o.Label + " (Current)"})
				break
			}
		}
	}

	return res
}
