package authz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brm5/taccom/internal/model"
)

// CanAssignTo reports whether the acting platoon may task the target
// platoon. First match wins:
//
//  1. self-tasking is always allowed
//  2. anyone may broadcast to GENERAL
//  3. command roles (RDPL and lieutenants) may task anyone
//  4. GRPL and BLPL may task each other
//
// The relation is deliberately asymmetric: RDPL tasks BLPL through the
// command rule, but BLPL may not task RDPL.
func CanAssignTo(acting, target model.Platoon) bool {
	if acting == target {
		return true
	}

	if target == model.GENERAL {
		return true
	}

	if HasFullVisibility(acting) {
		return true
	}

	if (acting == model.GRPL && target == model.BLPL) || (acting == model.BLPL && target == model.GRPL) {
		return true
	}

	return false
}

// VisibleMissions returns the missions the viewer may see, most recently
// edited first. Ties keep their incoming relative order. Command roles
// see everything; a line platoon sees its own tasking plus broadcasts.
// Visibility never grants edit rights.
func VisibleMissions(viewer model.Platoon, missions []*model.MissionDTO) []*model.MissionDTO {
	sorted := make([]*model.MissionDTO, len(missions))
	copy(sorted, missions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt > sorted[j].UpdatedAt
	})

	if HasFullVisibility(viewer) {
		return sorted
	}

	res := make([]*model.MissionDTO, 0, len(sorted))

	for _, m := range sorted {
		if m.AssignedTo == viewer || m.AssignedTo == model.GENERAL {
			res = append(res, m)
		}
	}

	return res
}

// CanManage reports whether the viewer may edit or delete the mission.
// RDPL manages everything; everyone else, lieutenants included, manages
// only what they created.
func CanManage(viewer *model.UserDTO, m *model.MissionDTO) bool {
	if viewer == nil || m == nil {
		return false
	}

	if viewer.Platoon == model.RDPL {
		return true
	}

	return m.CreatorUID != "" && m.CreatorUID == viewer.UID
}

// ValidateSubmission checks a mission form before it goes anywhere near
// the store. Field presence first, tasking permission second. When
// editing, prevAssigned is the stored assignment; keeping it untouched
// is always allowed even if the actor could not pick it fresh.
func ValidateSubmission(actor model.Platoon, d *model.MissionDTO, prevAssigned model.Platoon) error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: ERROR: MISSION TITLE IS REQUIRED.", model.ErrValidation)
	}

	if strings.TrimSpace(d.Objective) == "" {
		return fmt.Errorf("%w: ERROR: PRIMARY OBJECTIVE IS REQUIRED.", model.ErrValidation)
	}

	if prevAssigned != "" && d.AssignedTo == prevAssigned {
		return nil
	}

	if !CanAssignTo(actor, d.AssignedTo) {
		return fmt.Errorf("%w: ERROR: Platoon %s is not authorized to task %s.", model.ErrNotAuthorized, actor, d.AssignedTo)
	}

	return nil
}
