package authz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brm5/taccom/internal/model"
)

var allPlatoons = []model.Platoon{model.RDPL, model.GRPL, model.BLPL, model.LTPR, model.LTPG, model.LTPB, model.GENERAL}

func TestCanAssignTo_Self(t *testing.T) {
	for _, p := range allPlatoons {
		assert.True(t, CanAssignTo(p, p), "self-tasking for %s", p)
	}
}

func TestCanAssignTo_Broadcast(t *testing.T) {
	for _, p := range allPlatoons {
		assert.True(t, CanAssignTo(p, model.GENERAL), "%s to GENERAL", p)
	}
}

func TestCanAssignTo_Command(t *testing.T) {
	for _, target := range allPlatoons {
		assert.True(t, CanAssignTo(model.RDPL, target), "RDPL to %s", target)
	}

	for _, lt := range LieutenantRoles {
		for _, target := range allPlatoons {
			assert.True(t, CanAssignTo(lt, target), "%s to %s", lt, target)
		}
	}
}

func TestCanAssignTo_Alliance(t *testing.T) {
	assert.True(t, CanAssignTo(model.GRPL, model.BLPL))
	assert.True(t, CanAssignTo(model.BLPL, model.GRPL))
}

func TestCanAssignTo_Denied(t *testing.T) {
	assert.False(t, CanAssignTo(model.GRPL, model.RDPL))
	assert.False(t, CanAssignTo(model.BLPL, model.RDPL))
	assert.False(t, CanAssignTo(model.GRPL, model.LTPB))
	assert.False(t, CanAssignTo(model.BLPL, model.LTPG))
}

func mission(uid string, assigned model.Platoon, creator string, updated int64) *model.MissionDTO {
	return &model.MissionDTO{
		UID:        uid,
		Title:      "op " + uid,
		Scenario:   model.RECON,
		AssignedTo: assigned,
		Objective:  "hold the line",
		CreatorUID: creator,
		UpdatedAt:  updated,
	}
}

func TestVisibleMissions_FullVisibility(t *testing.T) {
	missions := []*model.MissionDTO{
		mission("m1", model.GRPL, "a", 10),
		mission("m2", model.BLPL, "b", 30),
		mission("m3", model.RDPL, "c", 20),
		mission("m4", model.GENERAL, "d", 30),
	}

	for _, viewer := range FullVisibilityRoles {
		got := VisibleMissions(viewer, missions)

		require.Len(t, got, 4)
		// m2 and m4 tie on UpdatedAt, incoming order must hold
		assert.Equal(t, "m2", got[0].UID)
		assert.Equal(t, "m4", got[1].UID)
		assert.Equal(t, "m3", got[2].UID)
		assert.Equal(t, "m1", got[3].UID)
	}
}

func TestVisibleMissions_LinePlatoon(t *testing.T) {
	missions := []*model.MissionDTO{
		mission("m1", model.GRPL, "a", 10),
		mission("m2", model.BLPL, "b", 40),
		mission("m3", model.GENERAL, "c", 20),
		mission("m4", model.RDPL, "d", 30),
	}

	got := VisibleMissions(model.GRPL, missions)

	require.Len(t, got, 2)
	assert.Equal(t, "m3", got[0].UID)
	assert.Equal(t, "m1", got[1].UID)
}

func TestVisibleMissions_DoesNotMutateInput(t *testing.T) {
	missions := []*model.MissionDTO{
		mission("m1", model.GENERAL, "a", 1),
		mission("m2", model.GENERAL, "b", 2),
	}

	_ = VisibleMissions(model.GRPL, missions)

	assert.Equal(t, "m1", missions[0].UID)
	assert.Equal(t, "m2", missions[1].UID)
}

func TestCanManage(t *testing.T) {
	m := mission("m1", model.BLPL, "creator-1", 1)

	creator := &model.UserDTO{UID: "creator-1", Platoon: model.GRPL}
	commander := &model.UserDTO{UID: "other", Platoon: model.RDPL}
	lieutenant := &model.UserDTO{UID: "other", Platoon: model.LTPG}
	bystander := &model.UserDTO{UID: "other", Platoon: model.BLPL}

	assert.True(t, CanManage(creator, m))
	assert.True(t, CanManage(commander, m))
	assert.False(t, CanManage(lieutenant, m))
	assert.False(t, CanManage(bystander, m))
	assert.False(t, CanManage(nil, m))
	assert.False(t, CanManage(creator, nil))
}

// user A (GRPL) tasks BLPL; user B (BLPL) sees it but cannot touch it;
// user C (RDPL) sees it and manages it.
func TestAlliedTaskingScenario(t *testing.T) {
	a := &model.UserDTO{UID: "a", Platoon: model.GRPL}
	b := &model.UserDTO{UID: "b", Platoon: model.BLPL}
	c := &model.UserDTO{UID: "c", Platoon: model.RDPL}

	require.True(t, CanAssignTo(a.Platoon, model.BLPL))

	m := mission("m1", model.BLPL, a.UID, 1)

	visB := VisibleMissions(b.Platoon, []*model.MissionDTO{m})
	require.Len(t, visB, 1)
	assert.False(t, CanManage(b, m))

	visC := VisibleMissions(c.Platoon, []*model.MissionDTO{m})
	require.Len(t, visC, 1)
	assert.True(t, CanManage(c, m))
}

func TestValidateSubmission(t *testing.T) {
	valid := func() *model.MissionDTO {
		return mission("m1", model.GENERAL, "a", 0)
	}

	t.Run("ok", func(t *testing.T) {
		require.NoError(t, ValidateSubmission(model.GRPL, valid(), ""))
	})

	t.Run("empty title", func(t *testing.T) {
		m := valid()
		m.Title = "  "

		err := ValidateSubmission(model.GRPL, m, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrValidation))
		assert.Contains(t, err.Error(), "MISSION TITLE")
	})

	t.Run("empty objective", func(t *testing.T) {
		m := valid()
		m.Objective = ""

		err := ValidateSubmission(model.GRPL, m, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrValidation))
		assert.Contains(t, err.Error(), "PRIMARY OBJECTIVE")
	})

	t.Run("tasking denied", func(t *testing.T) {
		m := valid()
		m.AssignedTo = model.RDPL

		err := ValidateSubmission(model.GRPL, m, "")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrNotAuthorized))
		assert.Contains(t, err.Error(), "not authorized to task RDPL")
	})

	t.Run("validation precedes tasking check", func(t *testing.T) {
		m := valid()
		m.Title = ""
		m.AssignedTo = model.RDPL

		err := ValidateSubmission(model.GRPL, m, "")
		assert.True(t, errors.Is(err, model.ErrValidation))
	})

	t.Run("grandfathered assignment kept", func(t *testing.T) {
		m := valid()
		m.AssignedTo = model.RDPL

		require.NoError(t, ValidateSubmission(model.GRPL, m, model.RDPL))
	})

	t.Run("grandfathered assignment changed", func(t *testing.T) {
		m := valid()
		m.AssignedTo = model.LTPB

		err := ValidateSubmission(model.GRPL, m, model.RDPL)
		assert.True(t, errors.Is(err, model.ErrNotAuthorized))
	})
}

func TestAssignmentOptions(t *testing.T) {
	t.Run("line platoon", func(t *testing.T) {
		opts := AssignmentOptions(model.GRPL, "")

		require.Len(t, opts, 4)

		byValue := make(map[string]Option)
		for _, o := range opts {
			byValue[o.Value] = o
		}

		assert.False(t, byValue["GENERAL"].Disabled)
		assert.False(t, byValue["GRPL"].Disabled)
		assert.False(t, byValue["BLPL"].Disabled)
		assert.True(t, byValue["RDPL"].Disabled)
	})

	t.Run("grandfathered current value", func(t *testing.T) {
		opts := AssignmentOptions(model.GRPL, model.RDPL)

		require.Len(t, opts, 5)

		last := opts[len(opts)-1]
		assert.Equal(t, "RDPL", last.Value)
		assert.Equal(t, "Red Platoon (RDPL) (Current)", last.Label)
		assert.False(t, last.Disabled)
	})

	t.Run("no duplicate for assignable current", func(t *testing.T) {
		opts := AssignmentOptions(model.GRPL, model.BLPL)

		require.Len(t, opts, 4)
	})
}

func TestRegistrationPlatoons(t *testing.T) {
	opts := RegistrationPlatoons()

	require.Len(t, opts, 3)

	for _, o := range opts {
		p := model.Platoon(o.Value)
		assert.True(t, p.Line(), "registration option %s", o.Value)
	}
}
