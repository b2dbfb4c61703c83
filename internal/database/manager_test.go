package database

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/brm5/taccom/internal/model"
)

func getTestDatabase() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		panic("failed to connect database")
	}

	db.AutoMigrate(&model.Mission{})

	return db
}

func newMission(uid string) *model.Mission {
	return &model.Mission{
		UID:            uid,
		Title:          "OPERATION RED DRAGON",
		Scenario:       model.ASSAULT,
		AssignedTo:     model.BLPL,
		Objective:      "secure the bridge",
		CreatorUID:     "user-1",
		CreatorPlatoon: model.GRPL,
	}
}

func TestSaveMission_Create(t *testing.T) {
	mm := New(getTestDatabase())

	saved, err := mm.SaveMission(newMission("m-1"))
	require.NoError(t, err)

	require.False(t, saved.CreateTime.IsZero())
	require.Equal(t, saved.CreateTime, saved.LastEdit)
	require.Equal(t, "user-1", saved.CreatorUID)
	require.Equal(t, model.GRPL, saved.CreatorPlatoon)

	require.EqualValues(t, 1, mm.MissionQuery().Count())
}

func TestSaveMission_UpdatePreservesCreationData(t *testing.T) {
	mm := New(getTestDatabase())

	first, err := mm.SaveMission(newMission("m-1"))
	require.NoError(t, err)

	time.Sleep(time.Millisecond * 10)

	second := newMission("m-1")
	second.Title = "OPERATION BLUE FALCON"
	second.AssignedTo = model.GENERAL
	second.CreatorUID = "intruder"
	second.CreatorPlatoon = model.RDPL

	saved, err := mm.SaveMission(second)
	require.NoError(t, err)

	require.Equal(t, first.ID, saved.ID)
	require.Equal(t, "user-1", saved.CreatorUID)
	require.Equal(t, model.GRPL, saved.CreatorPlatoon)
	require.Equal(t, first.CreateTime.UnixMilli(), saved.CreateTime.UnixMilli())
	require.True(t, saved.LastEdit.After(first.LastEdit))

	require.Equal(t, "OPERATION BLUE FALCON", saved.Title)
	require.Equal(t, model.GENERAL, saved.AssignedTo)
	require.EqualValues(t, 1, mm.MissionQuery().Count())
}

func TestDeleteMission(t *testing.T) {
	mm := New(getTestDatabase())

	_, err := mm.SaveMission(newMission("m-1"))
	require.NoError(t, err)

	require.NoError(t, mm.DeleteMission("m-1"))
	require.EqualValues(t, 0, mm.MissionQuery().Count())

	// unknown uid is not an error
	require.NoError(t, mm.DeleteMission("m-1"))
	require.NoError(t, mm.DeleteMission("never-existed"))
}

func TestMissionQuery_Order(t *testing.T) {
	mm := New(getTestDatabase())

	for _, uid := range []string{"m-1", "m-2", "m-3"} {
		_, err := mm.SaveMission(newMission(uid))
		require.NoError(t, err)

		time.Sleep(time.Millisecond * 5)
	}

	res := mm.MissionQuery().Get()

	require.Len(t, res, 3)
	require.Equal(t, "m-3", res[0].UID)
	require.Equal(t, "m-1", res[2].UID)
}

func TestMissionQuery_Filters(t *testing.T) {
	mm := New(getTestDatabase())

	m1 := newMission("m-1")
	m2 := newMission("m-2")
	m2.AssignedTo = model.GENERAL
	m2.CreatorUID = "user-2"

	_, err := mm.SaveMission(m1)
	require.NoError(t, err)
	_, err = mm.SaveMission(m2)
	require.NoError(t, err)

	require.NotNil(t, mm.MissionQuery().UID("m-1").One())
	require.Nil(t, mm.MissionQuery().UID("m-9").One())

	require.Len(t, mm.MissionQuery().AssignedTo(model.GENERAL).Get(), 1)
	require.Len(t, mm.MissionQuery().Creator("user-2").Get(), 1)
}
