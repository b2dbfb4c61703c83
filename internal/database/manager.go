package database

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/brm5/taccom/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	return &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	return mm.db.AutoMigrate(&model.Mission{})
}

func (mm *DatabaseManager) MissionQuery() *MissionQuery {
	if mm == nil {
		return nil
	}

	return NewMissionQuery(mm.db)
}

// SaveMission is an upsert keyed by mission UID. A new UID gets
// CreateTime == LastEdit == now and stores the supplied creator data.
// An existing UID keeps its ID, CreatorUID, CreatorPlatoon and
// CreateTime from the stored record; all other fields are replaced and
// LastEdit is stamped. The saved record is returned.
func (mm *DatabaseManager) SaveMission(m *model.Mission) (*model.Mission, error) {
	if mm == nil || mm.db == nil {
		return nil, fmt.Errorf("no database")
	}

	now := time.Now()

	old := mm.MissionQuery().UID(m.UID).One()

	if old == nil {
		m.ID = 0
		m.CreateTime = now
		m.LastEdit = now

		if err := mm.db.Create(m).Error; err != nil {
			mm.logger.Error("mission create error", slog.Any("error", err))
			return nil, err
		}

		return m, nil
	}

	m.ID = old.ID
	m.CreatorUID = old.CreatorUID
	m.CreatorPlatoon = old.CreatorPlatoon
	m.CreateTime = old.CreateTime
	m.LastEdit = now

	if err := mm.db.Save(m).Error; err != nil {
		mm.logger.Error("mission save error", slog.Any("error", err))
		return nil, err
	}

	return m, nil
}

// DeleteMission removes the mission with the given UID. Deleting an
// unknown UID is not an error.
func (mm *DatabaseManager) DeleteMission(uid string) error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	if err := mm.db.Where("uid = ?", uid).Delete(&model.Mission{}).Error; err != nil {
		mm.logger.Error("mission delete error", slog.Any("error", err))
		return err
	}

	return nil
}
