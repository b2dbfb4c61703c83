package database

import (
	"gorm.io/gorm"

	"github.com/brm5/taccom/internal/model"
)

type MissionQuery struct {
	Query[model.Mission]
	uid        string
	assignedTo model.Platoon
	creatorUID string
}

func NewMissionQuery(db *gorm.DB) *MissionQuery {
	return &MissionQuery{
		Query: Query[model.Mission]{
			db:     db,
			limit:  0,
			offset: 0,
			order:  "missions.last_edit desc",
		},
	}
}

func (q *MissionQuery) Order(s string) *MissionQuery {
	if q == nil {
		return nil
	}

	q.order = s
	return q
}

func (q *MissionQuery) Limit(n int) *MissionQuery {
	if q == nil {
		return nil
	}

	q.limit = n
	return q
}

func (q *MissionQuery) Offset(n int) *MissionQuery {
	if q == nil {
		return nil
	}

	q.offset = n
	return q
}

func (q *MissionQuery) UID(uid string) *MissionQuery {
	if q == nil {
		return nil
	}

	q.uid = uid
	return q
}

func (q *MissionQuery) AssignedTo(p model.Platoon) *MissionQuery {
	if q == nil {
		return nil
	}

	q.assignedTo = p
	return q
}

func (q *MissionQuery) Creator(uid string) *MissionQuery {
	if q == nil {
		return nil
	}

	q.creatorUID = uid
	return q
}

func (q *MissionQuery) where() *gorm.DB {
	tx := q.db

	if q.uid != "" {
		tx = tx.Where("missions.uid = ?", q.uid)
	}

	if q.assignedTo != "" {
		tx = tx.Where("missions.assigned_to = ?", q.assignedTo)
	}

	if q.creatorUID != "" {
		tx = tx.Where("missions.creator_uid = ?", q.creatorUID)
	}

	return tx
}

func (q *MissionQuery) Get() []*model.Mission {
	return q.get(q.where().Model(&model.Mission{}))
}

func (q *MissionQuery) One() *model.Mission {
	return q.one(q.where().Model(&model.Mission{}))
}

func (q *MissionQuery) Count() int64 {
	return q.count(q.where().Model(&model.Mission{}))
}
