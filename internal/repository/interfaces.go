package repository

import (
	"github.com/brm5/taccom/internal/model"
)

type UserRepository interface {
	Start() error
	Stop()
	CheckAuth(username, password string) bool
	Get(username string) *model.User
	GetByUID(uid string) *model.User
	Register(username, password, name string, platoon model.Platoon) (*model.User, error)
	ForEach(f func(u *model.User) bool)
}
