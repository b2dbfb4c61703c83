package repository

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/brm5/taccom/internal/model"
)

var _ UserRepository = &UserFileRepository{}

// UserFileRepository keeps operator accounts in a yaml file. The file
// is reloaded on external modification, so accounts provisioned by the
// admin tooling show up without a restart. Registration writes the
// whole file back; the watcher-triggered reload after our own write is
// harmless.
type UserFileRepository struct {
	userFile string
	logger   *slog.Logger
	users    map[string]*model.User

	watcher *fsnotify.Watcher

	mx sync.RWMutex
}

func NewFileUserRepo(userFile string) *UserFileRepository {
	um := &UserFileRepository{
		logger:   slog.Default().With("logger", "UserManager"),
		userFile: userFile,
		users:    make(map[string]*model.User),
		mx:       sync.RWMutex{},
	}

	if err := um.loadUsersFile(); err != nil {
		um.logger.Error("error loading users file", slog.Any("error", err))
	}

	return um
}

func (r *UserFileRepository) loadUsersFile() error {
	r.mx.Lock()
	defer r.mx.Unlock()

	if _, err := os.Lstat(r.userFile); os.IsNotExist(err) {
		// create empty file
		f, err := os.Create(r.userFile)
		if err != nil {
			return err
		}

		return f.Close()
	}

	dat, err := os.ReadFile(r.userFile)
	if err != nil {
		return err
	}

	users := make([]*model.User, 0)

	if err := yaml.Unmarshal(dat, &users); err != nil {
		return err
	}

	r.users = make(map[string]*model.User)

	for _, user := range users {
		if user.Login != "" {
			r.users[user.Login] = user
		}
	}

	return nil
}

func (r *UserFileRepository) saveUsersFile() error {
	users := make([]*model.User, 0, len(r.users))

	for _, u := range r.users {
		users = append(users, u)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].Login < users[j].Login })

	dat, err := yaml.Marshal(users)
	if err != nil {
		return err
	}

	return os.WriteFile(r.userFile, dat, 0o600)
}

func (r *UserFileRepository) Start() error {
	var err error
	r.watcher, err = fsnotify.NewWatcher()

	if err != nil {
		return err
	}

	if err := r.watcher.Add(r.userFile); err != nil {
		return err
	}

	go func() {
		for {
			select {
			case event, ok := <-r.watcher.Events:
				if !ok {
					return
				}

				r.logger.Debug(fmt.Sprintf("event: %v", event))

				if event.Has(fsnotify.Write) && event.Name == r.userFile {
					r.logger.Info("users file is modified, reloading")

					if err := r.loadUsersFile(); err != nil {
						r.logger.Error("error", slog.Any("error", err))
					}
				}
			case err, ok := <-r.watcher.Errors:
				if !ok {
					return
				}

				r.logger.Error("error", slog.Any("error", err))
			}
		}
	}()

	return nil
}

func (r *UserFileRepository) Stop() {
	if r.watcher != nil {
		_ = r.watcher.Close()
	}
}

func (r *UserFileRepository) CheckAuth(username, password string) bool {
	r.mx.RLock()
	defer r.mx.RUnlock()

	if user, ok := r.users[username]; ok && !user.Disabled {
		return user.CheckPassword(password)
	}

	return false
}

func (r *UserFileRepository) Get(username string) *model.User {
	r.mx.RLock()
	defer r.mx.RUnlock()

	return r.users[username]
}

func (r *UserFileRepository) GetByUID(uid string) *model.User {
	r.mx.RLock()
	defer r.mx.RUnlock()

	for _, u := range r.users {
		if u.UID == uid {
			return u
		}
	}

	return nil
}

// Register creates a new line-platoon account. The login must be
// unused; on conflict the stored account is left untouched.
func (r *UserFileRepository) Register(username, password, name string, platoon model.Platoon) (*model.User, error) {
	if username == "" || password == "" || name == "" || !platoon.Line() {
		return nil, model.ErrValidation
	}

	r.mx.Lock()
	defer r.mx.Unlock()

	if _, ok := r.users[username]; ok {
		return nil, model.ErrConflict
	}

	user := &model.User{
		Login:   username,
		UID:     uuid.NewString(),
		Name:    name,
		Platoon: platoon,
	}

	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	r.users[username] = user

	if err := r.saveUsersFile(); err != nil {
		delete(r.users, username)
		r.logger.Error("error saving users file", slog.Any("error", err))

		return nil, err
	}

	r.logger.Info("new operator registered", slog.String("login", username), slog.String("platoon", string(platoon)))

	return user, nil
}

func (r *UserFileRepository) ForEach(f func(u *model.User) bool) {
	r.mx.RLock()
	defer r.mx.RUnlock()

	for _, u := range r.users {
		if !f(u) {
			return
		}
	}
}
