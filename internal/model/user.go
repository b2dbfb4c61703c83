package model

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 14

// User is a users file record. The password field holds a bcrypt hash,
// never the cleartext.
type User struct {
	Login    string  `yaml:"user"`
	UID      string  `yaml:"uid"`
	Name     string  `yaml:"name,omitempty"`
	Platoon  Platoon `yaml:"platoon"`
	Password string  `yaml:"password"`
	Disabled bool    `yaml:"disabled,omitempty"`
}

// UserDTO is the wire form of a user. It never carries the password.
type UserDTO struct {
	UID     string  `json:"id"`
	Login   string  `json:"username"`
	Name    string  `json:"name"`
	Platoon Platoon `json:"platoon"`
}

func (u *User) GetLogin() string {
	if u == nil {
		return ""
	}

	return u.Login
}

func (u *User) GetUID() string {
	if u == nil {
		return ""
	}

	return u.UID
}

func (u *User) GetPlatoon() Platoon {
	if u == nil {
		return ""
	}

	return u.Platoon
}

func (u *User) CheckPassword(password string) bool {
	if u == nil {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	if err != nil {
		slog.Debug("password check failed", slog.Any("error", err))
		return false
	}

	return true
}

func (u *User) SetPassword(password string) error {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return err
	}

	u.Password = string(b)

	return nil
}

func (u *User) DTO() *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		UID:     u.UID,
		Login:   u.Login,
		Name:    u.Name,
		Platoon: u.Platoon,
	}
}
