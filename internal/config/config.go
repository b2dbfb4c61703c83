package config

import (
	"log/slog"

	"github.com/spf13/viper"
)

// AppConfig is a thin wrapper over a viper instance with the server
// defaults applied.
type AppConfig struct {
	v *viper.Viper
}

func NewAppConfig() *AppConfig {
	v := viper.New()

	v.SetDefault("api_addr", ":8080")
	v.SetDefault("admin_addr", "localhost:8088")
	v.SetDefault("db", "missions.sqlite")
	v.SetDefault("users_file", "users.yml")
	v.SetDefault("debug", false)

	return &AppConfig{v: v}
}

// Load reads the named yaml config file. A missing file is not fatal,
// defaults and env values still apply.
func (c *AppConfig) Load(filename string) bool {
	c.v.SetConfigFile(filename)

	if err := c.v.ReadInConfig(); err != nil {
		slog.Info("error loading config: " + err.Error())
		return false
	}

	return true
}

func (c *AppConfig) BindEnv(prefix string) {
	c.v.SetEnvPrefix(prefix)
	c.v.AutomaticEnv()
}

func (c *AppConfig) ApiAddr() string {
	return c.v.GetString("api_addr")
}

func (c *AppConfig) AdminAddr() string {
	return c.v.GetString("admin_addr")
}

func (c *AppConfig) DB() string {
	return c.v.GetString("db")
}

func (c *AppConfig) UsersFile() string {
	return c.v.GetString("users_file")
}

func (c *AppConfig) Debug() bool {
	return c.v.GetBool("debug")
}

func (c *AppConfig) Set(key string, value any) {
	c.v.Set(key, value)
}
