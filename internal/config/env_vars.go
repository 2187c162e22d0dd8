package config

import "strings"

type EnvVars struct {
	AppName  string `yaml:"name" env:"APP_NAME" env-default:"SchoolGestApp"`
	Env      string `yaml:"env" env:"ENV" env-default:"DEV"`
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return strings.ToUpper(e.Env)
}

func (e EnvVars) GetLogLevel() string {
	return e.LogLevel
}

func (e EnvVars) IsDev() bool {
	return e.GetEnv() == "DEV"
}

type Store struct {
	Folder      string `yaml:"folder" env:"FOLDER" env-default:"./data"`
	SessionFile string `yaml:"session_file" env:"SESSION_FILE" env-default:"session.json"`
}

var _ StoreConfig = Store{}

func (s Store) GetDataFolder() string {
	return s.Folder
}

func (s Store) GetSessionFile() string {
	return s.SessionFile
}
