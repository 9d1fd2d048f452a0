package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
)

// Values of the color setting.
const (
	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	// configurationDir is the directory the file was loaded from; relative
	// paths are resolved against it.
	configurationDir string

	Prompt       string `json:"prompt" validate:"required"`
	Color        string `json:"color" validate:"oneof=always auto never"`
	HistoryFile  string `json:"history_file"`
	HistoryLimit int    `json:"history_limit" validate:"gte=0"`
	EventLog     string `json:"event_log"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// HistoryPath returns the absolute path of the history file, or the empty
// string if history is disabled.
func (c *Configuration) HistoryPath() (string, error) {
	return c.resolve(c.HistoryFile)
}

// EventLogPath returns the absolute path of the event log, or the empty
// string if event logging is disabled.
func (c *Configuration) EventLogPath() (string, error) {
	return c.resolve(c.EventLog)
}

// OpenEventLog opens the event log for appending. It returns a nil file if
// the event log is disabled.
func (c *Configuration) OpenEventLog(fs afero.Fs) (afero.File, error) {
	path, err := c.EventLogPath()
	if err != nil || path == "" {
		return nil, err
	}
	return fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// resolve expands a leading ~ to the home directory and makes path absolute
// relative to the directory the configuration was loaded from. Child
// processes may run in other directories so every path is made absolute.
func (c *Configuration) resolve(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	path, err := ExpandHome(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(path) && c.configurationDir != "" {
		path = filepath.Join(c.configurationDir, path)
	}
	return filepath.Abs(path)
}

// ExpandHome replaces a leading "~" or "~/" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

// Default returns the built in configuration.
func Default() *Configuration {
	return defaultConfig()
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
