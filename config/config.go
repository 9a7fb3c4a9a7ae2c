package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SysConfig holds process-wide settings.
type SysConfig struct {
	Appid    string `yaml:"appid"`
	Location string `yaml:"location"`
	Workdir  string `yaml:"workdir"`
	// Passkey gates lookup-list administration. It is presentational
	// friction for a single-user tool, not a security boundary.
	Passkey string `yaml:"passkey"`
	Debug   bool   `yaml:"debug"`
}

type WebConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Debug bool   `yaml:"debug"`
}

// StorageConfig locates the bbolt database holding records, settings
// and photo blobs.
type StorageConfig struct {
	Filename string `yaml:"filename"`
}

// DBConfig configures the optional archive mirror. When Enabled is
// false no database connection is opened.
type DBConfig struct {
	Enabled bool   `yaml:"enabled"`
	Type    string `yaml:"type"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	Name    string `yaml:"name"`
	User    string `yaml:"user"`
	Passwd  string `yaml:"passwd"`
	Debug   bool   `yaml:"debug"`
}

// ForwardConfig configures the optional HTTP submission path. An empty
// endpoint disables forwarding.
type ForwardConfig struct {
	Endpoint string `yaml:"endpoint"`
	Timeout  int    `yaml:"timeout"`
}

type LogConfig struct {
	Mode       string `yaml:"mode"`
	FileEnable bool   `yaml:"file_enable"`
	Filename   string `yaml:"filename"`
}

type AppConfig struct {
	System  SysConfig     `yaml:"system"`
	Web     WebConfig     `yaml:"web"`
	Storage StorageConfig `yaml:"storage"`
	Database DBConfig     `yaml:"database"`
	Forward ForwardConfig `yaml:"forward"`
	Logger  LogConfig     `yaml:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "repairdesk",
		Location: "Asia/Shanghai",
		Workdir:  "/var/repairdesk",
		Passkey:  "2580",
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1899,
	},
	Storage: StorageConfig{
		Filename: "repairdesk.db",
	},
	Database: DBConfig{
		Enabled: false,
		Type:    "sqlite",
		Name:    "repairdesk_archive.db",
	},
	Forward: ForwardConfig{
		Endpoint: "",
		Timeout:  10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/repairdesk/repairdesk.log",
	},
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "exports"), 0755)
}

// StoragePath returns the absolute path of the bbolt database file.
func (c *AppConfig) StoragePath() string {
	if filepath.IsAbs(c.Storage.Filename) {
		return c.Storage.Filename
	}
	return filepath.Join(c.System.Workdir, "data", c.Storage.Filename)
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

// LoadConfig reads the yaml configuration file, falling back to
// defaults when the file is absent, then applies environment overrides.
func LoadConfig(cfile string) *AppConfig {
	if cfile == "" {
		cfile = "repairdesk.yml"
	}
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if data, err := os.ReadFile(cfile); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			*cfg = *DefaultAppConfig
		}
	}

	setEnvValue("REPAIRDESK_SYSTEM_WORKDIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("REPAIRDESK_SYSTEM_PASSKEY", func(v string) { cfg.System.Passkey = v })
	setEnvValue("REPAIRDESK_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("REPAIRDESK_STORAGE_FILENAME", func(v string) { cfg.Storage.Filename = v })
	setEnvValue("REPAIRDESK_FORWARD_ENDPOINT", func(v string) { cfg.Forward.Endpoint = v })
	setEnvValue("REPAIRDESK_LOGGER_MODE", func(v string) { cfg.Logger.Mode = v })
	return cfg
}

// WriteDefault writes a default configuration file for -initcfg.
func WriteDefault(cfile string) error {
	data, err := yaml.Marshal(DefaultAppConfig)
	if err != nil {
		return err
	}
	return os.WriteFile(cfile, data, 0644)
}
