package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	AppDirName = "game-portal"
	FileName   = "portal.toml"

	// EnvConfigPath points at an alternative configuration file.
	EnvConfigPath = "GAME_PORTAL_CONFIG"
)

// Default values
const (
	DefaultLogLevel    = "info"
	DefaultCoverSize   = 100
	DefaultMailHost    = "smtp.gmail.com"
	DefaultMailPort    = 587
	DefaultMailSubject = "Contact from Game Portal"
	DefaultMailTimeout = 30 * time.Second

	DefaultCatalogURL     = "https://raw.githubusercontent.com/LottieVixen/GamePortal/main/games.json"
	DefaultCatalogTimeout = 5 * time.Minute
)

// Config is the on-disk configuration.
type Config struct {
	RootDir   string  `toml:"root_dir"`
	LogLevel  string  `toml:"log_level"`
	CoverSize uint    `toml:"cover_size"`
	Mail      Mail    `toml:"mail"`
	Catalog   Catalog `toml:"catalog"`
}

// Mail configures the contact form. The password lives in the secret store.
type Mail struct {
	Host     string        `toml:"host"`
	Port     int           `toml:"port"`
	From     string        `toml:"from"`
	To       string        `toml:"to"`
	Subject  string        `toml:"subject"`
	Username string        `toml:"username"`
	Timeout  time.Duration `toml:"timeout"`
}

// Catalog locates the list of downloadable games. An empty Local means
// games.json next to the configuration file.
type Catalog struct {
	Local   string        `toml:"local"`
	Remote  string        `toml:"remote"`
	Timeout time.Duration `toml:"timeout"`
}

// LocalPath resolves the local catalog file for a configuration stored at
// cfgPath.
func (c Catalog) LocalPath(cfgPath string) string {
	if c.Local != "" {
		return c.Local
	}
	return filepath.Join(filepath.Dir(cfgPath), "games.json")
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		RootDir:   DefaultRootDir(),
		LogLevel:  DefaultLogLevel,
		CoverSize: DefaultCoverSize,
		Mail: Mail{
			Host:    DefaultMailHost,
			Port:    DefaultMailPort,
			Subject: DefaultMailSubject,
			Timeout: DefaultMailTimeout,
		},
		Catalog: Catalog{
			Remote:  DefaultCatalogURL,
			Timeout: DefaultCatalogTimeout,
		},
	}
}

// DefaultRootDir is C:\nd on Windows and ~/nd elsewhere.
func DefaultRootDir() string {
	if runtime.GOOS == "windows" {
		return `C:\nd`
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "nd"
	}
	return filepath.Join(home, "nd")
}

// Path returns the configuration file location.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppDirName, FileName)
}

// Load reads the TOML file at path over the defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("parse %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("parse %s: unknown key %q", path, undecoded[0].String())
	}

	cfg.RootDir = expandHome(cfg.RootDir)
	cfg.Catalog.Local = expandHome(cfg.Catalog.Local)
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks fields that would otherwise fail much later.
func (c Config) Validate() error {
	if c.RootDir == "" {
		return errors.New("root_dir must not be empty")
	}
	if c.Mail.Port < 0 || c.Mail.Port > 65535 {
		return fmt.Errorf("mail.port %d out of range", c.Mail.Port)
	}
	if c.Mail.Timeout < 0 {
		return errors.New("mail.timeout must not be negative")
	}
	if c.Catalog.Timeout < 0 {
		return errors.New("catalog.timeout must not be negative")
	}
	return nil
}

// Save writes cfg as TOML, creating the parent directory.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[0] != '~' || (path[1] != '/' && path[1] != filepath.Separator) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
