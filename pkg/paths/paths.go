package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for xgappup
	EnvConfigDir = "XGAPPUP_CONFIG_DIR"

	// EnvCacheDir overrides the XDG cache directory for xgappup
	EnvCacheDir = "XGAPPUP_CACHE_DIR"

	// EnvStateHome is the XDG state base directory
	EnvStateHome = "XDG_STATE_HOME"

	// EnvMavenUserDir overrides the location of ~/.m2
	EnvMavenUserDir = "M2_HOME_DIR"
)

// Default directories and files
const (
	// AppDirName is the directory name for xgappup-specific files
	AppDirName = "xgappup"

	// ConfigFileName is the base name of the user configuration file
	ConfigFileName = "config"

	// LogFileName is the name of the log file
	LogFileName = "xgappup.log"

	// MavenDirName is the Maven user directory name under $HOME
	MavenDirName = ".m2"

	// MavenSettingsFile is the Maven user settings file name
	MavenSettingsFile = "settings.xml"

	// MavenRepositoryDir is the local repository directory under ~/.m2
	MavenRepositoryDir = "repository"
)

// Paths provides centralized path management for xgappup
type Paths struct {
	configDir string
	cacheDir  string
	stateDir  string
	mavenDir  string
}

// New resolves all directories from the environment and XDG defaults.
func New() *Paths {
	p := &Paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.cacheDir = ExpandHome(dir)
	} else {
		p.cacheDir = filepath.Join(xdg.CacheHome, AppDirName)
	}

	// xdg caches its values at init, so the state home is read directly
	if stateHome := os.Getenv(EnvStateHome); stateHome != "" {
		p.stateDir = filepath.Join(stateHome, AppDirName)
	} else {
		p.stateDir = filepath.Join(homeDir(), ".local", "state", AppDirName)
	}

	if dir := os.Getenv(EnvMavenUserDir); dir != "" {
		p.mavenDir = ExpandHome(dir)
	} else {
		p.mavenDir = filepath.Join(homeDir(), MavenDirName)
	}

	return p
}

// ConfigDir returns the xgappup configuration directory
func (p *Paths) ConfigDir() string { return p.configDir }

// CacheDir returns the xgappup cache directory
func (p *Paths) CacheDir() string { return p.cacheDir }

// StateDir returns the xgappup state directory
func (p *Paths) StateDir() string { return p.stateDir }

// ConfigFile returns the path of the user config file with the given extension (".toml", ".yaml")
func (p *Paths) ConfigFile(ext string) string {
	return filepath.Join(p.configDir, ConfigFileName+ext)
}

// LogFilePath returns the path of the log file
func (p *Paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// MavenSettingsPath returns the default Maven user settings.xml
func (p *Paths) MavenSettingsPath() string {
	return filepath.Join(p.mavenDir, MavenSettingsFile)
}

// MavenLocalRepository returns the default Maven local repository
func (p *Paths) MavenLocalRepository() string {
	return filepath.Join(p.mavenDir, MavenRepositoryDir)
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
