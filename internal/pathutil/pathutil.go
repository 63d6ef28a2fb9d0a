// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"

	"github.com/ayoisaiah/focustodo/internal/osutil"
	"github.com/ayoisaiah/focustodo/store"
)

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dataDir        string
	logFilePath    string
}

var (
	paths   *Paths
	once    sync.Once
	initErr error
)

// Initialize computes the application paths. Only the first call has any
// effect.
func Initialize() error {
	once.Do(func() {
		p := &Paths{
			configDir:      "focustodo",
			configFileName: "config.yml",
			dbFileName:     "focustodo",
			logFileName:    "focustodo.log",
		}

		p.applyEnvironmentOverrides()

		initErr = p.computePaths()
		if initErr == nil {
			paths = p
		}
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

// Dir is the name of the application directory inside the XDG base
// directories.
func Dir() string {
	return Must().configDir
}

// ConfigFilePath is the location of the YAML config file.
func ConfigFilePath() string {
	return Must().configFilePath
}

// DBFilePath is the location of the database for the given backend.
func DBFilePath(backend string) string {
	p := Must()

	ext := ".db"
	if backend == store.BackendSQLite {
		ext = ".sqlite"
	}

	return filepath.Join(p.dataDir, p.dbFileName+ext)
}

// LogFilePath is the location of the log file.
func LogFilePath() string {
	return Must().logFilePath
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv("FOCUSTODO_ENV"))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbFileName = fmt.Sprintf("focustodo_%s", env)
		p.logFileName = fmt.Sprintf("focustodo_%s.log", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.configDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	p.dataDir = filepath.Join(xdg.DataHome, p.configDir)

	err = os.MkdirAll(p.dataDir, osutil.DirPermission)
	if err != nil {
		return err
	}

	p.logFilePath = filepath.Join(p.dataDir, "log", p.logFileName)

	return nil
}
