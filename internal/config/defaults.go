package config

const (
	defaultConfigPath         = "~/.config/discshelf/config.toml"
	projectConfigName         = "discshelf.toml"
	defaultWorkbookFormat     = "auto"
	defaultBackupCount        = 3
	defaultLockTimeoutSeconds = 10
	defaultSaveTimeoutSeconds = 30
	defaultJournalEnabled     = true
	defaultJournalPath        = "~/.local/share/discshelf/journal.db"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultLogDir             = "~/.local/share/discshelf/logs"

	workbookEnvVar = "DISCSHELF_WORKBOOK"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Workbook: Workbook{
			Format:             defaultWorkbookFormat,
			BackupCount:        defaultBackupCount,
			LockTimeoutSeconds: defaultLockTimeoutSeconds,
			SaveTimeoutSeconds: defaultSaveTimeoutSeconds,
		},
		Journal: Journal{
			Enabled: defaultJournalEnabled,
			Path:    defaultJournalPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			Dir:    defaultLogDir,
		},
	}
}
