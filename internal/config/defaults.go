package config

const (
	defaultConfigPath      = "~/.config/skillsetl/config.toml"
	projectConfigName      = "skillsetl.toml"
	defaultInputDir        = "~/.local/share/skillsetl/input"
	defaultIntermediateDir = "~/.local/share/skillsetl/stage2"
	defaultOutputDir       = "~/.local/share/skillsetl/output"
	defaultLogDir          = "~/.local/share/skillsetl/logs"
	defaultLedgerFile      = "ledger.db"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultLedgerEnabled   = true
	defaultStrictSkills    = true
)

// Environment variables consulted when the matching setting is absent from
// the config file.
const (
	EnvInputDir  = "SKILLSETL_INPUT_DIR"
	EnvOutputDir = "SKILLSETL_OUTPUT_DIR"
	EnvLogLevel  = "SKILLSETL_LOG_LEVEL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			IntermediateDir: defaultIntermediateDir,
			LogDir:          defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
		},
		Ledger: Ledger{
			Enabled: defaultLedgerEnabled,
		},
		Reconcile: Reconcile{
			StrictSkills: defaultStrictSkills,
		},
	}
}
