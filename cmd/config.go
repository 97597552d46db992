package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "dupscan"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	pathFlagName     = "path"
	ignoreFlagName   = "ignore"
	logFlagName      = "log"
	parallelFlagName = "parallel"

	scanPathConfigKey     = "scan.path"
	scanIgnoreConfigKey   = "scan.ignore_small"
	scanParallelConfigKey = "scan.parallel"

	defaultScanIgnore   = false
	defaultScanParallel = 1

	envPrefix = "DUPSCAN"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".dupscan.log"
	defaultLogLevel      = "info"
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

// errUnknownLogLevel reports an unrecognized --log value.
var errUnknownLogLevel = errors.New("unknown log level")

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(scanPathConfigKey, os.TempDir())
	viper.SetDefault(scanIgnoreConfigKey, defaultScanIgnore)
	viper.SetDefault(scanParallelConfigKey, defaultScanParallel)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

// parseSlogLevel maps a --log value onto a slog level. Numeric slog levels
// are accepted as well (e.g. -4 for debug). Unrecognized values are an
// error so the CLI can refuse them before scanning starts.
func parseSlogLevel(value string) (slog.Level, error) {
	level := strings.ToLower(strings.TrimSpace(value))

	switch level {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}

	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n), nil
	}

	return 0, fmt.Errorf("%w: %s", errUnknownLogLevel, value)
}

// configureLogger configures the global slog logger writing through the
// rotating log file. The --log flag wins over the log.level config key.
func configureLogger(levelValue string) error {
	if strings.TrimSpace(levelValue) == "" {
		levelValue = viper.GetString(logLevelKey)
	}

	logLevel, err := parseSlogLevel(levelValue)
	if err != nil {
		return err
	}

	logWriter := &lumberjack.Logger{
		Filename:   viper.GetString(logFilenameKey),
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)

	return nil
}
