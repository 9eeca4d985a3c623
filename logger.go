package hashsession

import (
	"os"

	"github.com/sirupsen/logrus"
)

// LogLevelEnv names the environment variable that sets the level of Logger.
const LogLevelEnv = "LOG"

var (
	log = logrus.New()
	// Logger is the default logger for sessions that were not given one with WithLogger.
	Logger = log
)

func init() {
	if level, ok := levelFromEnv(LogLevelEnv); ok {
		Logger.SetLevel(level)
	}
}

func levelFromEnv(key string) (logrus.Level, bool) {
	x, exists := os.LookupEnv(key)
	if !exists {
		return 0, false
	}
	level, err := logrus.ParseLevel(x)
	if err != nil {
		log.Warnf("ignoring %s=%q: %v", key, x, err)
		return 0, false
	}
	return level, true
}
