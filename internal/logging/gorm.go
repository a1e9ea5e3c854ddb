package logging

import (
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm/logger"
)

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Msgf(format, args...)
}

// GORM routes GORM's own logging through zerolog. Only slow queries and
// errors are reported.
func GORM(log zerolog.Logger, slowThreshold time.Duration) logger.Interface {
	return logger.New(
		gormWriter{log: Component(log, "db")},
		logger.Config{
			SlowThreshold:             slowThreshold,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)
}
