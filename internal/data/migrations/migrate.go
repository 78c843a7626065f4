package migrations

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	catalogdata "studylog/app/internal/data/catalog"
	progressdata "studylog/app/internal/data/progress"
)

// Migrate applies the catalog and ledger schema using Gorm's AutoMigrate and
// logs progress.
func Migrate(ctx context.Context, db *gorm.DB, logger *logrus.Logger) error {
	if db == nil {
		return eris.New("gorm DB is required")
	}

	logFields := logrus.Fields{"component": "migrations"}
	if logger != nil {
		logger.WithFields(logFields).Info("applying catalog and ledger schema")
	}

	if err := db.WithContext(ctx).AutoMigrate(&catalogdata.TopicRecord{}, &progressdata.EntryRecord{}); err != nil {
		if logger != nil {
			logger.WithFields(logFields).WithField("error", err.Error()).Error("schema migration failed")
		}
		return eris.Wrap(err, "auto migrating catalog and ledger schema")
	}

	if logger != nil {
		logger.WithFields(logFields).Info("schema migration complete")
	}

	return nil
}
