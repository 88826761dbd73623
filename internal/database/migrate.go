package database

import (
	transrepo "github.com/voxatu/scribe/internal/repository/transcription"
	"gorm.io/gorm"
)

func MigrateDB(db *gorm.DB) error {
	return db.AutoMigrate(
		&transrepo.TranscriptionEntity{},
	)
}
