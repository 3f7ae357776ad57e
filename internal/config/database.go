package config

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"recruitops/pipeline-api/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := cfg.GetDatabaseDSN()

	logLevel := logger.Silent
	if cfg.Server.Env == "development" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.Println("Database connected")

	if err := db.AutoMigrate(
		&models.Candidate{},
		&models.InterviewRecord{},
		&models.AssessmentRecord{},
		&models.BackgroundRecord{},
		&models.OfferRecord{},
		&models.JobPosting{},
		&models.CandidateJob{},
		&models.DictionaryEntry{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := seedDictionary(db); err != nil {
		return nil, fmt.Errorf("failed to seed dictionary: %w", err)
	}

	return db, nil
}

// defaultDictionary lists the entries each category starts with. Operators
// edit them afterwards through the dictionary endpoints; the first entry of
// each category is its default.
var defaultDictionary = map[string][]string{
	models.CategoryCandidateStatus: {
		models.CandidateStatusNew,
		models.CandidateStatusPendingAssessment,
		models.CandidateStatusAssessment,
		models.CandidateStatusPendingInterview,
		models.CandidateStatusInterview,
		models.CandidateStatusBackgroundCheck,
		models.CandidateStatusPendingOffer,
		models.CandidateStatusOffer,
		models.CandidateStatusHired,
		models.CandidateStatusRejected,
	},
	models.CategoryInterviewStatus: {
		models.InterviewStatusScheduled,
		models.InterviewStatusInProgress,
		models.InterviewStatusCompleted,
		models.InterviewStatusCancelled,
	},
	models.CategoryInterviewConclusion: {
		models.ConclusionUndecided,
		models.ConclusionPass,
		models.ConclusionReject,
	},
	models.CategoryInterviewMethod: {
		"onsite",
		"video",
		"phone",
	},
	models.CategoryAssessmentStatus: {
		models.AssessmentStatusPending,
		models.AssessmentStatusPassed,
		models.AssessmentStatusFailed,
	},
	models.CategoryBackgroundStatus: {
		models.BackgroundStatusPending,
		models.BackgroundStatusCleared,
		models.BackgroundStatusFlagged,
	},
	models.CategoryOfferStatus: {
		models.OfferStatusExtended,
		models.OfferStatusAccepted,
		models.OfferStatusDeclined,
	},
}

// seedDictionary fills empty categories so ResolveDefault never fails on a
// fresh database.
func seedDictionary(db *gorm.DB) error {
	for category, names := range defaultDictionary {
		var count int64
		if err := db.Model(&models.DictionaryEntry{}).
			Where("category = ?", category).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		for order, name := range names {
			entry := models.DictionaryEntry{
				Category:     category,
				Name:         name,
				DisplayOrder: order,
			}
			if err := db.Create(&entry).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
