package bootstrap

import (
	"anoa.com/kitaplik/internal/catalog"
	"anoa.com/kitaplik/internal/entity"
	"anoa.com/kitaplik/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Models lists every persisted entity in migration order.
func Models() []interface{} {
	return []interface{}{
		&entity.User{},
		&entity.Friendship{},
		&entity.Category{},
		&entity.Book{},
		&entity.UserBook{},
		&entity.ReadingGoal{},
		&entity.ActivityRecord{},
		&entity.XPLog{},
		&entity.QuestProgress{},
		&entity.Badge{},
		&entity.UserBadge{},
		&entity.Duel{},
		&entity.Gift{},
		&entity.TriviaQuestion{},
		&entity.Notification{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// SeedBadges inserts catalog badges that do not exist yet. Existing rows keep
// their ids so earned badges stay attached.
func SeedBadges(db *gorm.DB, cat *catalog.Catalog) error {
	for _, b := range cat.Badges {
		badge := entity.Badge{Name: b.Name, Description: b.Description, Icon: b.Icon}
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "icon"}),
		}).Create(&badge).Error
		if err != nil {
			return err
		}
	}
	return nil
}

// SeedTrivia fills an empty trivia pool from the catalog.
func SeedTrivia(db *gorm.DB, cat *catalog.Catalog) error {
	var count int64
	if err := db.Model(&entity.TriviaQuestion{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 || len(cat.Trivia) == 0 {
		return nil
	}

	questions := make([]entity.TriviaQuestion, 0, len(cat.Trivia))
	for _, t := range cat.Trivia {
		questions = append(questions, entity.TriviaQuestion{
			Question:    t.Question,
			Options:     t.Options,
			AnswerIndex: t.Answer,
		})
	}
	return db.Create(&questions).Error
}

func SeedAdminUser(db *gorm.DB, log *logger.Logger) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("username = ?", "admin").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Debug("admin user already exists, skipping seed")
		return nil
	}

	if err := db.Create(&entity.User{Username: "admin", Role: entity.RoleAdmin}).Error; err != nil {
		return err
	}
	log.Info("admin user seeded")
	return nil
}

// Run migrates the schema and applies every seed.
func Run(db *gorm.DB, cat *catalog.Catalog, log *logger.Logger) error {
	if err := Migrate(db); err != nil {
		return err
	}
	if err := SeedBadges(db, cat); err != nil {
		return err
	}
	if err := SeedTrivia(db, cat); err != nil {
		return err
	}
	return SeedAdminUser(db, log)
}
