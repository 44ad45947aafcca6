package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Event{},
		&Registration{},
		&Submission{},
		&SubmissionMember{},
		&Vote{},
		&Organization{},
		&OrgMember{},
		&Invitation{},
		&Application{},
	)
}
