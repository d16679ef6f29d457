package database

import "cookbook/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Category{},
		&models.Recipe{},
		&models.Comment{},
		&models.Like{},
	}
}
