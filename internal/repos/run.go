package repos

import (
	"gorm.io/gorm"

	"github.com/petuhovskiy/wrand/internal/models"
)

type RunRepo struct {
	db *gorm.DB
}

func NewRunRepo(db *gorm.DB) *RunRepo {
	return &RunRepo{
		db: db,
	}
}

// Save run with its outcomes to the database.
func (r *RunRepo) Save(run *models.Run) error {
	return r.db.Save(run).Error
}

func (r *RunRepo) FetchLastRuns(node string, limit int) ([]models.Run, error) {
	var runs []models.Run
	err := r.db.
		Preload("Outcomes").
		Where("node = ?", node).
		Order("id DESC").
		Limit(limit).
		Find(&runs).
		Error

	return runs, err
}
