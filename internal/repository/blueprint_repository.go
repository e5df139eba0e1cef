package repository

import (
	"medblueprint_backend/internal/model"

	"gorm.io/gorm"
)

type BlueprintRepository struct {
	DB *gorm.DB
}

func NewBlueprintRepository(db *gorm.DB) *BlueprintRepository {
	return &BlueprintRepository{DB: db}
}

func (r *BlueprintRepository) Create(b *model.Blueprint) error {
	return r.DB.Create(b).Error
}

func (r *BlueprintRepository) FindByID(sessionID, id string) (*model.Blueprint, error) {
	var b model.Blueprint
	err := r.DB.Where("session_id = ?", sessionID).First(&b, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BlueprintRepository) ListBySession(sessionID string, page, limit int) ([]model.Blueprint, int64, error) {
	var bs []model.Blueprint
	var total int64
	query := r.DB.Model(&model.Blueprint{}).Where("session_id = ?", sessionID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&bs).Error
	return bs, total, err
}
