package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/agenda-online/internal/models"
	"github.com/BruksfildServices01/agenda-online/internal/usecase/catalog"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Professionals
// --------------------------------------------------

func (r *CatalogGormRepository) ListProfessionals(ctx context.Context) ([]models.Professional, error) {
	var out []models.Professional
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) ListActiveProfessionals(ctx context.Context) ([]models.Professional, error) {
	var out []models.Professional
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) CreateProfessional(ctx context.Context, p *models.Professional) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CatalogGormRepository) GetProfessional(ctx context.Context, id uint) (*models.Professional, error) {
	var p models.Professional
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

// active is written through a map so false is not skipped as a zero value.
func (r *CatalogGormRepository) SetProfessionalActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Professional{}).
		Where("id = ?", id).
		Updates(map[string]any{"active": active}).Error
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(ctx context.Context) ([]models.Service, error) {
	var out []models.Service
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *CatalogGormRepository) SetServiceActive(ctx context.Context, id uint, active bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("id = ?", id).
		Updates(map[string]any{"active": active}).Error
}

// --------------------------------------------------
// Links
// --------------------------------------------------

func (r *CatalogGormRepository) LinkService(ctx context.Context, professionalID, serviceID uint) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProfessionalService{
			ProfessionalID: professionalID,
			ServiceID:      serviceID,
		}).Error
}

func (r *CatalogGormRepository) ListLinks(ctx context.Context) ([]catalog.Link, error) {
	var out []catalog.Link
	if err := r.db.WithContext(ctx).
		Table("professional_services ps").
		Select("ps.professional_id, ps.service_id, p.name AS professional_name, s.name AS service_name").
		Joins("JOIN professionals p ON p.id = ps.professional_id").
		Joins("JOIN services s ON s.id = ps.service_id").
		Order("p.name ASC").
		Order("s.name ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)
