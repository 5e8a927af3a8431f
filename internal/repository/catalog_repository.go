package repository

import (
	"pos_manager/internal/models"

	"gorm.io/gorm"
)

type TableRepository interface {
	Create(table *models.Table) error
	GetByID(id uint) (*models.Table, error)
	GetAll() ([]models.Table, error)
	Update(table *models.Table) error
	Delete(id uint) error
}

type tableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(table *models.Table) error {
	return r.db.Create(table).Error
}

func (r *tableRepository) GetByID(id uint) (*models.Table, error) {
	var table models.Table
	err := r.db.First(&table, id).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (r *tableRepository) GetAll() ([]models.Table, error) {
	var tables []models.Table
	err := r.db.Order("number").Find(&tables).Error
	return tables, err
}

func (r *tableRepository) Update(table *models.Table) error {
	return r.db.Save(table).Error
}

func (r *tableRepository) Delete(id uint) error {
	return r.db.Delete(&models.Table{}, id).Error
}

type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id uint) (*models.Category, error)
	GetAll() ([]models.Category, error)
	Update(category *models.Category) error
	Delete(id uint) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *models.Category) error {
	return r.db.Create(category).Error
}

func (r *categoryRepository) GetByID(id uint) (*models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepository) GetAll() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) Update(category *models.Category) error {
	return r.db.Save(category).Error
}

func (r *categoryRepository) Delete(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

type DishRepository interface {
	Create(dish *models.Dish) error
	GetByID(id uint) (*models.Dish, error)
	GetByCategory(categoryID uint) ([]models.Dish, error)
	GetAll() ([]models.Dish, error)
	Update(dish *models.Dish) error
	Delete(id uint) error
}

type dishRepository struct {
	db *gorm.DB
}

func NewDishRepository(db *gorm.DB) DishRepository {
	return &dishRepository{db: db}
}

func (r *dishRepository) Create(dish *models.Dish) error {
	return r.db.Create(dish).Error
}

func (r *dishRepository) GetByID(id uint) (*models.Dish, error) {
	var dish models.Dish
	err := r.db.First(&dish, id).Error
	if err != nil {
		return nil, err
	}
	return &dish, nil
}

func (r *dishRepository) GetByCategory(categoryID uint) ([]models.Dish, error) {
	var dishes []models.Dish
	err := r.db.Where("category_id = ?", categoryID).Find(&dishes).Error
	return dishes, err
}

func (r *dishRepository) GetAll() ([]models.Dish, error) {
	var dishes []models.Dish
	err := r.db.Find(&dishes).Error
	return dishes, err
}

func (r *dishRepository) Update(dish *models.Dish) error {
	return r.db.Save(dish).Error
}

func (r *dishRepository) Delete(id uint) error {
	return r.db.Delete(&models.Dish{}, id).Error
}
