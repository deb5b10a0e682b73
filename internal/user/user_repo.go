package user

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	FindByManager(ctx context.Context, managerID string) ([]User, error)
	UpdateManager(ctx context.Context, userID, managerID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	return &u, err
}

func (r *repository) FindAll(ctx context.Context) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) FindByManager(ctx context.Context, managerID string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("name ASC").
		Find(&users).Error
	return users, err
}

func (r *repository) UpdateManager(ctx context.Context, userID, managerID string) error {
	res := r.db.WithContext(ctx).
		Model(&User{}).
		Where("id = ?", userID).
		Update("manager_id", managerID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
