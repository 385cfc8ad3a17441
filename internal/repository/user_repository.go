package repository

import (
	"context"
	"errors"
	"time"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/util"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	err := r.DB.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrEmailRegistered
	}
	return err
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return &user, err
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrUserNotFound
	}
	return &user, err
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID uint) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_login", time.Now()).Error
}

func (r *UserRepository) UpdateLastSeen(userID uint) error {
	return r.DB.Model(&model.User{}).
		Where("id = ?", userID).
		Update("last_seen", time.Now()).Error
}

// ListStudents 管理端学员列表，按累计经验倒序
func (r *UserRepository) ListStudents(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.DB.WithContext(ctx).
		Where("role = ? AND disabled = ?", model.Student, false).
		Order("xp DESC, id ASC").
		Find(&users).Error
	return users, err
}

// ApplyXP 把一条提交的经验计入累计值。
// 记录的 xp_applied 由 false 改为 true 与 users.xp 自增在同一事务内完成，
// 同一条记录重复调用不会重复加分。返回值表示本次是否真正加分。
func (r *UserRepository) ApplyXP(ctx context.Context, p model.PendingXP) (bool, error) {
	applied := false
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Table(p.Table).
			Where("id = ? AND user_id = ? AND xp_applied = ? AND deleted_at IS NULL", p.RecordID, p.UserID, false).
			Update("xp_applied", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		res = tx.Model(&model.User{}).
			Where("id = ?", p.UserID).
			Update("xp", gorm.Expr("xp + ?", p.Amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrUserNotFound
		}
		applied = true
		return nil
	})
	return applied, err
}
