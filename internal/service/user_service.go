package service

import (
	"context"

	"smartenglish_backend/internal/model"
	"smartenglish_backend/internal/progress"
)

type UserService struct {
	Users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{Users: users}
}

func (s *UserService) Profile(ctx context.Context, userID uint) (*model.Profile, error) {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := NewProfile(user)
	return &p, nil
}

// NewProfile 根据累计经验补充等级信息
func NewProfile(u *model.User) model.Profile {
	level := progress.LevelForTotalXP(u.XP)
	return model.Profile{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        u.Role,
		XP:          u.XP,
		Level:       level,
		NextLevelXP: progress.XPRequiredForLevel(level + 1),
	}
}
