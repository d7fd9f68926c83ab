// Package services содержит бизнес-логику администрирования пользователей.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mrxception/ofmreddit/internal/models"
)

// Ошибки администрирования пользователей.
var (
	ErrSelfAction = errors.New("self action is not allowed")
	ErrNoSuchUser = errors.New("no such user")
)

// UserAdminRepository определяет методы хранилища для админки пользователей.
type UserAdminRepository interface {
	ListUsers(ctx context.Context, limit, offset int) ([]*models.UserInfo, error)
	RenameUser(ctx context.Context, userUID, username string) (int, error)
	DeleteUser(ctx context.Context, userUID string) (int, error)
	UpsertBan(ctx context.Context, userUID, reason string) error
	RemoveBan(ctx context.Context, userUID string) (int, error)
}

// UserAdminService реализует операции админки над пользователями.
type UserAdminService struct {
	repo UserAdminRepository
	log  *slog.Logger
}

// NewUserAdminService создает новый экземпляр UserAdminService.
func NewUserAdminService(repo UserAdminRepository, log *slog.Logger) *UserAdminService {
	return &UserAdminService{
		repo: repo,
		log:  log,
	}
}

// List возвращает пользователей с блокировками и текущими тарифами.
func (s *UserAdminService) List(ctx context.Context, limit, offset int) ([]*models.UserInfo, error) {
	return s.repo.ListUsers(ctx, limit, offset)
}

// Rename меняет имя пользователя.
func (s *UserAdminService) Rename(ctx context.Context, userUID, username string) error {
	count, err := s.repo.RenameUser(ctx, userUID, username)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoSuchUser
	}
	s.log.Info("user renamed", slog.String("user_uid", userUID))
	return nil
}

// Ban блокирует пользователя с указанной причиной. Администратор не может
// заблокировать сам себя.
func (s *UserAdminService) Ban(ctx context.Context, adminUID, userUID, reason string) error {
	if adminUID == userUID {
		return ErrSelfAction
	}
	if err := s.repo.UpsertBan(ctx, userUID, reason); err != nil {
		return err
	}
	s.log.Info("user banned", slog.String("user_uid", userUID), slog.String("reason", reason))
	return nil
}

// Unban снимает блокировку пользователя.
func (s *UserAdminService) Unban(ctx context.Context, userUID string) error {
	count, err := s.repo.RemoveBan(ctx, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoSuchUser
	}
	s.log.Info("user unbanned", slog.String("user_uid", userUID))
	return nil
}

// Delete удаляет пользователя. Администратор не может удалить сам себя.
func (s *UserAdminService) Delete(ctx context.Context, adminUID, userUID string) error {
	if adminUID == userUID {
		return ErrSelfAction
	}
	count, err := s.repo.DeleteUser(ctx, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNoSuchUser
	}
	s.log.Info("user deleted", slog.String("user_uid", userUID))
	return nil
}
