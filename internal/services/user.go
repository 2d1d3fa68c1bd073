package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/scrapbook-backend/internal/logger"
	"github.com/yungbote/scrapbook-backend/internal/normalization"
	"github.com/yungbote/scrapbook-backend/internal/repos"
	"github.com/yungbote/scrapbook-backend/internal/requestdata"
	"github.com/yungbote/scrapbook-backend/internal/types"
)

type UserUpdate struct {
	Name   *string
	Gender *string
	DOB    *time.Time
}

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	UpdateUser(ctx context.Context, update UserUpdate) (*types.User, error)
	ResetPassword(ctx context.Context, newPassword string) error
	DeleteUser(ctx context.Context) error
}

type userService struct {
	db             *gorm.DB
	log            *logger.Logger
	userRepo       repos.UserRepo
	userTokenRepo  repos.UserTokenRepo
	reviewRepo     repos.ReviewRepo
	watchLaterRepo repos.WatchLaterRepo
	watchEntryRepo repos.WatchEntryRepo
	messageRepo    repos.MessageRepo
}

func NewUserService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	reviewRepo repos.ReviewRepo,
	watchLaterRepo repos.WatchLaterRepo,
	watchEntryRepo repos.WatchEntryRepo,
	messageRepo repos.MessageRepo,
) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{
		db:             db,
		log:            serviceLog,
		userRepo:       userRepo,
		userTokenRepo:  userTokenRepo,
		reviewRepo:     reviewRepo,
		watchLaterRepo: watchLaterRepo,
		watchEntryRepo: watchEntryRepo,
		messageRepo:    messageRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("Not authenticated")
	}
	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		return nil, fmt.Errorf("Error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("User does not exist")
	}
	return found[0], nil
}

func (us *userService) UpdateUser(ctx context.Context, update UserUpdate) (*types.User, error) {
	user, err := us.GetMe(ctx)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		user.Name = normalization.ParseInputString(*update.Name)
	}
	if update.Gender != nil {
		user.Gender = normalization.ParseInputString(*update.Gender)
	}
	if update.DOB != nil {
		user.DOB = update.DOB
	}

	updated, uErr := us.userRepo.Update(ctx, nil, user)
	if uErr != nil {
		return nil, fmt.Errorf("Failed to update user: %w", uErr)
	}
	return updated, nil
}

func (us *userService) ResetPassword(ctx context.Context, newPassword string) error {
	if newPassword == "" {
		return fmt.Errorf("New password is required")
	}
	user, err := us.GetMe(ctx)
	if err != nil {
		return err
	}

	hashed, hErr := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if hErr != nil {
		return fmt.Errorf("Failed to hash password")
	}
	user.Password = string(hashed)

	if _, uErr := us.userRepo.Update(ctx, nil, user); uErr != nil {
		return fmt.Errorf("Failed to update password: %w", uErr)
	}
	return nil
}

// DeleteUser removes the account and everything the user owns in one
// transaction, mirroring the cascade the schema declares.
func (us *userService) DeleteUser(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("Not authenticated")
	}
	userIDs := []uuid.UUID{rd.UserID}

	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := us.reviewRepo.FullDeleteByUserIDs(ctx, tx, userIDs); err != nil {
			return fmt.Errorf("Failed to delete user reviews: %w", err)
		}
		if err := us.watchLaterRepo.FullDeleteByUserIDs(ctx, tx, userIDs); err != nil {
			return fmt.Errorf("Failed to delete user watch later entries: %w", err)
		}
		if err := us.watchEntryRepo.FullDeleteByUserIDs(ctx, tx, userIDs); err != nil {
			return fmt.Errorf("Failed to delete user watch entries: %w", err)
		}
		if err := us.messageRepo.FullDeleteByUserIDs(ctx, tx, userIDs); err != nil {
			return fmt.Errorf("Failed to delete user messages: %w", err)
		}
		if err := us.userTokenRepo.FullDeleteByUserIDs(ctx, tx, userIDs); err != nil {
			return fmt.Errorf("Failed to delete user tokens: %w", err)
		}
		if err := us.userRepo.FullDeleteByIDs(ctx, tx, userIDs); err != nil {
			return fmt.Errorf("Failed to delete user: %w", err)
		}
		return nil
	}); err != nil {
		us.log.Warn("DeleteUser transaction error", "error", err)
		return err
	}
	return nil
}
