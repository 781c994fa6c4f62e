package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/internal/store"
	"github.com/greenplus/greenplus/models"
)

// redemptionService is the concrete implementation of RedemptionService.
type redemptionService struct {
	users   store.UserRepository
	rewards store.RewardCatalog
	locks   *userLocks
	logger  *logger.Logger
}

// NewRedemptionService constructs a RedemptionService over the given user
// repository and reward catalog.
func NewRedemptionService(users store.UserRepository, rewards store.RewardCatalog, locks *userLocks, logger *logger.Logger) RedemptionService {
	return &redemptionService{
		users:   users,
		rewards: rewards,
		locks:   locks,
		logger:  logger,
	}
}

// Rewards returns the full reward catalog, sorted by required level and then
// by cost.
func (r *redemptionService) Rewards(ctx context.Context) []models.RewardDefinition {
	return r.rewards.All()
}

// Redeem exchanges the user's points for one catalog reward.
//
// Validations run in a fixed order, and the first failure wins:
//  1. ErrNotFound — the account is unknown.
//  2. ErrInvalidReward — no catalog reward has the given id.
//  3. ErrLevelTooLow — the user's level is below the reward's minimum,
//     regardless of the point balance.
//  4. ErrInsufficientPoints — the balance does not cover the cost.
//  5. ErrAlreadyRedeemed — the reward is already in the user's history.
//
// On success the cost is deducted and the reward id is appended to the
// user's redemption history in one persisted update. The user's level is
// left untouched even if the new balance drops below the current tier's
// threshold.
func (r *redemptionService) Redeem(ctx context.Context, email, rewardID string) (models.RedeemResponse, error) {
	log := logger.FromContext(ctx)

	lock := r.locks.forEmail(email)
	lock.Lock()
	defer lock.Unlock()

	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.RedeemResponse{}, fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.RedeemResponse{}, fmt.Errorf("user search by email failed: %w", err)
	}

	reward, err := r.rewards.FindByID(rewardID)
	if err != nil {
		log.Err(err).Str("rewardID", rewardID).Msg("redemption names unknown reward")
		return models.RedeemResponse{}, fmt.Errorf("%w: %q", ErrInvalidReward, rewardID)
	}

	if !user.Level.AtLeast(reward.Level) {
		return models.RedeemResponse{}, fmt.Errorf("%w: %q requires level %s, user is %s",
			ErrLevelTooLow, reward.ID, reward.Level, user.Level)
	}

	if user.Points < reward.CostPoints {
		return models.RedeemResponse{}, fmt.Errorf("%w: %q costs %d, user has %d",
			ErrInsufficientPoints, reward.ID, reward.CostPoints, user.Points)
	}

	if user.HasRedeemed(reward.ID) {
		return models.RedeemResponse{}, fmt.Errorf("%w: %q", ErrAlreadyRedeemed, reward.ID)
	}

	user.Points -= reward.CostPoints
	user.RedeemedRewards = append(user.RedeemedRewards, reward.ID)

	if err := r.users.Update(ctx, user); err != nil {
		log.Err(err).Str("email", email).Str("rewardID", reward.ID).Msg("user update failed")
		return models.RedeemResponse{}, fmt.Errorf("user update failed: %w", err)
	}

	log.Info().
		Str("email", email).
		Str("rewardID", reward.ID).
		Int("cost", reward.CostPoints).
		Int("balance", user.Points).
		Msg("reward redeemed")

	return models.RedeemResponse{User: user, Reward: reward}, nil
}
