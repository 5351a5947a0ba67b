package services

import (
	"context"
	"strings"

	"wheeladmin/internal/errorx"
	"wheeladmin/internal/models"
)

type TeamClient interface {
	GetMyUserProfile(ctx context.Context) (models.UserProfile, error)
	CreateMyUserProfile(ctx context.Context) (models.UserProfile, error)
	UpdateMyUserProfile(ctx context.Context, req models.UpdateMyUserProfileRequest) error
	ListUsers(ctx context.Context) ([]models.UserProfile, error)
	UpdateUserProfile(ctx context.Context, req models.UpdateUserProfileRequest) error
	DeleteUserProfile(ctx context.Context, req models.DeleteUserProfileRequest) error
}

type Team struct {
	client TeamClient
}

func NewTeam(c TeamClient) *Team {
	return &Team{client: c}
}

// Me returns the caller's profile, creating it on first login.
func (t *Team) Me(ctx context.Context) (models.UserProfile, error) {
	me, err := t.client.GetMyUserProfile(ctx)
	if errorx.CodeOf(err) == errorx.NotFound {
		return t.client.CreateMyUserProfile(ctx)
	}
	return me, err
}

func (t *Team) UpdateMyUsername(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return errorx.NewInvalidArgument("Username cannot be empty")
	}
	return t.client.UpdateMyUserProfile(ctx, models.UpdateMyUserProfileRequest{Username: &username})
}

func (t *Team) List(ctx context.Context) ([]models.UserProfile, error) {
	return t.client.ListUsers(ctx)
}

// Members indexes the team by user id.
func (t *Team) Members(ctx context.Context) (map[string]models.UserProfile, error) {
	users, err := t.client.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	members := make(map[string]models.UserProfile, len(users))
	for _, u := range users {
		members[u.ID] = u
	}
	return members, nil
}

func (t *Team) Update(ctx context.Context, req models.UpdateUserProfileRequest) error {
	return t.client.UpdateUserProfile(ctx, req)
}

func (t *Team) Delete(ctx context.Context, userID string) error {
	return t.client.DeleteUserProfile(ctx, models.DeleteUserProfileRequest{UserID: userID})
}
