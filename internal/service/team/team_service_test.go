package team_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"teamgate/internal/apperr"
	"teamgate/internal/lib/sl"
	"teamgate/internal/models"
	"teamgate/internal/service/mocks"
	"teamgate/internal/service/team"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newService(t *testing.T) (*team.TeamService, *mocks.TeamRepository, *mocks.InvitationCleaner) {
	teams := mocks.NewTeamRepository(t)
	invitations := mocks.NewInvitationCleaner(t)
	svc := team.NewTeamService(mocks.PassthroughManager{}, sl.NewDiscardLogger(), teams, invitations)
	return svc, teams, invitations
}

func TestCreate_LeaderBecomesMember(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	teams.On("SlugTaken", ctx, "acme").Return(false, nil)
	teams.On("Create", ctx, mock.MatchedBy(func(tm *models.Team) bool {
		return tm.Slug == "acme" && tm.LeaderID == "leader-1" && tm.Name == "Acme"
	})).Return("", nil)
	teams.On("AddMember", ctx, mock.AnythingOfType("string"), "leader-1").Return(nil)

	created, err := svc.Create(ctx, "leader-1", "Acme", "")

	assert.NoError(t, err)
	assert.Equal(t, "acme", created.Slug)
	assert.Equal(t, "leader-1", created.LeaderID)
	assert.NotEmpty(t, created.ID)
}

func TestCreate_SecondAcmeGetsSuffixedSlug(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	teams.On("SlugTaken", ctx, "acme").Return(true, nil)
	teams.On("SlugTaken", ctx, "acme-1").Return(false, nil)
	teams.On("Create", ctx, mock.MatchedBy(func(tm *models.Team) bool {
		return tm.Slug == "acme-1"
	})).Return("", nil)
	teams.On("AddMember", ctx, mock.AnythingOfType("string"), "leader-2").Return(nil)

	created, err := svc.Create(ctx, "leader-2", "Acme", "")

	assert.NoError(t, err)
	assert.Equal(t, "acme-1", created.Slug)
}

func TestCreate_WriteConflictReprobes(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	// The probe says free both times, but a concurrent creator wins the
	// unique index on the first write.
	teams.On("SlugTaken", ctx, "acme").Return(false, nil).Once()
	teams.On("Create", ctx, mock.Anything).Return("", apperr.ErrConflict).Once()
	teams.On("SlugTaken", ctx, "acme").Return(true, nil).Once()
	teams.On("SlugTaken", ctx, "acme-1").Return(false, nil).Once()
	teams.On("Create", ctx, mock.MatchedBy(func(tm *models.Team) bool {
		return tm.Slug == "acme-1"
	})).Return("", nil).Once()
	teams.On("AddMember", ctx, mock.AnythingOfType("string"), "leader-1").Return(nil).Once()

	created, err := svc.Create(ctx, "leader-1", "Acme", "")

	assert.NoError(t, err)
	assert.Equal(t, "acme-1", created.Slug)
}

func TestGetBySlug_ReturnsTeamWithMembers(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	teams.On("GetBySlug", ctx, "acme").Return(&models.Team{ID: "team-1", Slug: "acme"}, nil)
	teams.On("Members", ctx, "team-1").Return([]*models.User{
		{ID: "leader-1"},
		{ID: "member-2"},
	}, nil)

	got, members, err := svc.GetBySlug(ctx, "acme")

	assert.NoError(t, err)
	assert.Equal(t, "team-1", got.ID)
	assert.Len(t, members, 2)
}

func TestGetBySlug_UnknownSlug(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	teams.On("GetBySlug", ctx, "ghost").Return(nil, apperr.ErrNotFound)

	got, members, err := svc.GetBySlug(ctx, "ghost")

	assert.Nil(t, got)
	assert.Nil(t, members)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdate_NonLeaderForbidden(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	teams.On("GetByID", ctx, "team-1").Return(&models.Team{ID: "team-1", LeaderID: "leader-1"}, nil)

	updated, err := svc.Update(ctx, "member-2", "team-1", "New Name", "")

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	teams.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveMember_Success(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	teams.On("GetByID", ctx, "team-1").Return(&models.Team{ID: "team-1", LeaderID: "leader-1"}, nil)
	teams.On("RemoveMember", ctx, "team-1", "member-2").Return(nil)

	err := svc.RemoveMember(ctx, "leader-1", "team-1", "member-2")

	assert.NoError(t, err)
}

func TestRemoveMember_NonLeaderForbidden(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	teams.On("GetByID", ctx, "team-1").Return(&models.Team{ID: "team-1", LeaderID: "leader-1"}, nil)

	err := svc.RemoveMember(ctx, "member-2", "team-1", "member-3")

	assert.ErrorIs(t, err, apperr.ErrForbidden)
	teams.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveMember_LeaderCannotBeRemoved(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	teams.On("GetByID", ctx, "team-1").Return(&models.Team{ID: "team-1", LeaderID: "leader-1"}, nil)

	err := svc.RemoveMember(ctx, "leader-1", "team-1", "leader-1")

	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)
	teams.AssertNotCalled(t, "RemoveMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeleteCascade_Success(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	invitations.On("DeleteByTeam", ctx, "team-1").Return(int64(2), nil)
	teams.On("DeleteMembers", ctx, "team-1").Return(nil)
	teams.On("Delete", ctx, "team-1").Return(nil)

	assert.NoError(t, svc.DeleteCascade(ctx, "team-1"))
}

func TestDeleteCascade_ContinuesPastFailedStep(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	stepErr := errors.New("store unavailable")
	invitations.On("DeleteByTeam", ctx, "team-1").Return(int64(0), stepErr)
	teams.On("DeleteMembers", ctx, "team-1").Return(nil)
	teams.On("Delete", ctx, "team-1").Return(nil)

	err := svc.DeleteCascade(ctx, "team-1")

	// The failed step is reported, but later steps still ran.
	assert.ErrorIs(t, err, stepErr)
	teams.AssertCalled(t, "Delete", ctx, "team-1")
}

func TestSweepOld_DeletesEachOldTeam(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	cutoff := time.Now().Add(-90 * 24 * time.Hour)
	teams.On("ListCreatedBefore", ctx, cutoff).Return([]string{"team-1", "team-2"}, nil)
	for _, id := range []string{"team-1", "team-2"} {
		invitations.On("DeleteByTeam", ctx, id).Return(int64(0), nil)
		teams.On("DeleteMembers", ctx, id).Return(nil)
		teams.On("Delete", ctx, id).Return(nil)
	}

	n, err := svc.SweepOld(ctx, cutoff)

	assert.NoError(t, err)
	assert.Equal(t, 2, n)
}
