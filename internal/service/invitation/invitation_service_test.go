package invitation_test

import (
	"context"
	"errors"
	"testing"

	"teamgate/internal/apperr"
	"teamgate/internal/models"
	"teamgate/internal/service/invitation"
	"teamgate/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newService(t *testing.T) (*invitation.InvitationService, *mocks.TeamProvider, *mocks.InvitationRepository) {
	teams := mocks.NewTeamProvider(t)
	invitations := mocks.NewInvitationRepository(t)
	svc := invitation.NewInvitationService(mocks.PassthroughManager{}, teams, invitations)
	return svc, teams, invitations
}

func acmeTeam() *models.Team {
	return &models.Team{
		ID:       "team-1",
		LeaderID: "leader-1",
		Name:     "Acme",
		Slug:     "acme",
	}
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil)
	invitations.On("TokenTaken", ctx, mock.AnythingOfType("string")).Return(false, nil)
	invitations.On("Create", ctx, mock.MatchedBy(func(inv *models.Invitation) bool {
		return inv.TeamID == "team-1" &&
			inv.Email == "bob@example.com" &&
			inv.Status == models.InvitationPending &&
			len(inv.Token) == 24
	})).Return(nil)

	inv, err := svc.Create(ctx, "team-1", "Bob@Example.com", "leader-1")

	assert.NoError(t, err)
	assert.Equal(t, "bob@example.com", inv.Email)
	assert.NotEmpty(t, inv.Token)
}

func TestCreate_NonLeaderForbidden(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil)

	inv, err := svc.Create(ctx, "team-1", "bob@example.com", "member-2")

	assert.Nil(t, inv)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestCreate_TeamNotFound(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	teams.On("GetByID", ctx, "missing").Return(nil, apperr.ErrNotFound)

	inv, err := svc.Create(ctx, "missing", "bob@example.com", "leader-1")

	assert.Nil(t, inv)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreate_RetriesOnTokenCollision(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil)
	invitations.On("TokenTaken", ctx, mock.AnythingOfType("string")).Return(false, nil)
	// Write-time conflict once, then success with the next candidate.
	invitations.On("Create", ctx, mock.Anything).Return(apperr.ErrConflict).Once()
	invitations.On("Create", ctx, mock.Anything).Return(nil).Once()

	inv, err := svc.Create(ctx, "team-1", "bob@example.com", "leader-1")

	assert.NoError(t, err)
	assert.NotNil(t, inv)
}

func TestRedeem_AnonymousReturnsTeamWithoutMutation(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	invitations.On("GetByToken", ctx, "T1").Return(&models.Invitation{
		Token:  "T1",
		TeamID: "team-1",
		Email:  "bob@example.com",
		Status: models.InvitationPending,
	}, nil)
	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil)

	team, err := svc.Redeem(ctx, "T1", nil)

	assert.NoError(t, err)
	assert.Equal(t, "acme", team.Slug)
	teams.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestRedeem_AuthenticatedAddsMemberIdempotently(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	user := &models.User{ID: "user-b"}

	invitations.On("GetByToken", ctx, "T1").Return(&models.Invitation{
		Token:  "T1",
		TeamID: "team-1",
		Status: models.InvitationPending,
	}, nil).Twice()
	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil).Twice()
	// The set-insert absorbs the duplicate; both calls succeed.
	teams.On("AddMember", ctx, "team-1", "user-b").Return(nil).Twice()
	invitations.On("MarkAccepted", ctx, "T1").Return(nil).Twice()

	team1, err := svc.Redeem(ctx, "T1", user)
	assert.NoError(t, err)

	team2, err := svc.Redeem(ctx, "T1", user)
	assert.NoError(t, err)

	assert.Equal(t, team1.ID, team2.ID)
}

func TestRedeem_UnknownTokenNotFound(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	invitations.On("GetByToken", ctx, "nope").Return(nil, apperr.ErrNotFound)

	team, err := svc.Redeem(ctx, "nope", &models.User{ID: "user-b"})

	assert.Nil(t, team)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	teams.AssertNotCalled(t, "AddMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestRedeem_RemovedInvitationNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, invitations := newService(t)

	invitations.On("GetByToken", ctx, "T1").Return(&models.Invitation{
		Token:  "T1",
		TeamID: "team-1",
		Status: models.InvitationRemoved,
	}, nil)

	team, err := svc.Redeem(ctx, "T1", nil)

	assert.Nil(t, team)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFinalize_MemberRetiresInvitation(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	invitations.On("GetByToken", ctx, "T1").Return(&models.Invitation{
		Token:  "T1",
		TeamID: "team-1",
		Status: models.InvitationAccepted,
	}, nil)
	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil)
	teams.On("IsMember", ctx, "team-1", "user-b").Return(true, nil)
	invitations.On("MarkRemoved", ctx, "T1").Return(nil)

	team, err := svc.Finalize(ctx, "T1", "user-b")

	assert.NoError(t, err)
	assert.Equal(t, "acme", team.Slug)
}

func TestFinalize_NotYetMemberLeavesRowIntact(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	invitations.On("GetByToken", ctx, "T1").Return(&models.Invitation{
		Token:  "T1",
		TeamID: "team-1",
		Status: models.InvitationPending,
	}, nil)
	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil)
	teams.On("IsMember", ctx, "team-1", "user-b").Return(false, nil)

	team, err := svc.Finalize(ctx, "T1", "user-b")

	assert.NoError(t, err)
	assert.NotNil(t, team)
	invitations.AssertNotCalled(t, "MarkRemoved", mock.Anything, mock.Anything)
}

func TestFinalize_RepeatedCallIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	invitations.On("GetByToken", ctx, "T1").Return(&models.Invitation{
		Token:  "T1",
		TeamID: "team-1",
		Status: models.InvitationRemoved,
	}, nil)
	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil)

	team, err := svc.Finalize(ctx, "T1", "user-b")

	assert.NoError(t, err)
	assert.Equal(t, "acme", team.Slug)
	invitations.AssertNotCalled(t, "MarkRemoved", mock.Anything, mock.Anything)
}

func TestFinalize_AnonymousLeavesRowIntact(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	invitations.On("GetByToken", ctx, "T1").Return(&models.Invitation{
		Token:  "T1",
		TeamID: "team-1",
		Status: models.InvitationPending,
	}, nil)
	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil)

	team, err := svc.Finalize(ctx, "T1", "")

	assert.NoError(t, err)
	assert.NotNil(t, team)
	invitations.AssertNotCalled(t, "MarkRemoved", mock.Anything, mock.Anything)
}

func TestListByTeam_LeaderOnly(t *testing.T) {
	ctx := context.Background()
	svc, teams, _ := newService(t)

	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil)

	invs, err := svc.ListByTeam(ctx, "team-1", "member-2")

	assert.Nil(t, invs)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
}

func TestListByTeam_Success(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil)
	expected := []*models.Invitation{{Token: "T1", TeamID: "team-1", Status: models.InvitationPending}}
	invitations.On("ListByTeam", ctx, "team-1").Return(expected, nil)

	invs, err := svc.ListByTeam(ctx, "team-1", "leader-1")

	assert.NoError(t, err)
	assert.Equal(t, expected, invs)
}

func TestRedeem_StoreErrorIsSurfaced(t *testing.T) {
	ctx := context.Background()
	svc, teams, invitations := newService(t)

	invitations.On("GetByToken", ctx, "T1").Return(&models.Invitation{
		Token:  "T1",
		TeamID: "team-1",
		Status: models.InvitationPending,
	}, nil)
	teams.On("GetByID", ctx, "team-1").Return(acmeTeam(), nil)
	storeErr := errors.New("store unavailable")
	teams.On("AddMember", ctx, "team-1", "user-b").Return(storeErr)

	team, err := svc.Redeem(ctx, "T1", &models.User{ID: "user-b"})

	assert.Nil(t, team)
	assert.ErrorIs(t, err, storeErr)
}
