package follow

import (
	"context"
	"errors"
	"testing"

	"carbook.dev/carbook/internal/entity"
	"carbook.dev/carbook/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFollowRepo struct {
	follows map[[2]uint]bool
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{follows: map[[2]uint]bool{}}
}

func (f *fakeFollowRepo) Create(ctx context.Context, followerID, followeeID uint) error {
	f.follows[[2]uint{followerID, followeeID}] = true
	return nil
}

func (f *fakeFollowRepo) Delete(ctx context.Context, followerID, followeeID uint) error {
	delete(f.follows, [2]uint{followerID, followeeID})
	return nil
}

func (f *fakeFollowRepo) Exists(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return f.follows[[2]uint{followerID, followeeID}], nil
}

func (f *fakeFollowRepo) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for key := range f.follows {
		if key[1] == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeFollowRepo) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	for key := range f.follows {
		if key[0] == userID {
			count++
		}
	}
	return count, nil
}

type fakeUserLookup struct {
	byNickname map[string]*entity.User
}

func (f *fakeUserLookup) Create(ctx context.Context, user *entity.User) error { return nil }

func (f *fakeUserLookup) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	for _, user := range f.byNickname {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeUserLookup) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, apperror.ErrNotFound
}

func (f *fakeUserLookup) FindByNickname(ctx context.Context, nickname string) (*entity.User, error) {
	user, ok := f.byNickname[nickname]
	if !ok {
		return nil, apperror.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserLookup) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (f *fakeUserLookup) ExistsByNickname(ctx context.Context, nickname string) (bool, error) {
	_, ok := f.byNickname[nickname]
	return ok, nil
}

type fakeNotifier struct {
	created []*entity.Notification
	fail    bool
}

func (f *fakeNotifier) CreateNotification(ctx context.Context, notification *entity.Notification) error {
	if f.fail {
		return errors.New("broker down")
	}
	f.created = append(f.created, notification)
	return nil
}

func (f *fakeNotifier) GetNotifications(ctx context.Context, userID uint, limit, offset int) ([]entity.Notification, error) {
	return nil, nil
}

func (f *fakeNotifier) MarkAsRead(ctx context.Context, id uint, userID uint) error { return nil }
func (f *fakeNotifier) MarkAllAsRead(ctx context.Context, userID uint) error      { return nil }
func (f *fakeNotifier) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return 0, nil
}

func newFollowFixture() (*fakeFollowRepo, *fakeNotifier, FollowService) {
	repo := newFakeFollowRepo()
	users := &fakeUserLookup{byNickname: map[string]*entity.User{
		"kim":  {ID: 1, Nickname: "kim"},
		"park": {ID: 2, Nickname: "park"},
	}}
	notifier := &fakeNotifier{}
	return repo, notifier, NewFollowService(repo, users, notifier)
}

func TestFollowByNickname(t *testing.T) {
	repo, notifier, service := newFollowFixture()

	require.NoError(t, service.Follow(context.Background(), 1, "park"))

	exists, err := repo.Exists(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	require.Len(t, notifier.created, 1)
	assert.Equal(t, uint(2), notifier.created[0].UserID)
	assert.Equal(t, uint(1), notifier.created[0].ActorID)
	assert.Equal(t, entity.NotificationFollow, notifier.created[0].Kind)
}

func TestFollowSelfRejected(t *testing.T) {
	repo, _, service := newFollowFixture()

	err := service.Follow(context.Background(), 1, "kim")
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Empty(t, repo.follows)
}

func TestFollowUnknownNickname(t *testing.T) {
	_, _, service := newFollowFixture()

	err := service.Follow(context.Background(), 1, "ghost")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestFollowSurvivesNotificationFailure(t *testing.T) {
	repo, notifier, service := newFollowFixture()
	notifier.fail = true

	require.NoError(t, service.Follow(context.Background(), 1, "park"))

	exists, err := repo.Exists(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUnfollow(t *testing.T) {
	repo, _, service := newFollowFixture()
	require.NoError(t, service.Follow(context.Background(), 1, "park"))

	require.NoError(t, service.Unfollow(context.Background(), 1, "park"))

	exists, err := repo.Exists(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, exists)
}
