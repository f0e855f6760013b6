package store

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askanything/board/internal/core/domain"
	"github.com/askanything/board/internal/core/ports"
	"github.com/askanything/board/internal/infrastructure/kv/memory"
)

type failingKV struct {
	*memory.Store
	failOn map[string]bool
}

func (f *failingKV) Set(ctx context.Context, name string, value []byte) error {
	if f.failOn[name] {
		return errors.New("quota exceeded")
	}
	return f.Store.Set(ctx, name, value)
}

func countingIDs() (ports.IDGenerator, *int) {
	n := 0
	return func() string {
		n++
		return "user-" + string(rune('0'+n))
	}, &n
}

func newLoaded(t *testing.T, kv ports.KVStore) *Store {
	t.Helper()
	ids, _ := countingIDs()
	s := New(kv, ids, nil, zerolog.Nop())
	require.NoError(t, s.Load(context.Background()))
	return s
}

func stored(t *testing.T, kv ports.KVStore, key string, v any) {
	t.Helper()
	b, err := kv.Get(context.Background(), key)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(b, v))
}

func TestLoad_FirstRunCreatesIdentity(t *testing.T) {
	kv := memory.New()
	s := newLoaded(t, kv)

	u, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "user-1", u.ID)
	assert.Equal(t, domain.DefaultName, u.Name)
	assert.Empty(t, u.VotedQuestions)
	assert.NotNil(t, u.VotedAnswers)

	var persisted domain.User
	stored(t, kv, KeyUser, &persisted)
	assert.Equal(t, u.ID, persisted.ID)

	var users []domain.User
	stored(t, kv, KeyUsers, &users)
	require.Len(t, users, 1)
	assert.Equal(t, u.ID, users[0].ID)

	assert.Empty(t, s.Questions())
	assert.Empty(t, s.Answers())
}

func TestLoad_Idempotent(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	ids, n := countingIDs()

	first := New(kv, ids, nil, zerolog.Nop())
	require.NoError(t, first.Load(ctx))
	u, _ := first.User()
	u.VotedQuestions["q1"] = domain.Up
	require.NoError(t, first.SetUser(ctx, u))

	second := New(kv, ids, nil, zerolog.Nop())
	require.NoError(t, second.Load(ctx))

	again, _ := second.User()
	assert.Equal(t, u.ID, again.ID)
	assert.Equal(t, domain.Up, again.VotedQuestions["q1"])
	assert.Equal(t, 1, *n, "bootstrap must not generate a second id")
	assert.Len(t, second.Users(), 1)
}

func TestLoad_NormalizesOldRecords(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, KeyUser, []byte(`{"id":"old","name":"Legacy","votedAnswers":{"a1":"down"}}`)))
	require.NoError(t, kv.Set(ctx, KeyUsers, []byte(`[{"id":"old","name":"Legacy"}]`)))

	s := newLoaded(t, kv)

	u, _ := s.User()
	assert.Equal(t, "old", u.ID)
	assert.NotNil(t, u.VotedQuestions)
	assert.Equal(t, domain.Down, u.VotedAnswers["a1"])
	assert.NotNil(t, s.Users()[0].VotedAnswers)
}

func TestLoad_NullDocumentsAreAbsent(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, KeyQuestions, []byte(`null`)))

	s := newLoaded(t, kv)
	assert.NotNil(t, s.Questions())
	assert.Empty(t, s.Questions())
}

func TestLoad_CorruptDocumentFails(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, KeyAnswers, []byte(`{not json`)))

	ids, _ := countingIDs()
	err := New(kv, ids, nil, zerolog.Nop()).Load(ctx)
	assert.ErrorIs(t, err, domain.ErrCorruptRecord)
}

func TestLoad_ReaddsCurrentUserMissingFromList(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, KeyUser, []byte(`{"id":"me","name":"Me"}`)))
	require.NoError(t, kv.Set(ctx, KeyUsers, []byte(`[{"id":"someone","name":"S"}]`)))

	s := newLoaded(t, kv)

	users := s.Users()
	require.Len(t, users, 2)
	_, ok := domain.FindUser(users, "me")
	assert.True(t, ok)

	var persisted []domain.User
	stored(t, kv, KeyUsers, &persisted)
	assert.Len(t, persisted, 2)
}

func TestLoad_RefreshesStaleListedCopyOfCurrentUser(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	require.NoError(t, kv.Set(ctx, KeyUser, []byte(`{"id":"me","name":"Me","votedQuestions":{"q1":"up"}}`)))
	require.NoError(t, kv.Set(ctx, KeyUsers, []byte(`[{"id":"me","name":"Me"},{"id":"other","name":"O"}]`)))

	s := newLoaded(t, kv)

	listed, ok := domain.FindUser(s.Users(), "me")
	require.True(t, ok)
	assert.Equal(t, domain.Up, listed.VotedQuestions["q1"])

	var persisted []domain.User
	stored(t, kv, KeyUsers, &persisted)
	require.Len(t, persisted, 2)
	assert.Equal(t, "me", persisted[0].ID)
	assert.Equal(t, domain.Up, persisted[0].VotedQuestions["q1"])
}

func TestLoad_InSyncListIsNotRewritten(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{Store: memory.New(), failOn: map[string]bool{}}
	require.NoError(t, kv.Set(ctx, KeyUser, []byte(`{"id":"me","name":"Me","votedQuestions":{},"votedAnswers":{}}`)))
	require.NoError(t, kv.Set(ctx, KeyUsers, []byte(`[{"id":"me","name":"Me","votedQuestions":{},"votedAnswers":{}}]`)))

	kv.failOn[KeyUsers] = true
	s := newLoaded(t, kv)
	assert.Len(t, s.Users(), 1)
}

func TestSetUsers_FailureLeavesMemoryUntouched(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{Store: memory.New(), failOn: map[string]bool{}}
	s := newLoaded(t, kv)
	before := s.Users()

	kv.failOn[KeyUsers] = true
	require.Error(t, s.SetUsers(ctx, append(before, domain.NewUser("extra"))))
	assert.Equal(t, before, s.Users())

	var persisted []domain.User
	stored(t, kv, KeyUsers, &persisted)
	assert.Len(t, persisted, len(before))
}

func TestSetUsers_PersistsThenSwaps(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := newLoaded(t, kv)

	next := append(s.Users(), domain.NewUser("extra"))
	require.NoError(t, s.SetUsers(ctx, next))
	assert.Len(t, s.Users(), 2)

	var persisted []domain.User
	stored(t, kv, KeyUsers, &persisted)
	require.Len(t, persisted, 2)
	assert.Equal(t, "extra", persisted[1].ID)

	require.NoError(t, s.SetUsers(ctx, nil))
	b, err := kv.Get(ctx, KeyUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(b))
}

func TestSetUser_UpsertsIntoUsers(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := newLoaded(t, kv)

	u, _ := s.User()
	renamed, err := u.Rename("Ada")
	require.NoError(t, err)
	require.NoError(t, s.SetUser(ctx, renamed))
	require.Len(t, s.Users(), 1)
	assert.Equal(t, "Ada", s.Users()[0].Name)

	require.NoError(t, s.SetUser(ctx, domain.NewUser("fresh")))
	users := s.Users()
	require.Len(t, users, 2)
	assert.Equal(t, "fresh", users[1].ID)

	var persisted []domain.User
	stored(t, kv, KeyUsers, &persisted)
	assert.Len(t, persisted, 2)
}

func TestSetQuestions_FailureLeavesMemoryUntouched(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{Store: memory.New(), failOn: map[string]bool{}}
	s := newLoaded(t, kv)

	kv.failOn[KeyQuestions] = true
	err := s.SetQuestions(ctx, []domain.Question{{ID: "q1", UserID: "u", Text: "x"}})
	require.Error(t, err)
	assert.Empty(t, s.Questions())
}

func TestSetUser_ListFailureRestoresUserDocument(t *testing.T) {
	ctx := context.Background()
	kv := &failingKV{Store: memory.New(), failOn: map[string]bool{}}
	s := newLoaded(t, kv)
	before, _ := s.User()

	kv.failOn[KeyUsers] = true
	require.Error(t, s.SetUser(ctx, domain.NewUser("intruder")))

	now, _ := s.User()
	assert.Equal(t, before.ID, now.ID)

	var persisted domain.User
	stored(t, kv, KeyUser, &persisted)
	assert.Equal(t, before.ID, persisted.ID)
}

func TestOnChange_NotifiesPersistedKeys(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ids, _ := countingIDs()
	s := New(memory.New(), ids, func() time.Time { return at }, zerolog.Nop())
	require.NoError(t, s.Load(ctx))

	var got []ports.Change
	s.OnChange(func(c ports.Change) { got = append(got, c) })

	require.NoError(t, s.SetAnswers(ctx, nil))
	u, _ := s.User()
	require.NoError(t, s.SetUser(ctx, u))

	require.Len(t, got, 3)
	assert.Equal(t, KeyAnswers, got[0].Key)
	assert.Equal(t, KeyUser, got[1].Key)
	assert.Equal(t, KeyUsers, got[2].Key)
	assert.Equal(t, at, got[0].At)
}

func TestSetAnswers_NilPersistsEmptyArray(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	s := newLoaded(t, kv)

	require.NoError(t, s.SetAnswers(ctx, nil))
	b, err := kv.Get(ctx, KeyAnswers)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}
