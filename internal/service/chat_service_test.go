package service

import (
	"context"
	"strings"
	"sync"
	"testing"

	"intellichat-be/internal/dto"
	"intellichat-be/internal/entity"
	"intellichat-be/internal/pkg/serverutils"
	"intellichat-be/internal/repository"
	"intellichat-be/internal/repository/contract"
	"intellichat-be/pkg/events"
	"intellichat-be/pkg/llm"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

// fakeProvider returns canned replies and records the transcript it was
// handed, so tests can assert on the context window.
type fakeProvider struct {
	reply string
	err   error
	calls [][]llm.Message
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	copied := make([]llm.Message, len(history))
	copy(copied, history)
	f.calls = append(f.calls, copied)

	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type capturingPublisher struct {
	published []events.Event
}

func (p *capturingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.published = append(p.published, event)
	return nil
}

func newTestChatService(provider llm.Provider, window int) (IChatService, repository.Factory, *capturingPublisher) {
	repos := repository.NewMemoryFactory()
	publisher := &capturingPublisher{}
	svc := NewChatService(repos, provider, NewUserService(repos), publisher, window, noopLogger{})
	return svc, repos, publisher
}

// racingUserRepo reproduces the lost duplicate-create race: the first
// lookup misses, the create collides with a concurrent winner, and the
// winner's row is visible afterwards.
type racingUserRepo struct {
	mu    sync.Mutex
	finds int
	row   *entity.User
}

func (r *racingUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.finds++
	if r.finds == 1 {
		return nil, nil
	}
	c := *r.row
	return &c, nil
}

func (r *racingUserRepo) Create(ctx context.Context, user *entity.User) error {
	return contract.ErrDuplicateUser
}

type userRepoOverrideFactory struct {
	repository.Factory
	users contract.UserRepository
}

func (f userRepoOverrideFactory) UserRepository() contract.UserRepository {
	return f.users
}

func sendReq(sessionId, content string) *dto.CreateMessageRequest {
	return &dto.CreateMessageRequest{
		Content:   content,
		Role:      "user",
		UserId:    "user-1",
		SessionId: sessionId,
	}
}

func TestSendMessage_Exchange(t *testing.T) {
	provider := &fakeProvider{reply: "Hello! How can I help?"}
	svc, repos, publisher := newTestChatService(provider, 50)
	ctx := context.Background()

	res, err := svc.SendMessage(ctx, sendReq("sess-1", "Hi there"))
	require.NoError(t, err)
	require.NotNil(t, res.UserMessage)
	require.NotNil(t, res.AiMessage)

	assert.Equal(t, "Hi there", res.UserMessage.Content)
	assert.Equal(t, "user", res.UserMessage.Role)
	assert.Equal(t, "Hello! How can I help?", res.AiMessage.Content)
	assert.Equal(t, "assistant", res.AiMessage.Role)
	assert.Equal(t, "sess-1", res.AiMessage.SessionId)
	assert.NotEqual(t, res.UserMessage.Id, res.AiMessage.Id)

	// Session was lazily created with the first message as title.
	session, err := repos.ChatSessionRepository().FindBySessionId(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "Hi there", session.Title)
	assert.Equal(t, "user-1", session.UserId)

	// User row exists after first reference.
	user, err := repos.UserRepository().FindByUsername(ctx, "user-1")
	require.NoError(t, err)
	assert.NotNil(t, user)

	// One exchange event went out.
	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.ChatExchangeCompletedType, publisher.published[0].EventType())
}

func TestSendMessage_TitleTruncation(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, repos, _ := newTestChatService(provider, 50)
	ctx := context.Background()

	long := strings.Repeat("héllo wörld ", 10) // 120 runes
	_, err := svc.SendMessage(ctx, sendReq("sess-long", long))
	require.NoError(t, err)

	session, err := repos.ChatSessionRepository().FindBySessionId(ctx, "sess-long")
	require.NoError(t, err)
	require.NotNil(t, session)

	runes := []rune(session.Title)
	assert.Len(t, runes, 53) // 50 + "..."
	assert.True(t, strings.HasSuffix(session.Title, "..."))
	assert.Equal(t, string([]rune(long)[:50]), string(runes[:50]))
}

func TestSendMessage_FailedCompletionKeepsUserMessage(t *testing.T) {
	provider := &fakeProvider{err: &llm.ResponseError{Cause: context.DeadlineExceeded}}
	svc, repos, publisher := newTestChatService(provider, 50)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, sendReq("sess-1", "Will this fail?"))
	require.Error(t, err)

	var respErr *llm.ResponseError
	assert.ErrorAs(t, err, &respErr)

	// The user turn survives the failure so the client can retry.
	msgs, findErr := repos.ChatMessageRepository().FindAll(ctx, "sess-1")
	require.NoError(t, findErr)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Will this fail?", msgs[0].Content)
	assert.Equal(t, "user", string(msgs[0].Role))

	// No exchange event for a failed completion.
	assert.Empty(t, publisher.published)
}

func TestSendMessage_RejectsAssistantRole(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, repos, _ := newTestChatService(provider, 50)
	ctx := context.Background()

	req := sendReq("sess-1", "spoofed")
	req.Role = "assistant"

	_, err := svc.SendMessage(ctx, req)
	require.Error(t, err)

	var validationErr *serverutils.ValidationError
	assert.ErrorAs(t, err, &validationErr)

	// Nothing was written.
	msgs, findErr := repos.ChatMessageRepository().FindAll(ctx, "sess-1")
	require.NoError(t, findErr)
	assert.Empty(t, msgs)
	assert.Empty(t, provider.calls)
}

func TestSendMessage_ContextWindowContents(t *testing.T) {
	provider := &fakeProvider{reply: "reply"}
	svc, _, _ := newTestChatService(provider, 50)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, sendReq("sess-1", "first question"))
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, sendReq("sess-1", "second question"))
	require.NoError(t, err)

	require.Len(t, provider.calls, 2)

	// First call: just the current turn.
	first := provider.calls[0]
	require.Len(t, first, 1)
	assert.Equal(t, "first question", first[0].Content)
	assert.Equal(t, "user", first[0].Role)

	// Second call: prior exchange plus the current turn, no duplicates.
	second := provider.calls[1]
	require.Len(t, second, 3)
	assert.Equal(t, "first question", second[0].Content)
	assert.Equal(t, "reply", second[1].Content)
	assert.Equal(t, "assistant", second[1].Role)
	assert.Equal(t, "second question", second[2].Content)
}

func TestSendMessage_WindowBoundsLongSessions(t *testing.T) {
	provider := &fakeProvider{reply: "r"}
	svc, _, _ := newTestChatService(provider, 4)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := svc.SendMessage(ctx, sendReq("sess-1", "q"))
		require.NoError(t, err)
	}

	// Last call: at most window prior turns plus the current one.
	last := provider.calls[len(provider.calls)-1]
	assert.Len(t, last, 5)
}

func TestSendMessage_ExistingSessionKeepsTitle(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, repos, _ := newTestChatService(provider, 50)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, sendReq("sess-1", "original title source"))
	require.NoError(t, err)

	before, err := repos.ChatSessionRepository().FindBySessionId(ctx, "sess-1")
	require.NoError(t, err)

	_, err = svc.SendMessage(ctx, sendReq("sess-1", "a later message"))
	require.NoError(t, err)

	after, err := repos.ChatSessionRepository().FindBySessionId(ctx, "sess-1")
	require.NoError(t, err)

	assert.Equal(t, "original title source", after.Title)
	// Recency moved forward with the second message.
	assert.False(t, after.UpdatedAt.Before(before.UpdatedAt))
}

func TestSendMessage_UserCreateLosesRace(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	repos := userRepoOverrideFactory{
		Factory: repository.NewMemoryFactory(),
		users:   &racingUserRepo{row: &entity.User{Id: uuid.New(), Username: "user-1"}},
	}
	svc := NewChatService(repos, provider, NewUserService(repos), nil, 50, noopLogger{})
	ctx := context.Background()

	// The send goes through on the winner's row instead of failing.
	res, err := svc.SendMessage(ctx, sendReq("sess-1", "hello"))
	require.NoError(t, err)
	require.NotNil(t, res.AiMessage)

	msgs, err := repos.ChatMessageRepository().FindAll(ctx, "sess-1")
	require.NoError(t, err)
	assert.Len(t, msgs, 2)
}

func TestSendMessage_SessionLocksEvicted(t *testing.T) {
	provider := &fakeProvider{reply: "ok"}
	svc, _, _ := newTestChatService(provider, 50)
	ctx := context.Background()

	for _, sess := range []string{"sess-a", "sess-b", "sess-c"} {
		_, err := svc.SendMessage(ctx, sendReq(sess, "hi"))
		require.NoError(t, err)
	}

	cs := svc.(*chatService)
	cs.locksMu.Lock()
	defer cs.locksMu.Unlock()
	assert.Empty(t, cs.locks)
}

func TestGetMessages_OrderedAscending(t *testing.T) {
	provider := &fakeProvider{reply: "reply"}
	svc, _, _ := newTestChatService(provider, 50)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, sendReq("sess-1", "one"))
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, sendReq("sess-1", "two"))
	require.NoError(t, err)

	msgs, err := svc.GetMessages(ctx, "sess-1")
	require.NoError(t, err)
	require.Len(t, msgs, 4)
	assert.Equal(t, "one", msgs[0].Content)
	assert.Equal(t, "reply", msgs[1].Content)
	assert.Equal(t, "two", msgs[2].Content)
	assert.Equal(t, "reply", msgs[3].Content)
}

func TestClearMessages_Scoped(t *testing.T) {
	provider := &fakeProvider{reply: "reply"}
	svc, _, _ := newTestChatService(provider, 50)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, sendReq("sess-a", "in a"))
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, sendReq("sess-b", "in b"))
	require.NoError(t, err)

	require.NoError(t, svc.ClearMessages(ctx, "sess-a"))

	gone, err := svc.GetMessages(ctx, "sess-a")
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := svc.GetMessages(ctx, "sess-b")
	require.NoError(t, err)
	assert.Len(t, kept, 2)

	// Empty sessionId clears everything.
	require.NoError(t, svc.ClearMessages(ctx, ""))
	all, err := svc.GetMessages(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
}
