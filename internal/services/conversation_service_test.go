package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"llamachat-backend/internal/completion"
	"llamachat-backend/internal/models"
	"llamachat-backend/internal/prompt"
	"llamachat-backend/internal/store"

	"github.com/google/uuid"
)

// fakeStore is an in-memory store.Store for service tests.
type fakeStore struct {
	conversations map[uuid.UUID][]byte
	updateCalls   int
}

func newFakeStore() *fakeStore {
	return &fakeStore{conversations: make(map[uuid.UUID][]byte)}
}

func (f *fakeStore) CreateConversation(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	f.conversations[id] = []byte("[]")
	return &models.Conversation{ID: id, Messages: []byte("[]"), CreatedAt: time.Now(), UpdatedAt: time.Now()}, nil
}

func (f *fakeStore) GetConversationByID(ctx context.Context, id uuid.UUID) (*models.Conversation, error) {
	raw, ok := f.conversations[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &models.Conversation{ID: id, Messages: raw}, nil
}

func (f *fakeStore) UpdateConversationMessages(ctx context.Context, id uuid.UUID, messages []byte) error {
	if _, ok := f.conversations[id]; !ok {
		return store.ErrNotFound
	}
	f.updateCalls++
	f.conversations[id] = messages
	return nil
}

func (f *fakeStore) storedMessages(t *testing.T, id uuid.UUID) []models.Message {
	t.Helper()
	var msgs []models.Message
	if err := json.Unmarshal(f.conversations[id], &msgs); err != nil {
		t.Fatalf("failed to parse stored transcript: %v", err)
	}
	return msgs
}

// fakeGateway records the context it receives and returns a canned reply.
type fakeGateway struct {
	received []models.Message
	reply    string
	err      error
}

func (f *fakeGateway) Complete(ctx context.Context, messages []models.Message) (string, error) {
	f.received = messages
	return f.reply, f.err
}

func newTestService(st store.Store, gw CompletionGateway) *ConversationService {
	return NewConversationService(st, prompt.NewAssembler("be helpful", 15), gw)
}

func seedConversation(t *testing.T, f *fakeStore, msgs []models.Message) uuid.UUID {
	t.Helper()
	id := uuid.New()
	raw, err := json.Marshal(msgs)
	if err != nil {
		t.Fatalf("failed to marshal seed transcript: %v", err)
	}
	f.conversations[id] = raw
	return id
}

func TestPostMessageSuccess(t *testing.T) {
	st := newFakeStore()
	gw := &fakeGateway{reply: "hello"}
	svc := newTestService(st, gw)

	id, err := svc.CreateConversation(context.Background())
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}

	reply, err := svc.PostMessage(context.Background(), id, "hi")
	if err != nil {
		t.Fatalf("PostMessage: %v", err)
	}
	if reply != "hello" {
		t.Errorf("reply = %q, want %q", reply, "hello")
	}

	stored := st.storedMessages(t, id)
	if len(stored) != 2 {
		t.Fatalf("stored %d messages, want 2", len(stored))
	}
	if stored[0].Role != models.RoleUser || stored[0].Content != "hi" {
		t.Errorf("stored[0] = %+v, want user/hi", stored[0])
	}
	if stored[1].Role != models.RoleAssistant || stored[1].Content != "hello" {
		t.Errorf("stored[1] = %+v, want assistant/hello", stored[1])
	}
}

func TestPostMessageTrimsAndValidates(t *testing.T) {
	st := newFakeStore()
	svc := newTestService(st, &fakeGateway{reply: "x"})
	id := seedConversation(t, st, nil)

	for _, text := range []string{"", "   ", "\n\t"} {
		if _, err := svc.PostMessage(context.Background(), id, text); !errors.Is(err, ErrEmptyContent) {
			t.Errorf("PostMessage(%q) err = %v, want ErrEmptyContent", text, err)
		}
	}
	if st.updateCalls != 0 {
		t.Errorf("updateCalls = %d, want 0", st.updateCalls)
	}
}

func TestPostMessageUnknownConversation(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeGateway{reply: "x"})

	_, err := svc.PostMessage(context.Background(), uuid.New(), "hi")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("err = %v, want store.ErrNotFound", err)
	}
}

func TestPostMessageGatewayFailureLeavesStoreUntouched(t *testing.T) {
	st := newFakeStore()
	gw := &fakeGateway{err: &completion.UpstreamError{StatusCode: 500, Body: "boom"}}
	svc := newTestService(st, gw)

	id := seedConversation(t, st, []models.Message{
		{Role: models.RoleUser, Content: "earlier"},
		{Role: models.RoleAssistant, Content: "sure"},
	})

	_, err := svc.PostMessage(context.Background(), id, "hi")

	var upstreamErr *completion.UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("err = %v, want *completion.UpstreamError", err)
	}
	if st.updateCalls != 0 {
		t.Errorf("updateCalls = %d, want 0 after gateway failure", st.updateCalls)
	}
	if got := len(st.storedMessages(t, id)); got != 2 {
		t.Errorf("stored %d messages, want 2 (user message must not be orphaned)", got)
	}
}

func TestPostMessageAssemblesWindowedContext(t *testing.T) {
	st := newFakeStore()
	gw := &fakeGateway{reply: "ok"}
	svc := newTestService(st, gw) // window size 15

	history := make([]models.Message, 20)
	for i := range history {
		history[i] = models.Message{Role: models.RoleUser, Content: "old"}
	}
	id := seedConversation(t, st, history)

	if _, err := svc.PostMessage(context.Background(), id, "current"); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}

	// system prompt + 15-message window + in-flight user message
	if len(gw.received) != 17 {
		t.Fatalf("gateway received %d messages, want 17", len(gw.received))
	}
	if gw.received[0].Role != models.RoleSystem {
		t.Errorf("first context message role = %q, want system", gw.received[0].Role)
	}
	last := gw.received[len(gw.received)-1]
	if last.Role != models.RoleUser || last.Content != "current" {
		t.Errorf("last context message = %+v, want the in-flight user message", last)
	}
}

func TestGetMessagesRoundTrip(t *testing.T) {
	st := newFakeStore()
	svc := newTestService(st, &fakeGateway{reply: "hello"})

	id, err := svc.CreateConversation(context.Background())
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}

	msgs, err := svc.GetMessages(context.Background(), id)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("new conversation has %d messages, want 0", len(msgs))
	}

	if _, err := svc.PostMessage(context.Background(), id, "hi"); err != nil {
		t.Fatalf("PostMessage: %v", err)
	}

	msgs, err = svc.GetMessages(context.Background(), id)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(msgs) != 2 || msgs[0].Role != models.RoleUser || msgs[1].Role != models.RoleAssistant {
		t.Fatalf("after one turn got %+v, want [user, assistant]", msgs)
	}
}
