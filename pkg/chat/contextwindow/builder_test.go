package contextwindow

import (
	"fmt"
	"testing"
	"time"

	"intellichat-be/internal/entity"

	"github.com/google/uuid"
)

func makeHistory(n int) []*entity.ChatMessage {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	msgs := make([]*entity.ChatMessage, 0, n)
	for i := 0; i < n; i++ {
		role := entity.RoleUser
		if i%2 == 1 {
			role = entity.RoleAssistant
		}
		msgs = append(msgs, &entity.ChatMessage{
			Id:        uuid.New(),
			Content:   fmt.Sprintf("turn %d", i),
			Role:      role,
			SessionId: "sess-1",
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
	}
	return msgs
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name        string
		window      int
		historyLen  int
		wantLen     int
		wantFirst   string
		wantLast    string
		excludeLast bool
	}{
		{
			name:       "short history fits entirely",
			window:     50,
			historyLen: 4,
			wantLen:    4,
			wantFirst:  "turn 0",
			wantLast:   "turn 3",
		},
		{
			name:       "long history keeps most recent turns",
			window:     50,
			historyLen: 120,
			wantLen:    50,
			wantFirst:  "turn 70",
			wantLast:   "turn 119",
		},
		{
			name:       "window boundary is exact",
			window:     10,
			historyLen: 10,
			wantLen:    10,
			wantFirst:  "turn 0",
			wantLast:   "turn 9",
		},
		{
			name:       "empty history",
			window:     50,
			historyLen: 0,
			wantLen:    0,
		},
		{
			name:        "current turn excluded before windowing",
			window:      5,
			historyLen:  8,
			wantLen:     5,
			wantFirst:   "turn 2",
			wantLast:    "turn 6",
			excludeLast: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := makeHistory(tt.historyLen)

			currentId := uuid.New()
			if tt.excludeLast && len(history) > 0 {
				currentId = history[len(history)-1].Id
			}

			b := NewBuilder(tt.window)
			got := b.Build(history, currentId)

			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
			if tt.wantLen == 0 {
				return
			}
			if got[0].Content != tt.wantFirst {
				t.Errorf("first = %q, want %q", got[0].Content, tt.wantFirst)
			}
			if got[len(got)-1].Content != tt.wantLast {
				t.Errorf("last = %q, want %q", got[len(got)-1].Content, tt.wantLast)
			}
		})
	}
}

func TestBuildPreservesRoles(t *testing.T) {
	history := makeHistory(4)

	b := NewBuilder(50)
	got := b.Build(history, uuid.New())

	for i, msg := range got {
		want := "user"
		if i%2 == 1 {
			want = "assistant"
		}
		if msg.Role != want {
			t.Errorf("turn %d role = %q, want %q", i, msg.Role, want)
		}
	}
}

func TestNewBuilderDefaultsWindow(t *testing.T) {
	b := NewBuilder(0)

	got := b.Build(makeHistory(DefaultWindow+10), uuid.New())
	if len(got) != DefaultWindow {
		t.Errorf("len = %d, want default window %d", len(got), DefaultWindow)
	}
}
