package widget_test

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/movix/backend/internal/model/chat"
	"github.com/movix/backend/internal/service/fallback"
	"github.com/movix/backend/internal/service/widget"
)

// responderFunc adapts a function to the Responder interface.
type responderFunc func(ctx context.Context, history []chat.Message, userMessage string) (string, error)

func (f responderFunc) Respond(ctx context.Context, history []chat.Message, userMessage string) (string, error) {
	return f(ctx, history, userMessage)
}

func okResponder(reply string) responderFunc {
	return func(context.Context, []chat.Message, string) (string, error) {
		return reply, nil
	}
}

func failingResponder() responderFunc {
	return func(context.Context, []chat.Message, string) (string, error) {
		return "", errors.New("relay unreachable")
	}
}

func TestCreateSessionSeedsGreeting(t *testing.T) {
	svc := widget.NewService(okResponder("hi"))
	session := svc.CreateSession()

	if session.Visibility != widget.VisibilityClosed {
		t.Fatalf("expected closed visibility, got %s", session.Visibility)
	}

	messages, err := svc.Transcript(session.ID)
	if err != nil {
		t.Fatalf("Transcript err: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 seeded message, got %d", len(messages))
	}
	if messages[0].Role != chat.RoleBot {
		t.Fatalf("expected seeded bot message, got role %s", messages[0].Role)
	}
}

func TestSubmitAppendsUserThenBot(t *testing.T) {
	svc := widget.NewService(okResponder("Sure, try Inception."))
	session := svc.CreateSession()

	botMsg, err := svc.Submit(context.Background(), session.ID, "  any good thrillers?  ")
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if botMsg.Role != chat.RoleBot {
		t.Fatalf("expected bot reply, got role %s", botMsg.Role)
	}
	if botMsg.Content != "Sure, try Inception." {
		t.Fatalf("unexpected reply content: %q", botMsg.Content)
	}

	messages, _ := svc.Transcript(session.ID)
	if len(messages) != 3 {
		t.Fatalf("expected greeting+user+bot, got %d messages", len(messages))
	}
	if messages[1].Role != chat.RoleUser || messages[1].Content != "any good thrillers?" {
		t.Fatalf("user message not appended first: %+v", messages[1])
	}
	if messages[2].ID != botMsg.ID {
		t.Fatalf("bot reply must follow its own user message")
	}
}

func TestSubmitEmptyInputIsNoOp(t *testing.T) {
	svc := widget.NewService(okResponder("hi"))
	session := svc.CreateSession()

	for _, input := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Submit(context.Background(), session.ID, input); !errors.Is(err, widget.ErrEmptyMessage) {
			t.Fatalf("expected ErrEmptyMessage for %q, got %v", input, err)
		}
	}

	messages, _ := svc.Transcript(session.ID)
	if len(messages) != 1 {
		t.Fatalf("empty submits must not change the log, got %d messages", len(messages))
	}
}

func TestSubmitExactlyOneBotReplyOnFailure(t *testing.T) {
	svc := widget.NewService(failingResponder())
	session := svc.CreateSession()

	botMsg, err := svc.Submit(context.Background(), session.ID, "something scary please")
	if err != nil {
		t.Fatalf("Submit must not surface relay failures, got %v", err)
	}

	pool := fallback.Pool(fallback.Horror)
	found := false
	for _, entry := range pool {
		if botMsg.Content == entry {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("expected fallback reply from horror pool, got %q", botMsg.Content)
	}

	messages, _ := svc.Transcript(session.ID)
	if len(messages) != 3 {
		t.Fatalf("expected exactly one bot reply after failure, got %d messages", len(messages))
	}
}

func TestSubmitNilResponderFallsBack(t *testing.T) {
	svc := widget.NewService(nil)
	session := svc.CreateSession()

	botMsg, err := svc.Submit(context.Background(), session.ID, "what is a good plot twist")
	if err != nil {
		t.Fatalf("Submit err: %v", err)
	}
	if botMsg.Content != fallback.ClarificationReply {
		t.Fatalf("expected clarification fallback, got %q", botMsg.Content)
	}
}

func TestSubmitRejectedWhilePending(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var startedOnce sync.Once
	blocking := responderFunc(func(context.Context, []chat.Message, string) (string, error) {
		startedOnce.Do(func() { close(started) })
		<-release
		return "done", nil
	})

	svc := widget.NewService(blocking)
	session := svc.CreateSession()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := svc.Submit(context.Background(), session.ID, "first"); err != nil {
			t.Errorf("first Submit err: %v", err)
		}
	}()

	<-started
	if _, err := svc.Submit(context.Background(), session.ID, "second"); !errors.Is(err, widget.ErrReplyPending) {
		t.Fatalf("expected ErrReplyPending, got %v", err)
	}

	close(release)
	<-done

	// Only the first submit went through: greeting + user + bot.
	messages, _ := svc.Transcript(session.ID)
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}

	// The guard lifts once the in-flight call settles.
	if _, err := svc.Submit(context.Background(), session.ID, "third"); err != nil {
		t.Fatalf("Submit after settle err: %v", err)
	}
}

func TestSubmitWindowCappedAtTen(t *testing.T) {
	var captured []chat.Message
	capturing := responderFunc(func(_ context.Context, history []chat.Message, _ string) (string, error) {
		captured = history
		return "ok", nil
	})

	svc := widget.NewService(capturing)
	session := svc.CreateSession()

	for i := 0; i < 8; i++ {
		if _, err := svc.Submit(context.Background(), session.ID, "turn "+strconv.Itoa(i)); err != nil {
			t.Fatalf("Submit %d err: %v", i, err)
		}
	}

	if len(captured) != 10 {
		t.Fatalf("expected window of 10, got %d", len(captured))
	}
	// The window holds the most recent history in order, newest last.
	last := captured[len(captured)-1]
	if last.Role != chat.RoleBot {
		t.Fatalf("expected trailing bot reply in window, got role %s", last.Role)
	}
	for i := 1; i < len(captured); i++ {
		if captured[i].CreatedAt.Before(captured[i-1].CreatedAt) {
			t.Fatalf("window out of order at index %d", i)
		}
	}
}

func TestClearResetsToSingleGreeting(t *testing.T) {
	svc := widget.NewService(okResponder("hi"))
	session := svc.CreateSession()

	for i := 0; i < 3; i++ {
		if _, err := svc.Submit(context.Background(), session.ID, "message"); err != nil {
			t.Fatalf("Submit err: %v", err)
		}
	}
	if err := svc.SetInput(session.ID, "half-typed"); err != nil {
		t.Fatalf("SetInput err: %v", err)
	}

	seeded, err := svc.Clear(session.ID)
	if err != nil {
		t.Fatalf("Clear err: %v", err)
	}
	if seeded.Role != chat.RoleBot {
		t.Fatalf("expected seeded bot greeting, got role %s", seeded.Role)
	}

	messages, _ := svc.Transcript(session.ID)
	if len(messages) != 1 {
		t.Fatalf("expected exactly 1 message after clear, got %d", len(messages))
	}

	snapshot, _ := svc.GetSession(session.ID)
	if snapshot.Input != "" {
		t.Fatalf("expected input buffer emptied, got %q", snapshot.Input)
	}
}

func TestVisibilityTransitions(t *testing.T) {
	svc := widget.NewService(nil)
	session := svc.CreateSession()

	// Fullscreen is unreachable from closed.
	if _, err := svc.ToggleFullscreen(session.ID); !errors.Is(err, widget.ErrNotOpen) {
		t.Fatalf("expected ErrNotOpen, got %v", err)
	}

	if v, _ := svc.Open(session.ID); v != widget.VisibilityDocked {
		t.Fatalf("expected docked after open, got %s", v)
	}
	if v, _ := svc.ToggleFullscreen(session.ID); v != widget.VisibilityFullscreen {
		t.Fatalf("expected fullscreen, got %s", v)
	}
	if v, _ := svc.ToggleFullscreen(session.ID); v != widget.VisibilityDocked {
		t.Fatalf("expected docked after second toggle, got %s", v)
	}
	if v, _ := svc.Close(session.ID); v != widget.VisibilityClosed {
		t.Fatalf("expected closed, got %s", v)
	}
}

func TestViewportExitsFullscreen(t *testing.T) {
	svc := widget.NewService(nil)
	session := svc.CreateSession()

	svc.Open(session.ID)
	svc.ToggleFullscreen(session.ID)

	// Below the threshold nothing changes.
	if v, _ := svc.ObserveViewport(session.ID, 500); v != widget.VisibilityFullscreen {
		t.Fatalf("expected fullscreen kept below threshold, got %s", v)
	}

	if v, _ := svc.ObserveViewport(session.ID, 768); v != widget.VisibilityDocked {
		t.Fatalf("expected fullscreen exited at threshold, got %s", v)
	}
}

func TestInputBufferSurvivesClose(t *testing.T) {
	svc := widget.NewService(nil)
	session := svc.CreateSession()

	svc.Open(session.ID)
	if err := svc.SetInput(session.ID, "unsent draft"); err != nil {
		t.Fatalf("SetInput err: %v", err)
	}
	svc.Close(session.ID)
	svc.Open(session.ID)

	snapshot, _ := svc.GetSession(session.ID)
	if snapshot.Input != "unsent draft" {
		t.Fatalf("expected input buffer preserved across close/reopen, got %q", snapshot.Input)
	}
}

func TestSubmitUnknownSession(t *testing.T) {
	svc := widget.NewService(nil)
	if _, err := svc.Submit(context.Background(), "missing", "hello"); !errors.Is(err, widget.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
