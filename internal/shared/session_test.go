package shared_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/rag-admin/rag-admin/internal/shared"
	_ "github.com/rag-admin/rag-admin/testing"
)

func newSessionManager(t *testing.T) *shared.SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return shared.NewSessionManager(client, "test_session", "cookie-secret", time.Hour, false)
}

func TestSessionRoundTrip(t *testing.T) {
	sm := newSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.Set("k", "v")

	res := httptest.NewRecorder()
	if err := sm.Commit(ctx, res, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}

	cookies := res.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "test_session" {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	restored, err := sm.Load(ctx, next)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if restored.ID != sess.ID {
		t.Fatalf("expected same session id")
	}
	if restored.Get("k") != "v" {
		t.Fatalf("expected stored value to survive the round trip")
	}
}

func TestSessionCookieSignatureEnforced(t *testing.T) {
	sm := newSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.Set("k", "v")
	res := httptest.NewRecorder()
	if err := sm.Commit(ctx, res, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookie := res.Result().Cookies()[0]
	if !strings.Contains(cookie.Value, ".") {
		t.Fatalf("expected signed cookie value, got %q", cookie.Value)
	}

	// Swapping the session ID while keeping the signature must not resolve
	// to any session, let alone the original one.
	forged := *cookie
	forged.Value = "forged-id" + cookie.Value[strings.Index(cookie.Value, "."):]
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(&forged)
	restored, err := sm.Load(ctx, next)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if restored.ID == sess.ID || restored.Get("k") != "" {
		t.Fatalf("expected forged cookie to yield a fresh session")
	}
}

func TestSessionDestroy(t *testing.T) {
	sm := newSessionManager(t)
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	sess.Set("k", "v")
	res := httptest.NewRecorder()
	if err := sm.Commit(ctx, res, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookie := res.Result().Cookies()[0]

	sm.Destroy(sess)
	res = httptest.NewRecorder()
	if err := sm.Commit(ctx, res, sess); err != nil {
		t.Fatalf("commit destroy: %v", err)
	}
	if got := res.Result().Cookies()[0].MaxAge; got != -1 {
		t.Fatalf("expected cookie expiry, got MaxAge %d", got)
	}

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookie)
	restored, err := sm.Load(ctx, next)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if restored.Get("k") != "" {
		t.Fatalf("expected destroyed session emptied")
	}
}

func TestCSRFTokenLifecycle(t *testing.T) {
	sm := newSessionManager(t)
	cm := shared.NewCSRFManager("csrf-secret")
	ctx := context.Background()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := sm.Load(ctx, req)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	token, err := cm.EnsureToken(ctx, sess)
	if err != nil {
		t.Fatalf("ensure token: %v", err)
	}
	again, err := cm.EnsureToken(ctx, sess)
	if err != nil || again != token {
		t.Fatalf("expected stable token per session, got %q vs %q (%v)", token, again, err)
	}

	if err := cm.VerifyToken(ctx, sess, token); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if err := cm.VerifyToken(ctx, sess, "forged"); err != shared.ErrCSRFTokenMismatch {
		t.Fatalf("expected mismatch error, got %v", err)
	}
	if err := cm.VerifyToken(ctx, sess, ""); err != shared.ErrCSRFTokenMissing {
		t.Fatalf("expected missing error, got %v", err)
	}
}
