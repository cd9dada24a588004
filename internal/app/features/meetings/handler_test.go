package meetings_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/dalemusser/agorahub/internal/app/engine"
	"github.com/dalemusser/agorahub/internal/app/features/meetings"
	"github.com/dalemusser/agorahub/internal/app/system/auth"
	"github.com/dalemusser/agorahub/internal/app/system/roster"
	"github.com/dalemusser/agorahub/internal/domain/models"
	"github.com/dalemusser/agorahub/internal/testutil"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

type env struct {
	router http.Handler
	eng    *engine.Engine
	clock  *testutil.FakeClock
	gate   *testutil.FakeGate
	ledger *testutil.FakeLedger
}

func newEnv(t *testing.T, approved ...string) *env {
	t.Helper()
	e := &env{
		clock:  testutil.NewFakeClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		gate:   testutil.NewFakeGate(approved...),
		ledger: testutil.NewFakeLedger(),
	}
	e.eng = engine.New(engine.Config{
		Store:  testutil.NewMemStore(),
		Gate:   e.gate,
		Roster: roster.New(5),
		Ledger: e.ledger,
		Clock:  e.clock,
	})

	sm, err := auth.NewSessionManager(testSessionKey, "agorahub_session", "", false, "", zap.NewNop())
	if err != nil {
		t.Fatalf("NewSessionManager failed: %v", err)
	}
	e.router = meetings.Routes(meetings.NewHandler(e.eng, zap.NewNop()), sm)
	return e
}

// do routes a request through the feature router as the given user (nil
// for anonymous) and returns the recorder.
func (e *env) do(method, target, body string, u *auth.SessionUser) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	if u != nil {
		r = testutil.WithUser(r, u)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body not JSON: %v (%s)", err, w.Body.String())
	}
	return body.Error
}

func TestCreateMeeting_AdminOnly(t *testing.T) {
	e := newEnv(t)

	if w := e.do(http.MethodPost, "/", `{"id":"m1"}`, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous create: got %d, want 401", w.Code)
	}
	if w := e.do(http.MethodPost, "/", `{"id":"m1"}`, testutil.MemberUser("alice")); w.Code != http.StatusForbidden {
		t.Errorf("member create: got %d, want 403", w.Code)
	}

	w := e.do(http.MethodPost, "/", `{"id":"m1"}`, testutil.AdminUser("admin-1"))
	if w.Code != http.StatusCreated {
		t.Fatalf("admin create: got %d, want 201 (%s)", w.Code, w.Body.String())
	}
	var m models.Meeting
	if err := json.Unmarshal(w.Body.Bytes(), &m); err != nil {
		t.Fatalf("create response not a meeting: %v", err)
	}
	if m.ID != "m1" || m.Phase != models.PhaseSignup {
		t.Errorf("created meeting: got id=%q phase=%q", m.ID, m.Phase)
	}

	// Duplicate id maps to 409.
	if w := e.do(http.MethodPost, "/", `{"id":"m1"}`, testutil.AdminUser("admin-1")); w.Code != http.StatusConflict {
		t.Errorf("duplicate create: got %d, want 409", w.Code)
	}

	// Empty body is allowed; the engine generates an id.
	w = e.do(http.MethodPost, "/", "", testutil.AdminUser("admin-1"))
	if w.Code != http.StatusCreated {
		t.Errorf("bodyless create: got %d, want 201 (%s)", w.Code, w.Body.String())
	}
}

func TestSignUp(t *testing.T) {
	e := newEnv(t, "alice")
	e.do(http.MethodPost, "/", `{"id":"m1"}`, testutil.AdminUser("admin-1"))

	if w := e.do(http.MethodPost, "/m1/signup", "", testutil.MemberUser("alice")); w.Code != http.StatusNoContent {
		t.Errorf("signup: got %d, want 204 (%s)", w.Code, w.Body.String())
	}
	if w := e.do(http.MethodPost, "/m1/signup", "", testutil.MemberUser("alice")); w.Code != http.StatusConflict {
		t.Errorf("duplicate signup: got %d, want 409", w.Code)
	}

	w := e.do(http.MethodPost, "/m1/signup", "", testutil.MemberUser("mallory"))
	if w.Code != http.StatusForbidden {
		t.Errorf("non-member signup: got %d, want 403", w.Code)
	}
	if code := errCode(t, w); code != "not_a_member" {
		t.Errorf("non-member signup error code: got %q", code)
	}

	if w := e.do(http.MethodPost, "/ghost/signup", "", testutil.MemberUser("alice")); w.Code != http.StatusNotFound {
		t.Errorf("unknown meeting signup: got %d, want 404", w.Code)
	}
}

func TestAdvance(t *testing.T) {
	e := newEnv(t, "alice", "bob", "carol")
	e.do(http.MethodPost, "/", `{"id":"m1"}`, testutil.AdminUser("admin-1"))
	for _, id := range []string{"alice", "bob", "carol"} {
		e.do(http.MethodPost, "/m1/signup", "", testutil.MemberUser(id))
	}

	// Before the phase end time.
	if w := e.do(http.MethodPost, "/m1/advance", "", testutil.MemberUser("alice")); w.Code != http.StatusConflict {
		t.Errorf("early advance: got %d, want 409", w.Code)
	}

	e.clock.Advance(25 * time.Hour)

	if w := e.do(http.MethodPost, "/m1/advance", "", testutil.MemberUser("outsider")); w.Code != http.StatusForbidden {
		t.Errorf("outsider advance: got %d, want 403", w.Code)
	}

	w := e.do(http.MethodPost, "/m1/advance", "", testutil.MemberUser("alice"))
	if w.Code != http.StatusOK {
		t.Fatalf("advance: got %d, want 200 (%s)", w.Code, w.Body.String())
	}
	var m models.Meeting
	json.Unmarshal(w.Body.Bytes(), &m)
	if m.Phase != models.PhaseContribution {
		t.Errorf("phase after advance: got %q, want contribution", m.Phase)
	}
	if len(m.Groups) == 0 {
		t.Error("advance response should carry assigned groups")
	}
}

func TestForceAdvance_AdminOnly(t *testing.T) {
	e := newEnv(t, "alice", "bob")
	e.do(http.MethodPost, "/", `{"id":"m1"}`, testutil.AdminUser("admin-1"))
	e.do(http.MethodPost, "/m1/signup", "", testutil.MemberUser("alice"))
	e.do(http.MethodPost, "/m1/signup", "", testutil.MemberUser("bob"))

	if w := e.do(http.MethodPost, "/m1/force-advance", "", testutil.MemberUser("alice")); w.Code != http.StatusForbidden {
		t.Errorf("member force-advance: got %d, want 403", w.Code)
	}

	w := e.do(http.MethodPost, "/m1/force-advance", "", testutil.AdminUser("admin-1"))
	if w.Code != http.StatusOK {
		t.Fatalf("force-advance: got %d, want 200 (%s)", w.Code, w.Body.String())
	}
	var m models.Meeting
	json.Unmarshal(w.Body.Bytes(), &m)
	if m.Phase != models.PhaseContribution {
		t.Errorf("phase: got %q, want contribution", m.Phase)
	}
}

// toContribution drives m1 into the contribution phase with three members.
func toContribution(t *testing.T, e *env) []string {
	t.Helper()
	e.do(http.MethodPost, "/", `{"id":"m1"}`, testutil.AdminUser("admin-1"))
	for _, id := range []string{"alice", "bob", "carol"} {
		if w := e.do(http.MethodPost, "/m1/signup", "", testutil.MemberUser(id)); w.Code != http.StatusNoContent {
			t.Fatalf("signup %s: got %d (%s)", id, w.Code, w.Body.String())
		}
	}
	e.clock.Advance(25 * time.Hour)
	if w := e.do(http.MethodPost, "/m1/advance", "", testutil.MemberUser("alice")); w.Code != http.StatusOK {
		t.Fatalf("advance to contribution: got %d (%s)", w.Code, w.Body.String())
	}
	m, err := e.eng.GetMeeting("m1")
	if err != nil {
		t.Fatalf("GetMeeting: %v", err)
	}
	return m.Groups[0].Members
}

func TestSubmitContribution(t *testing.T) {
	e := newEnv(t, "alice", "bob", "carol")
	toContribution(t, e)

	body := `{"text":"<p>proposal</p><script>alert(1)</script>","files":["blob-7"]}`
	if w := e.do(http.MethodPost, "/m1/contributions", body, testutil.MemberUser("alice")); w.Code != http.StatusNoContent {
		t.Fatalf("contribution: got %d, want 204 (%s)", w.Code, w.Body.String())
	}

	m, _ := e.eng.GetMeeting("m1")
	stored := m.Groups[0].Contributions["alice"]
	if strings.Contains(stored.Text, "<script>") {
		t.Errorf("script tag survived sanitization: %q", stored.Text)
	}
	if !strings.Contains(stored.Text, "proposal") {
		t.Errorf("sanitization dropped the content: %q", stored.Text)
	}

	if w := e.do(http.MethodPost, "/m1/contributions", body, testutil.MemberUser("alice")); w.Code != http.StatusConflict {
		t.Errorf("resubmission: got %d, want 409", w.Code)
	}
	if w := e.do(http.MethodPost, "/m1/contributions", `{"text":""}`, testutil.MemberUser("bob")); w.Code != http.StatusBadRequest {
		t.Errorf("empty contribution: got %d, want 400", w.Code)
	}
	if w := e.do(http.MethodPost, "/m1/contributions", `{bad json`, testutil.MemberUser("bob")); w.Code != http.StatusBadRequest {
		t.Errorf("malformed body: got %d, want 400", w.Code)
	}
}

func TestSubmitRanking(t *testing.T) {
	e := newEnv(t, "alice", "bob", "carol")
	members := toContribution(t, e)

	// Rankings are rejected outside the ranking phase.
	valid := rankingBody(members...)
	if w := e.do(http.MethodPost, "/m1/rankings", valid, testutil.MemberUser("alice")); w.Code != http.StatusConflict {
		t.Errorf("ranking during contribution: got %d, want 409", w.Code)
	}

	e.clock.Advance(121 * time.Hour)
	if w := e.do(http.MethodPost, "/m1/advance", "", testutil.MemberUser("alice")); w.Code != http.StatusOK {
		t.Fatalf("advance to ranking: got %d (%s)", w.Code, w.Body.String())
	}

	if w := e.do(http.MethodPost, "/m1/rankings", valid, testutil.MemberUser("alice")); w.Code != http.StatusNoContent {
		t.Fatalf("ranking: got %d, want 204 (%s)", w.Code, w.Body.String())
	}

	// Incomplete permutation maps to 422.
	short := rankingBody(members[0], members[1])
	w := e.do(http.MethodPost, "/m1/rankings", short, testutil.MemberUser("bob"))
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("short ranking: got %d, want 422", w.Code)
	}
	if code := errCode(t, w); code != "invalid_ranking" {
		t.Errorf("short ranking error code: got %q", code)
	}

	if w := e.do(http.MethodPost, "/m1/rankings", `{"ranking":[]}`, testutil.MemberUser("bob")); w.Code != http.StatusBadRequest {
		t.Errorf("empty ranking: got %d, want 400", w.Code)
	}
}

func rankingBody(order ...string) string {
	entries := make([]map[string]any, len(order))
	for i, p := range order {
		entries[i] = map[string]any{"participant": p, "rank": i + 1}
	}
	b, _ := json.Marshal(map[string]any{"ranking": entries})
	return string(b)
}

func TestGetAndList(t *testing.T) {
	e := newEnv(t, "alice")
	e.do(http.MethodPost, "/", `{"id":"m1"}`, testutil.AdminUser("admin-1"))
	e.clock.Advance(time.Hour)
	e.do(http.MethodPost, "/", `{"id":"m2"}`, testutil.AdminUser("admin-1"))

	if w := e.do(http.MethodGet, "/m1", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous get: got %d, want 401", w.Code)
	}

	w := e.do(http.MethodGet, "/m1", "", testutil.MemberUser("alice"))
	if w.Code != http.StatusOK {
		t.Fatalf("get: got %d (%s)", w.Code, w.Body.String())
	}
	var m models.Meeting
	json.Unmarshal(w.Body.Bytes(), &m)
	if m.ID != "m1" {
		t.Errorf("get returned id %q", m.ID)
	}

	if w := e.do(http.MethodGet, "/ghost", "", testutil.MemberUser("alice")); w.Code != http.StatusNotFound {
		t.Errorf("unknown get: got %d, want 404", w.Code)
	}

	w = e.do(http.MethodGet, "/", "", testutil.MemberUser("alice"))
	if w.Code != http.StatusOK {
		t.Fatalf("list: got %d (%s)", w.Code, w.Body.String())
	}
	var list struct {
		Meetings []models.Meeting `json:"meetings"`
	}
	json.Unmarshal(w.Body.Bytes(), &list)
	if len(list.Meetings) != 2 || list.Meetings[0].ID != "m2" {
		t.Errorf("list order: got %+v", list.Meetings)
	}
}
