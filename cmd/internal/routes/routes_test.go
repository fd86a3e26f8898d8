package routes

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"byteapi/cmd/internal/domain/entity"
	"byteapi/cmd/internal/domain/repository"
	"byteapi/cmd/internal/domain/store"
	"byteapi/cmd/internal/http/handler"
	"byteapi/cmd/internal/http/middleware"
	"byteapi/cmd/internal/service"
	"byteapi/cmd/internal/testutil"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	memberToken = "member-token"
	adminToken  = "admin-token"
	ownerToken  = "owner-token"
)

type testApp struct {
	echo  *echo.Echo
	store *testutil.MemStore
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mem := testutil.NewMemStore()
	mem.Seed(entity.TableUsers,
		testutil.UserRecord("member-1", false, false),
		testutil.UserRecord("admin-1", true, false),
		testutil.UserRecord("owner-1", false, true),
	)

	provider := testutil.NewStaticProvider()
	provider.Add(memberToken, "member-1")
	provider.Add(adminToken, "admin-1")
	provider.Add(ownerToken, "owner-1")

	auth := middleware.NewAuthenticator(&middleware.AuthMiddlewareConfig{
		Provider: provider,
		UserRepo: repository.NewUserRepository(mem),
	})

	validate := testutil.NewValidator()
	e := echo.New()
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.BodyLimit("2K"))

	Register(e, auth, &Handlers{
		Users:         handler.NewUserRoute(service.NewUserService(mem, validate)),
		TeamMembers:   handler.NewTeamMemberRoute(service.NewTeamMemberService(mem, validate)),
		Projects:      handler.NewProjectRoute(service.NewProjectService(mem, validate)),
		Events:        handler.NewEventRoute(service.NewEventService(mem, validate)),
		Announcements: handler.NewAnnouncementRoute(service.NewAnnouncementService(mem, validate)),
		ActivityLog:   handler.NewActivityLogRoute(service.NewActivityLogService(mem, validate)),
	})

	return &testApp{echo: e, store: mem}
}

// do issues a request and returns the recorder plus the decoded JSON body.
func (a *testApp) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var payload *strings.Reader
	if body == nil {
		payload = strings.NewReader("")
	} else if raw, ok := body.(string); ok {
		payload = strings.NewReader(raw)
	} else {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		payload = strings.NewReader(string(b))
	}

	req := httptest.NewRequest(method, path, payload)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.echo.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	}
	return rec, decoded
}

func TestRootAndHealth(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "BYTE Website Backend API", body["message"])
	assert.Equal(t, "1.0.0", body["version"])
	assert.Equal(t, "running", body["status"])

	rec, body = app.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

var guardedRoutes = []struct {
	method string
	path   string
	admin  bool // false means owner-only
}{
	{http.MethodGet, "/api/users", true},
	{http.MethodGet, "/api/users/member-1", true},
	{http.MethodPost, "/api/users", true},
	{http.MethodPut, "/api/users/other-1", false},
	{http.MethodPatch, "/api/users/other-1", false},
	{http.MethodDelete, "/api/users/other-1", false},
	{http.MethodPost, "/api/team-members", true},
	{http.MethodPatch, "/api/team-members/t1", true},
	{http.MethodDelete, "/api/team-members/t1", true},
	{http.MethodPost, "/api/projects", true},
	{http.MethodPut, "/api/projects/p1", true},
	{http.MethodDelete, "/api/projects/p1", true},
	{http.MethodPost, "/api/events", true},
	{http.MethodPatch, "/api/events/e1", true},
	{http.MethodDelete, "/api/events/e1", true},
	{http.MethodPost, "/api/announcements", true},
	{http.MethodPatch, "/api/announcements/a1", true},
	{http.MethodDelete, "/api/announcements/a1", true},
	{http.MethodGet, "/api/activity-log", true},
	{http.MethodGet, "/api/activity-log/l1", true},
	{http.MethodGet, "/api/activity-log/user/member-1", true},
	{http.MethodGet, "/api/activity-log/collection/events", true},
	{http.MethodGet, "/api/activity-log/document/events/e1", true},
	{http.MethodPost, "/api/activity-log", true},
	{http.MethodPatch, "/api/activity-log/l1", false},
	{http.MethodDelete, "/api/activity-log/l1", false},
}

func TestGuardedRoutes_NoHeaderIsUnauthorized(t *testing.T) {
	app := newTestApp(t)

	for _, r := range guardedRoutes {
		rec, body := app.do(t, r.method, r.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", r.method, r.path)
		assert.Equal(t, "Unauthorized", body["error"], "%s %s", r.method, r.path)
	}
	assert.Zero(t, app.store.Count(testutil.OpInsert)+app.store.Count(testutil.OpUpdate)+app.store.Count(testutil.OpDelete))
}

func TestGuardedRoutes_RoleChecks(t *testing.T) {
	app := newTestApp(t)

	for _, r := range guardedRoutes {
		rec, _ := app.do(t, r.method, r.path, memberToken, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code, "member on %s %s", r.method, r.path)

		rec, _ = app.do(t, r.method, r.path, adminToken, nil)
		if r.admin {
			assert.NotEqual(t, http.StatusForbidden, rec.Code, "admin on %s %s", r.method, r.path)
			assert.NotEqual(t, http.StatusUnauthorized, rec.Code, "admin on %s %s", r.method, r.path)
		} else {
			assert.Equal(t, http.StatusForbidden, rec.Code, "admin on %s %s", r.method, r.path)
		}

		rec, _ = app.do(t, r.method, r.path, ownerToken, nil)
		assert.NotEqual(t, http.StatusForbidden, rec.Code, "owner on %s %s", r.method, r.path)
		assert.NotEqual(t, http.StatusUnauthorized, rec.Code, "owner on %s %s", r.method, r.path)
	}
}

func TestPublicRoutes_AllowAnonymous(t *testing.T) {
	app := newTestApp(t)
	paths := []string{
		"/api/team-members",
		"/api/team-members/category/design",
		"/api/projects",
		"/api/projects/type/current",
		"/api/events",
		"/api/events/upcoming",
		"/api/events/past",
		"/api/announcements",
		"/api/announcements/recent",
	}

	for _, p := range paths {
		rec, body := app.do(t, http.MethodGet, p, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, p)
		assert.Equal(t, []any{}, body["data"], p)
	}
}

func TestCreateEvent_InvalidDateNeverReachesStore(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPost, "/api/events", adminToken, map[string]any{
		"id":          "e1",
		"title":       "Kickoff",
		"date":        "2025-13-40",
		"description": "First meeting",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "date must be in YYYY-MM-DD format", body["message"])
	assert.Zero(t, app.store.Count(testutil.OpInsert))
}

func TestCreate_MissingFieldsListed(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPost, "/api/events", adminToken, map[string]any{
		"title": "Kickoff",
		"date":  "",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields: id, date, description", body["message"])
	assert.Equal(t, "Bad Request", body["error"])
}

func TestCreateProject_TechnologiesMustBeArray(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPost, "/api/projects", adminToken, map[string]any{
		"id":           "p1",
		"title":        "Site",
		"status":       "On-going",
		"description":  "The website",
		"technologies": "notarray",
		"github_url":   "https://github.com/byte/site",
		"type":         "current",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, body["message"], "technologies must be an array")
	assert.Zero(t, app.store.Count(testutil.OpInsert))
}

func TestCreateProject_SetsCreatedBy(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPost, "/api/projects", ownerToken, map[string]any{
		"id":           "p1",
		"title":        "Site",
		"status":       "Completed",
		"description":  "The website",
		"technologies": []string{"go"},
		"github_url":   "https://github.com/byte/site",
		"type":         "past",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Project created successfully", body["message"])
	data := body["data"].(map[string]any)
	assert.Equal(t, "owner-1", data["created_by"])
}

func TestUpdate_UnknownIDIsNotFoundWithoutUpdateCall(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPatch, "/api/events/missing", adminToken, map[string]any{"title": "X"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Event not found", body["message"])
	assert.Zero(t, app.store.Count(testutil.OpUpdate))
}

func TestUpdate_BodyChecks(t *testing.T) {
	app := newTestApp(t)
	app.store.Seed(entity.TableEvents, store.Record{"id": "e1", "title": "Old", "date": "2025-01-01", "description": "d"})

	rec, body := app.do(t, http.MethodPatch, "/api/events/e1", adminToken, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No data provided", body["message"])

	rec, body = app.do(t, http.MethodPatch, "/api/events/e1", adminToken, map[string]any{"is_past": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No valid fields to update", body["message"])

	rec, body = app.do(t, http.MethodPut, "/api/events/e1", adminToken, map[string]any{"registration_url": "ftp://x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "registration_url must be a valid URL", body["message"])

	rec, body = app.do(t, http.MethodPatch, "/api/events/e1", adminToken, `{"title":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Bad Request", body["error"])

	assert.Zero(t, app.store.Count(testutil.OpUpdate))
}

func TestPatchEvent_PartialUpdate(t *testing.T) {
	app := newTestApp(t)
	app.store.Seed(entity.TableEvents, store.Record{
		"id":          "e1",
		"title":       "Old",
		"date":        "2025-01-01",
		"description": "Kept",
		"location":    "Room 1",
		"is_past":     true,
		"updated_by":  "someone",
	})

	rec, body := app.do(t, http.MethodPatch, "/api/events/e1", adminToken, map[string]any{"title": "X"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Event updated successfully", body["message"])

	rows := app.store.Rows(entity.TableEvents)
	require.Len(t, rows, 1)
	assert.Equal(t, store.Record{
		"id":          "e1",
		"title":       "X",
		"date":        "2025-01-01",
		"description": "Kept",
		"location":    "Room 1",
		"is_past":     true,
		"updated_by":  "admin-1",
	}, rows[0])
}

func TestDeleteProject_Twice(t *testing.T) {
	app := newTestApp(t)
	app.store.Seed(entity.TableProjects, store.Record{"id": "p1", "title": "Site"})

	rec, body := app.do(t, http.MethodDelete, "/api/projects/p1", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Project deleted successfully", body["message"])
	assert.NotContains(t, body, "data")

	rec, body = app.do(t, http.MethodDelete, "/api/projects/p1", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Project not found", body["message"])
	assert.Equal(t, 1, app.store.Count(testutil.OpDelete))
}

func TestAnnouncement_RoundTrip(t *testing.T) {
	app := newTestApp(t)
	supplied := map[string]any{
		"id":          "a1",
		"date":        "Sep 12, 2025",
		"title":       "Welcome",
		"description": "Hello",
		"image_url":   "https://cdn.example.com/a.png",
	}

	rec, _ := app.do(t, http.MethodPost, "/api/announcements", adminToken, supplied)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := app.do(t, http.MethodGet, "/api/announcements/a1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	want := map[string]any{"updated_by": "admin-1"}
	for k, v := range supplied {
		want[k] = v
	}
	assert.Equal(t, want, body["data"])
}

func TestActivityLog_Limit(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodGet, "/api/activity-log?limit=5000", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "limit must be between 1 and 1000", body["message"])

	rec, _ = app.do(t, http.MethodGet, "/api/activity-log?limit=50&action=create", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	q := app.store.LastQuery()
	require.NotNil(t, q)
	assert.Equal(t, entity.TableActivityLog, q.Table)
	assert.Equal(t, 50, q.Limit)
	assert.Equal(t, []store.Filter{{Field: "action", Op: store.OpEq, Value: "create"}}, q.Filters)

	rec, _ = app.do(t, http.MethodGet, "/api/activity-log?limit=abc", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 100, app.store.LastQuery().Limit)
}

func TestActivityLog_CreateStampsCaller(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPost, "/api/activity-log", adminToken, map[string]any{
		"action":      "update",
		"collection":  "events",
		"document_id": "e1",
		"changes":     map[string]any{"title": "X"},
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Activity log created successfully", body["message"])
	assert.Equal(t, "admin-1", body["data"].(map[string]any)["user_id"])
}

func TestEvents_FiltersAndSubRoutes(t *testing.T) {
	app := newTestApp(t)
	app.store.Seed(entity.TableEvents,
		store.Record{"id": "old", "date": "2024-01-01", "is_past": true, "type": "social"},
		store.Record{"id": "soon", "date": "2099-02-01", "is_past": false, "type": "workshop"},
		store.Record{"id": "later", "date": "2099-06-01", "is_past": false, "type": "social"},
	)

	_, body := app.do(t, http.MethodGet, "/api/events", "", nil)
	assert.Equal(t, []string{"later", "soon", "old"}, ids(body))

	_, body = app.do(t, http.MethodGet, "/api/events?is_past=TRUE", "", nil)
	assert.Equal(t, []string{"old"}, ids(body))

	_, body = app.do(t, http.MethodGet, "/api/events?type=social&is_past=false", "", nil)
	assert.Equal(t, []string{"later"}, ids(body))

	_, body = app.do(t, http.MethodGet, "/api/events/upcoming", "", nil)
	assert.Equal(t, []string{"soon", "later"}, ids(body))

	_, body = app.do(t, http.MethodGet, "/api/events/past", "", nil)
	assert.Equal(t, []string{"old"}, ids(body))
}

func TestProjects_ByType(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodGet, "/api/projects/type/future", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid project type. Must be 'current' or 'past'", body["message"])
}

func TestTeamMembers_CategoryAndDefaults(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPost, "/api/team-members", adminToken, map[string]any{
		"id":              "t1",
		"name":            "Ada",
		"position":        "President",
		"profile_pic_url": "https://cdn.example.com/ada.png",
		"rank":            10,
		"categories":      []string{"board"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []any{}, body["data"].(map[string]any)["connections"])

	rec, body = app.do(t, http.MethodPost, "/api/team-members", adminToken, map[string]any{
		"id":              "t2",
		"name":            "Bob",
		"position":        "Member",
		"profile_pic_url": "https://cdn.example.com/bob.png",
		"rank":            1,
		"categories":      []string{},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "categories must be a non-empty array", body["message"])

	_, body = app.do(t, http.MethodGet, "/api/team-members/category/board", "", nil)
	assert.Equal(t, []string{"t1"}, ids(body))

	_, body = app.do(t, http.MethodGet, "/api/team-members?category=alumni", "", nil)
	assert.Empty(t, ids(body))
}

func TestUsers_CreateDefaultsAndEmail(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodPost, "/api/users", adminToken, map[string]any{
		"uid":      "new-1",
		"username": "newbie",
		"email":    "newbie.example.com",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", body["message"])

	rec, body = app.do(t, http.MethodPost, "/api/users", adminToken, map[string]any{
		"uid":      "new-1",
		"username": "newbie",
		"email":    "newbie@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	data := body["data"].(map[string]any)
	assert.Equal(t, "member", data["role"])
	assert.Equal(t, false, data["is_admin"])
	assert.Equal(t, false, data["is_owner"])
	assert.Equal(t, "active", data["status"])
	assert.Equal(t, false, data["email_verified"])
	assert.NotContains(t, data, "updated_by")
}

func TestUsers_Me(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodGet, "/api/users/me", memberToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "member-1", body["data"].(map[string]any)["uid"])

	rec, _ = app.do(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStoreFailure_GenericMessage(t *testing.T) {
	app := newTestApp(t)
	app.store.FailOn[testutil.OpSelect] = true

	rec, body := app.do(t, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to fetch projects", body["message"])
	assert.NotContains(t, body["message"], "store unavailable")
}

func TestCreate_EmptyEchoIsServerError(t *testing.T) {
	app := newTestApp(t)
	app.store.EmptyEcho = true

	rec, body := app.do(t, http.MethodPost, "/api/announcements", adminToken, map[string]any{
		"id": "a1", "date": "today", "title": "t", "description": "d",
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to create announcement", body["message"])
}

func TestFrameworkErrors_UseEnvelope(t *testing.T) {
	app := newTestApp(t)

	rec, body := app.do(t, http.MethodGet, "/api/nothing-here", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", body["error"])
	assert.EqualValues(t, http.StatusNotFound, body["code"])

	rec, body = app.do(t, http.MethodPost, "/api/health", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "Method Not Allowed", body["error"])

	big := map[string]any{"id": "a1", "description": strings.Repeat("x", 4096)}
	rec, body = app.do(t, http.MethodPost, "/api/announcements", adminToken, big)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.EqualValues(t, http.StatusRequestEntityTooLarge, body["code"])
}

func TestTrailingSlashIsIgnored(t *testing.T) {
	app := newTestApp(t)

	rec, _ := app.do(t, http.MethodGet, "/api/events/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func ids(body map[string]any) []string {
	rows, _ := body["data"].([]any)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.(map[string]any)["id"].(string))
	}
	return out
}
