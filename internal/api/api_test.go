package api

import (
	"alcyxob/coaching-marketplace/internal/domain"
	"alcyxob/coaching-marketplace/internal/repository/memory"
	"alcyxob/coaching-marketplace/internal/service"
	"alcyxob/coaching-marketplace/internal/stats"
	"alcyxob/coaching-marketplace/internal/storage"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-secret"

type testServer struct {
	router *gin.Engine
	store  *memory.Store
	auth   service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	calc := stats.NewCalculator(store.Schedules(), store.Exercises(), store.Workshops())
	auth := service.NewAuthService(store.Users(), testSecret, time.Hour)
	catalog := service.NewCatalogService(
		store.Activities(), store.Coaches(), store.Media(), store.Reviews(),
		stats.NewBatch(calc, 2), stats.NewFinalityDetector(store.Workshops()),
		storage.NewPassthroughStorage(), time.Minute,
	)
	planning := service.NewPlanningService(store.Activities(), store.Schedules(), store.Exercises(), store.Plates())

	router := gin.New()
	router.Use(RequestIDMiddleware())
	SetupRoutes(router, testSecret, auth, catalog, planning, RouteOptions{Metrics: true})
	return &testServer{router: router, store: store, auth: auth}
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	_, err := s.auth.Register(ctx, "Client", "client@example.com", "password123", domain.RoleClient)
	require.NoError(t, err)
	token, _, err := s.auth.Login(ctx, "client@example.com", "password123")
	require.NoError(t, err)
	return token
}

func (s *testServer) do(req *http.Request) (*httptest.ResponseRecorder, map[string]interface{}) {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var body map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func planningRequest(query, token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/get-product-planning"+query, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestPlanningRequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req := planningRequest("?actividad_id=42", "")
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w, body := srv.do(req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
		require.Equal(t, false, body["success"])
		require.NotEmpty(t, body["error"])
	}
}

func TestPlanningValidatesActivityID(t *testing.T) {
	srv := newTestServer(t)
	token := srv.token(t)

	for _, query := range []string{"", "?actividad_id=", "?actividad_id=abc", "?actividad_id=-3", "?actividad_id=0"} {
		w, body := srv.do(planningRequest(query, token))
		require.Equal(t, http.StatusBadRequest, w.Code, query)
		require.Equal(t, false, body["success"])
	}
}

func TestPlanningEndToEnd(t *testing.T) {
	srv := newTestServer(t)
	token := srv.token(t)
	srv.store.AddActivity(domain.Activity{ID: 42, Type: domain.TypeProgram, Categoria: "fitness"})
	srv.store.AddExercise(domain.CatalogEntity{ID: 5, Name: "Squat", IsActive: boolPtr(true), ActivityMap: map[string]interface{}{"42": true}})
	srv.store.AddWeeklyPlan(domain.PlanExercises, domain.WeeklyPlan{ActivityID: 42, WeekNumber: 1, Lunes: `[{"id":5,"block":2}]`})

	w, body := srv.do(planningRequest("?actividad_id=42", token))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	require.Equal(t, float64(1), data["semanas"])
	require.Equal(t, float64(1), data["periods"])
	require.Equal(t, float64(1), data["totalSessions"])
	require.Equal(t, []interface{}{"Squat"}, data["uniqueExercises"])

	day := data["weeklySchedule"].(map[string]interface{})["1"].(map[string]interface{})["1"].(map[string]interface{})
	require.Equal(t, float64(2), day["blockCount"])
	exercises := day["ejercicios"].([]interface{})
	require.Len(t, exercises, 1)
	ex := exercises[0].(map[string]interface{})
	require.Equal(t, float64(5), ex["id"])
	require.Equal(t, "Squat", ex["name"])
	require.Equal(t, float64(2), ex["block"])
	require.Equal(t, float64(1), ex["orden"])
	require.Equal(t, true, ex["activo"])
}

func TestPlanningErrors(t *testing.T) {
	srv := newTestServer(t)
	token := srv.token(t)

	w, body := srv.do(planningRequest("?actividad_id=77", token))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, false, body["success"])

	srv.store.AddActivity(domain.Activity{ID: 77, Type: domain.TypeProgram})
	srv.store.FailActivity(77, errors.New("connection refused"))
	w, body = srv.do(planningRequest("?actividad_id=77", token))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Failed to load activity planning", body["error"])
}

func TestSearchListing(t *testing.T) {
	srv := newTestServer(t)
	srv.store.AddCoach(domain.Coach{ID: "c1", FullName: "Ana Ruiz", AvatarURL: "https://img.test/ana.png", Specialization: "Yoga", Rating: 4.9})
	srv.store.AddActivity(domain.Activity{ID: 1, CoachID: "c1", Title: "Flow", Type: domain.TypeProgram, Objectives: []interface{}{"movilidad"}})
	srv.store.AddActivity(domain.Activity{ID: 2, CoachID: "c1", Title: "Undated", Type: domain.TypeWorkshop})
	srv.store.AddTopic(domain.WorkshopTopic{ActivityID: 2, Name: "No dates yet"})
	srv.store.AddActivity(domain.Activity{ID: 3, CoachID: "c1", Title: "Retreat", Type: domain.TypeWorkshop})
	srv.store.AddTopic(domain.WorkshopTopic{ActivityID: 3, Name: "Day one", Schedule: `{"originales":[{"fecha":"2999-05-01"}]}`})
	srv.store.AddMedia(domain.ActivityMedia{ActivityID: 1, ImageKey: "covers/1.jpg"})

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/activities/search", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 2)

	byID := map[float64]map[string]interface{}{}
	for _, item := range items {
		byID[item["id"].(float64)] = item
	}
	require.NotContains(t, byID, float64(2), "workshop without dates is finished")

	program := byID[1]
	require.Equal(t, "Flow", program["title"])
	require.Equal(t, []interface{}{"movilidad"}, program["objetivos"])
	require.Equal(t, "Ana Ruiz", program["coach_name"])
	require.Equal(t, "https://img.test/ana.png", program["coach_avatar_url"])
	require.Equal(t, "Yoga", program["specialization"])
	require.Equal(t, map[string]interface{}{"image_url": "covers/1.jpg", "video_url": ""}, program["media"])
	require.Equal(t, float64(0), program["exercisesCount"])
	require.NotContains(t, program, "cantidadTemas")
	require.NotContains(t, program, "objectives")

	workshop := byID[3]
	require.Equal(t, float64(1), workshop["cantidadTemas"])
	require.Equal(t, float64(1), workshop["cantidadDias"])
	require.Equal(t, float64(1), workshop["totalSessions"])
	require.Nil(t, workshop["media"])
}

func TestSearchFailure(t *testing.T) {
	srv := newTestServer(t)
	srv.store.FailWith(errors.New("down"))

	w, body := srv.do(httptest.NewRequest(http.MethodGet, "/activities/search?term=x", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, false, body["success"])
}

func TestRequestIDHeader(t *testing.T) {
	srv := newTestServer(t)

	w, _ := srv.do(httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "caller-id")
	w, _ = srv.do(req)
	require.Equal(t, "caller-id", w.Header().Get(RequestIDHeader))
}

func TestRegisterLoginAndMe(t *testing.T) {
	srv := newTestServer(t)

	payload, _ := json.Marshal(map[string]string{"name": "Ana", "email": "ana@example.com", "password": "password123", "role": "coach"})
	w, body := srv.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(payload)))
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "coach", body["role"])

	w, _ = srv.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(payload)))
	require.Equal(t, http.StatusConflict, w.Code)

	bad, _ := json.Marshal(map[string]string{"name": "X", "email": "x@example.com", "password": "password123", "role": "trainer"})
	w, _ = srv.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader(bad)))
	require.Equal(t, http.StatusBadRequest, w.Code)

	login, _ := json.Marshal(map[string]string{"email": "ana@example.com", "password": "password123"})
	w, body = srv.do(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(login)))
	require.Equal(t, http.StatusOK, w.Code)
	token := body["token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w, body = srv.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "coach", body["role"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "coaching_catalog_finished_workshops_total")
}

func boolPtr(b bool) *bool { return &b }
