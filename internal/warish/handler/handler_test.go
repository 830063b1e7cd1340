package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"warishd/internal/warish/forest"
	"warishd/internal/warish/handler/mocks"
	"warishd/internal/warish/models"
	"warishd/pkg/domain"
	dErrors "warishd/pkg/domain-errors"
)

//go:generate mockgen -source=handler.go -destination=mocks/heir-mocks.go -package=mocks Service

type HeirHandlerSuite struct {
	suite.Suite
}

func TestHeirHandlerSuite(t *testing.T) {
	suite.Run(t, new(HeirHandlerSuite))
}

func newTestHandler(t *testing.T) (chi.Router, *mocks.MockService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(mockService, logger).Register(r)
	return r, mockService
}

func (s *HeirHandlerSuite) serve(r chi.Router, method, target string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.T(), err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testRecord(appID domain.ApplicationID) *models.HeirRecord {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	return &models.HeirRecord{
		ID:            domain.NewHeirID(),
		ApplicationID: appID,
		Name:          "Abdul Karim",
		Gender:        models.GenderMale,
		Relation:      models.RelationSon,
		LivingStatus:  models.LivingStatusAlive,
		MaritalStatus: models.MaritalStatusMarried,
		SpouseName:    "Rahima Begum",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *HeirHandlerSuite) TestGetForest() {
	r, mockService := newTestHandler(s.T())
	appID := domain.NewApplicationID()
	rec := testRecord(appID)

	mockService.EXPECT().LoadForest(gomock.Any(), appID).Return(&forest.Forest{
		Roots: []*forest.Node{{HeirRecord: rec, Serial: "1", Depth: 0, Children: []*forest.Node{}}},
	}, nil)

	w := s.serve(r, http.MethodGet, "/applications/"+appID.String()+"/heirs", nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	roots := resp["roots"].([]any)
	require.Len(s.T(), roots, 1)
	root := roots[0].(map[string]any)
	assert.Equal(s.T(), "1", root["serial"])
	assert.Equal(s.T(), "Abdul Karim", root["name"])
	assert.Equal(s.T(), "married", root["maritial_status"])
}

func (s *HeirHandlerSuite) TestGetForestFlatView() {
	r, mockService := newTestHandler(s.T())
	appID := domain.NewApplicationID()
	rec := testRecord(appID)

	mockService.EXPECT().ListHeirs(gomock.Any(), appID).Return([]*models.HeirRecord{rec}, nil)

	w := s.serve(r, http.MethodGet, "/applications/"+appID.String()+"/heirs?view=flat", nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	heirs := resp["heirs"].([]any)
	require.Len(s.T(), heirs, 1)
	assert.Equal(s.T(), rec.ID.String(), heirs[0].(map[string]any)["id"])
}

func (s *HeirHandlerSuite) TestGetForestBadApplicationID() {
	r, _ := newTestHandler(s.T())

	w := s.serve(r, http.MethodGet, "/applications/not-a-uuid/heirs", nil)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *HeirHandlerSuite) TestCreateHeir() {
	r, mockService := newTestHandler(s.T())
	appID := domain.NewApplicationID()
	rec := testRecord(appID)

	mockService.EXPECT().CreateHeir(gomock.Any(), appID, gomock.Any()).
		DoAndReturn(func(_ any, _ domain.ApplicationID, req *models.CreateHeirRequest) (*models.HeirRecord, error) {
			assert.Equal(s.T(), "Abdul Karim", req.Name)
			assert.Equal(s.T(), "son", req.Relation)
			return rec, nil
		})

	w := s.serve(r, http.MethodPost, "/applications/"+appID.String()+"/heirs", models.CreateHeirRequest{
		Name:          "Abdul Karim",
		Gender:        "male",
		Relation:      "son",
		LivingStatus:  "alive",
		MaritalStatus: "married",
		SpouseName:    "Rahima Begum",
	})

	assert.Equal(s.T(), http.StatusCreated, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), rec.ID.String(), resp["id"])
	assert.Equal(s.T(), appID.String(), resp["application_id"])
}

func (s *HeirHandlerSuite) TestCreateHeirMalformedBody() {
	r, _ := newTestHandler(s.T())
	appID := domain.NewApplicationID()

	req := httptest.NewRequest(http.MethodPost, "/applications/"+appID.String()+"/heirs", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *HeirHandlerSuite) TestCreateHeirWrongContentType() {
	r, _ := newTestHandler(s.T())
	appID := domain.NewApplicationID()

	req := httptest.NewRequest(http.MethodPost, "/applications/"+appID.String()+"/heirs", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(s.T(), http.StatusUnsupportedMediaType, w.Code)
}

func (s *HeirHandlerSuite) TestCreateHeirGatingStatus() {
	r, mockService := newTestHandler(s.T())
	appID := domain.NewApplicationID()

	mockService.EXPECT().CreateHeir(gomock.Any(), appID, gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeGatingViolation, "parent is alive and cannot have heirs recorded beneath them"))

	w := s.serve(r, http.MethodPost, "/applications/"+appID.String()+"/heirs", models.CreateHeirRequest{
		Name: "Salma", Gender: "female", Relation: "daughter", LivingStatus: "alive", MaritalStatus: "unmarried",
	})

	assert.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), string(dErrors.CodeGatingViolation), resp["code"])
}

func (s *HeirHandlerSuite) TestUpdateHeir() {
	r, mockService := newTestHandler(s.T())
	appID := domain.NewApplicationID()
	rec := testRecord(appID)
	rec.LivingStatus = models.LivingStatusDead

	mockService.EXPECT().UpdateHeir(gomock.Any(), rec.ID, gomock.Any()).Return(rec, nil)

	status := "dead"
	w := s.serve(r, http.MethodPatch, "/applications/"+appID.String()+"/heirs/"+rec.ID.String(), models.UpdateHeirRequest{
		LivingStatus: &status,
	})

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), "dead", resp["living_status"])
}

func (s *HeirHandlerSuite) TestUpdateHeirNotFound() {
	r, mockService := newTestHandler(s.T())
	appID := domain.NewApplicationID()
	heirID := domain.NewHeirID()

	mockService.EXPECT().UpdateHeir(gomock.Any(), heirID, gomock.Any()).
		Return(nil, dErrors.New(dErrors.CodeNotFound, "heir not found"))

	name := "Renamed"
	w := s.serve(r, http.MethodPatch, "/applications/"+appID.String()+"/heirs/"+heirID.String(), models.UpdateHeirRequest{Name: &name})

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *HeirHandlerSuite) TestDeleteHeirCascade() {
	r, mockService := newTestHandler(s.T())
	appID := domain.NewApplicationID()
	child := domain.NewHeirID()
	target := domain.NewHeirID()

	mockService.EXPECT().DeleteHeir(gomock.Any(), target).Return(&models.DeleteHeirResult{
		DeletedIDs: []domain.HeirID{child, target},
	}, nil)

	w := s.serve(r, http.MethodDelete, "/applications/"+appID.String()+"/heirs/"+target.String(), nil)

	assert.Equal(s.T(), http.StatusOK, w.Code)
	var resp models.DeleteHeirResult
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), []domain.HeirID{child, target}, resp.DeletedIDs)
}

func (s *HeirHandlerSuite) TestDeleteHeirCascadeFailure() {
	r, mockService := newTestHandler(s.T())
	appID := domain.NewApplicationID()
	target := domain.NewHeirID()
	remaining := domain.NewHeirID()

	cascadeErr := dErrors.NewCascadeError(
		[]string{},
		[]string{remaining.String(), target.String()},
		dErrors.New(dErrors.CodeInternal, "store failure"),
	)
	mockService.EXPECT().DeleteHeir(gomock.Any(), target).Return(nil, cascadeErr)

	w := s.serve(r, http.MethodDelete, "/applications/"+appID.String()+"/heirs/"+target.String(), nil)

	assert.Equal(s.T(), http.StatusBadGateway, w.Code)
	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(s.T(), string(dErrors.CodeCascadeFailure), resp["code"])
	ids := resp["remaining_ids"].([]any)
	assert.Len(s.T(), ids, 2)
}
