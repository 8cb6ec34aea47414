package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"probuild/internal/models"
	"probuild/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func call(r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func statusRouter(statuses *memStatuses, deps *memDeps, columns *memColumns) *gin.Engine {
	h := NewJobStatusHandler(services.NewJobStatusService(statuses, deps, columns))
	r := gin.New()
	r.POST("/job-statuses", h.Create)
	r.PATCH("/job-statuses/:id", h.Update)
	r.DELETE("/job-statuses/:id", h.Delete)
	r.PUT("/deps/:statusKey", h.SaveDependencies)
	r.GET("/deps/:statusKey/available", h.Available)
	return r
}

func TestCreateStatus(t *testing.T) {
	statuses := newMemStatuses("new_jobs")
	r := statusRouter(statuses, &memDeps{}, &memColumns{})

	w, body := call(r, http.MethodPost, "/job-statuses", map[string]any{"key": "  QA Check ", "label": "QA"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "qa_check", body["key"])
	assert.EqualValues(t, 2, body["position"])

	w, body = call(r, http.MethodPost, "/job-statuses", map[string]any{"key": "qa check", "label": "Again"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, body["error"], "qa_check")

	w, _ = call(r, http.MethodPost, "/job-statuses", map[string]any{"key": "bad-key!", "label": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(r, http.MethodPost, "/job-statuses", map[string]any{"label": "no key"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, statuses.items, 2)
}

func TestUpdateStatusKeepsKeyFrozen(t *testing.T) {
	r := statusRouter(newMemStatuses("new_jobs"), &memDeps{}, &memColumns{})

	w, _ := call(r, http.MethodPatch, "/job-statuses/1", map[string]any{"key": "renamed"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, body := call(r, http.MethodPatch, "/job-statuses/1", map[string]any{"label": "New jobs"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new_jobs", body["key"])
	assert.Equal(t, "New jobs", body["label"])

	w, _ = call(r, http.MethodPatch, "/job-statuses/99", map[string]any{"label": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = call(r, http.MethodPatch, "/job-statuses/abc", map[string]any{"label": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteStatusRefusedWhenColumnWouldBeEmpty(t *testing.T) {
	columns := &memColumns{items: []*models.KanbanColumn{
		{ID: 1, Title: "QA", Statuses: []string{"qa_check"}, DefaultStatus: "qa_check", Color: "blue", IsActive: true},
	}}
	statuses := newMemStatuses("new_jobs", "qa_check")
	r := statusRouter(statuses, &memDeps{}, columns)

	w, _ := call(r, http.MethodDelete, "/job-statuses/2", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, statuses.items, 2)

	w, body := call(r, http.MethodDelete, "/job-statuses/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new_jobs", body["key"])
	assert.Len(t, statuses.items, 1)
}

func TestSaveDependencies(t *testing.T) {
	deps := &memDeps{items: []models.JobStatusDependency{
		{StatusKey: "install", PrerequisiteKey: "qa_check", DependencyType: models.DependencyMandatory},
	}}
	r := statusRouter(newMemStatuses("qa_check", "install", "fabrication"), deps, &memColumns{})

	w, _ := call(r, http.MethodPut, "/deps/qa_check", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing dependencies field is not a clear")

	w, body := call(r, http.MethodPut, "/deps/qa_check", map[string]any{"dependencies": []map[string]string{
		{"prerequisiteKey": "install", "dependencyType": "mandatory"},
	}})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, body["cycle"])
	assert.Len(t, deps.items, 1)

	w, _ = call(r, http.MethodPut, "/deps/qa_check", map[string]any{"dependencies": []map[string]string{
		{"prerequisiteKey": "qa_check", "dependencyType": "mandatory"},
	}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(r, http.MethodPut, "/deps/install", map[string]any{"dependencies": []map[string]string{}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, deps.items)
}

func TestAvailablePrerequisites(t *testing.T) {
	deps := &memDeps{items: []models.JobStatusDependency{
		{StatusKey: "install", PrerequisiteKey: "qa_check", DependencyType: models.DependencyMandatory},
	}}
	r := statusRouter(newMemStatuses("qa_check", "install", "fabrication"), deps, &memColumns{})

	keys := func(path string) []string {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code)
		var list []models.JobStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		out := []string{}
		for _, s := range list {
			out = append(out, s.Key)
		}
		return out
	}

	assert.Equal(t, []string{"fabrication"}, keys("/deps/install/available"))
	assert.Equal(t, []string{"qa_check", "fabrication"}, keys("/deps/install/available?selected="))
}

func leadRouter(leads *memLeads, jobs *memJobs) *gin.Engine {
	svc := services.NewLeadService(leads, jobs, memClients{}, nil, "new_jobs")
	h := NewLeadHandler(svc)
	r := gin.New()
	r.POST("/leads/:id/move", h.Move)
	r.POST("/leads/:id/convert", h.Convert)
	return r
}

func TestMoveLead(t *testing.T) {
	leads := &memLeads{items: []*models.Lead{{ID: 1, Stage: models.StageQuoteRevised}}}
	r := leadRouter(leads, &memJobs{})

	w, body := call(r, http.MethodPost, "/leads/1/move", map[string]string{"status": "quoted"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "quote_revised", body["stage"])
	assert.Equal(t, "Unknown", body["clientName"])

	w, body = call(r, http.MethodPost, "/leads/1/move", map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approved", body["stage"])

	w, _ = call(r, http.MethodPost, "/leads/1/move", map[string]string{"status": "won"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = call(r, http.MethodPost, "/leads/9/move", map[string]string{"status": "new"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConvertLead(t *testing.T) {
	leads := &memLeads{items: []*models.Lead{
		{ID: 1, Stage: models.StageApproved, SiteAddress: "12 Post St"},
		{ID: 2, Stage: models.StageContacted},
	}}
	jobs := &memJobs{}
	r := leadRouter(leads, jobs)

	w, body := call(r, http.MethodPost, "/leads/1/convert", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "JOB-00001", body["jobNumber"])
	assert.Equal(t, "new_jobs", body["status"])
	assert.Equal(t, models.StageConvertedToJob, leads.items[0].Stage)

	w, _ = call(r, http.MethodPost, "/leads/1/convert", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = call(r, http.MethodPost, "/leads/2/convert", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, jobs.items, 1)
}
