package program_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"orientation-service/internal/careerpath"
	"orientation-service/internal/events"
	"orientation-service/internal/logger"
	"orientation-service/internal/metrics"
	"orientation-service/internal/program"
	"orientation-service/internal/schema"
	"orientation-service/internal/university"
	"orientation-service/internal/universityprogram"
	"orientation-service/testing/testdb"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allowAll(next http.Handler) http.Handler { return next }

func TestProgramHandler_Shared(t *testing.T) {
	pgContainer := testdb.SetupSharedPostgres(t)
	defer pgContainer.Cleanup(t)

	pgContainer.RunMigrations(t, schema.Tables()...)

	mockMetrics := metrics.NewMock()
	repo := program.NewRepository(pgContainer.DB, mockMetrics)
	handler := program.NewHandler(program.NewService(repo, events.NewNopEmitter()), logger.NewDiscard())
	router := chi.NewRouter()
	handler.RegisterRoutes(router, allowAll)

	ctx := context.Background()

	createCareerPath := func(t *testing.T, field string) int {
		t.Helper()
		cp := &careerpath.CareerPath{GeneralField: field}
		_, err := pgContainer.DB.NewInsert().Model(cp).Exec(ctx)
		require.NoError(t, err)
		return cp.ID
	}

	createProgram := func(t *testing.T, name string, careerPathID int) *httptest.ResponseRecorder {
		t.Helper()
		body, _ := json.Marshal(map[string]interface{}{
			"program_name":   name,
			"program_type":   "Bachelor",
			"career_path_id": careerPathID,
		})
		req := httptest.NewRequest(http.MethodPost, "/programs", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("CreateProgram_Success", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)
		cpID := createCareerPath(t, "Engineering")

		w := createProgram(t, "Computer Science", cpID)

		assert.Equal(t, http.StatusCreated, w.Code)
		var created program.Program
		require.NoError(t, json.NewDecoder(w.Body).Decode(&created))
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Computer Science", created.ProgramName)
	})

	t.Run("CreateProgram_UnknownCareerPath", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)

		w := createProgram(t, "Computer Science", 999)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Career path not found.")
	})

	t.Run("CreateProgram_ValidationError", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)

		req := httptest.NewRequest(http.MethodPost, "/programs", bytes.NewReader([]byte(`{"program_type":"Bachelor"}`)))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("GetAllPrograms_Empty", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/programs", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `[]`, w.Body.String())
	})

	t.Run("GetProgram_NotFound", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/programs/42", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("GetProgramsByCareerPath_NoneOffered", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)
		cpID := createCareerPath(t, "Medicine")
		require.Equal(t, http.StatusCreated, createProgram(t, "Nursing", cpID).Code)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/programs/career-path/"+strconv.Itoa(cpID), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "No programs found for this career path")
	})

	t.Run("GetProgramsByCareerPath_OfferedOnce", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)
		cpID := createCareerPath(t, "Engineering")
		otherCP := createCareerPath(t, "Law")

		programs := []*program.Program{
			{ProgramName: "Computer Science", ProgramType: "Bachelor", CareerPathID: cpID},
			{ProgramName: "Civil Engineering", ProgramType: "Bachelor", CareerPathID: cpID},
			{ProgramName: "Public Law", ProgramType: "Master", CareerPathID: otherCP},
		}
		for _, p := range programs {
			require.NoError(t, repo.Create(ctx, p))
		}

		links := universityprogram.NewRepository(pgContainer.DB, mockMetrics)
		for _, name := range []string{"Polytechnic", "Sciences"} {
			u := &university.University{Name: name}
			_, err := pgContainer.DB.NewInsert().Model(u).Exec(ctx)
			require.NoError(t, err)
			require.NoError(t, links.Create(ctx, &universityprogram.UniversityProgram{UniversityID: u.ID, ProgramID: programs[0].ID}))
		}

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/programs/career-path/"+strconv.Itoa(cpID), nil))

		require.Equal(t, http.StatusOK, w.Code)
		var found []program.Program
		require.NoError(t, json.NewDecoder(w.Body).Decode(&found))
		require.Len(t, found, 1, "offered twice but listed once; unoffered program excluded")
		assert.Equal(t, "Computer Science", found[0].ProgramName)
	})

	t.Run("DeleteProgram", func(t *testing.T) {
		testdb.CleanupTables(t, pgContainer.DB, schema.TableNames...)
		cpID := createCareerPath(t, "Engineering")
		p := &program.Program{ProgramName: "Computer Science", ProgramType: "Bachelor", CareerPathID: cpID}
		require.NoError(t, repo.Create(ctx, p))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/programs/"+strconv.Itoa(p.ID), nil))
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/programs/"+strconv.Itoa(p.ID), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
