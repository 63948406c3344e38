package universityprogram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"orientation-service/internal/events"
	"orientation-service/internal/logger"
	"orientation-service/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepository keeps links in a map keyed by university and program.
type fakeRepository struct {
	links        map[[2]int]*UniversityProgram
	universities map[int]string
	eligible     []LinkDetail
	gotSection   Section
	gotScore     float64
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		links:        map[[2]int]*UniversityProgram{},
		universities: map[int]string{},
	}
}

func (f *fakeRepository) Create(_ context.Context, link *UniversityProgram) error {
	key := [2]int{link.UniversityID, link.ProgramID}
	if _, ok := f.links[key]; ok {
		return ErrAlreadyLinked
	}
	link.ID = len(f.links) + 1
	f.links[key] = link
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, universityID, programID int) error {
	key := [2]int{universityID, programID}
	if _, ok := f.links[key]; !ok {
		return ErrNotLinked
	}
	delete(f.links, key)
	return nil
}

func (f *fakeRepository) GetByPair(_ context.Context, universityID, programID int) (*UniversityProgram, error) {
	link, ok := f.links[[2]int{universityID, programID}]
	if !ok {
		return nil, ErrLinkNotFound
	}
	return link, nil
}

func (f *fakeRepository) ListDetails(_ context.Context, filter LinkFilter) ([]LinkDetail, error) {
	details := []LinkDetail{}
	for _, link := range f.links {
		if filter.UniversityID != 0 && link.UniversityID != filter.UniversityID {
			continue
		}
		if filter.ProgramID != 0 && link.ProgramID != filter.ProgramID {
			continue
		}
		details = append(details, LinkDetail{
			ID:             link.ID,
			UniversityID:   link.UniversityID,
			UniversityName: f.universities[link.UniversityID],
			ProgramID:      link.ProgramID,
			Thresholds:     link.Thresholds,
		})
	}
	return details, nil
}

func (f *fakeRepository) ListEligible(_ context.Context, section Section, score float64) ([]LinkDetail, error) {
	f.gotSection = section
	f.gotScore = score
	return f.eligible, nil
}

func (f *fakeRepository) UniversityName(_ context.Context, universityID int) (string, error) {
	name, ok := f.universities[universityID]
	if !ok {
		return "", ErrUniversityNotFound
	}
	return name, nil
}

func passThrough(next http.Handler) http.Handler { return next }

func newTestRouter(repo Repository) chi.Router {
	router := chi.NewRouter()
	service := NewService(repo, events.NewNopEmitter(), metrics.NewMock())
	NewHandler(service, logger.NewDiscard()).RegisterRoutes(router, passThrough)
	return router
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEligibilityEndpoint(t *testing.T) {
	repo := newFakeRepository()
	repo.links[[2]int{1, 1}] = &UniversityProgram{ID: 1, UniversityID: 1, ProgramID: 1, Thresholds: Thresholds{MinScoreScience: score(24.0)}}
	router := newTestRouter(repo)

	t.Run("Eligible", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/university-programs/eligibility?student_score=25.0&student_section=science&program_id=1&university_id=1", "")

		require.Equal(t, http.StatusOK, w.Code)
		var result EligibilityResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		assert.True(t, result.Eligible)
		assert.Equal(t, MessageEligible, result.Message)
		require.NotNil(t, result.Threshold)
		assert.Equal(t, 24.0, *result.Threshold)
	})

	t.Run("NotEligible", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/university-programs/eligibility?student_score=23.9&student_section=science&program_id=1&university_id=1", "")

		require.Equal(t, http.StatusOK, w.Code)
		var result EligibilityResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		assert.False(t, result.Eligible)
		assert.Equal(t, MessageNotEligible, result.Message)
	})

	t.Run("NoThresholdForSection", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/university-programs/eligibility?student_score=1&student_section=literature&program_id=1&university_id=1", "")

		require.Equal(t, http.StatusOK, w.Code)
		var result EligibilityResult
		require.NoError(t, json.NewDecoder(w.Body).Decode(&result))
		assert.True(t, result.Eligible)
		assert.Nil(t, result.Threshold)
	})

	t.Run("InvalidSection", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/university-programs/eligibility?student_score=25&student_section=history&program_id=1&university_id=1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid baccalaureate section")
	})

	t.Run("UnknownPair", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/university-programs/eligibility?student_score=25&student_section=history&program_id=2&university_id=1", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "University or Program not found")
	})

	t.Run("MissingScore", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/university-programs/eligibility?student_section=science&program_id=1&university_id=1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLinkEndpoints(t *testing.T) {
	repo := newFakeRepository()
	repo.universities[1] = "Polytechnic"
	router := newTestRouter(repo)

	t.Run("Link_WithThresholds", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/universities/1/programs/3", `{"min_score_science": 24.5}`)

		require.Equal(t, http.StatusCreated, w.Code)
		link := repo.links[[2]int{1, 3}]
		require.NotNil(t, link)
		require.NotNil(t, link.MinScoreScience)
		assert.Equal(t, 24.5, *link.MinScoreScience)
		assert.Nil(t, link.MinScoreMaths)
	})

	t.Run("Link_WithoutBody", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/universities/1/programs/4", "")

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("Link_Duplicate", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/universities/1/programs/3", "")

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Link_NegativeThreshold", func(t *testing.T) {
		w := serve(router, http.MethodPost, "/universities/1/programs/5", `{"min_score_maths": -1}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ProgramsOffered", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/universities/1/programs", "")

		require.Equal(t, http.StatusOK, w.Code)
		var offered UniversityPrograms
		require.NoError(t, json.NewDecoder(w.Body).Decode(&offered))
		assert.Equal(t, "Polytechnic", offered.UniversityName)
		assert.Len(t, offered.Programs, 2)
	})

	t.Run("ProgramsOffered_UnknownUniversity", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/universities/9/programs", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "University with ID 9 not found.")
	})

	t.Run("Unlink", func(t *testing.T) {
		assert.Equal(t, http.StatusNoContent, serve(router, http.MethodDelete, "/universities/1/programs/4", "").Code)
		assert.Equal(t, http.StatusNotFound, serve(router, http.MethodDelete, "/universities/1/programs/4", "").Code)
	})

	t.Run("LinksByProgram_None", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/university-programs/program/42", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEligibleProgramsEndpoint(t *testing.T) {
	repo := newFakeRepository()
	router := newTestRouter(repo)

	t.Run("NoneEligible", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/university-programs/eligible?section=maths&score=10", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, SectionMaths, repo.gotSection)
		assert.Equal(t, 10.0, repo.gotScore)
	})

	t.Run("Found", func(t *testing.T) {
		repo.eligible = []LinkDetail{{ID: 1, UniversityID: 1, ProgramID: 2}}

		w := serve(router, http.MethodGet, "/university-programs/eligible?section=maths&score=10", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("InvalidSection", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/university-programs/eligible?section=art&score=10", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
