package handler

import (
	"net/http"
	"testing"

	"gradebook/internal/models"
	"gradebook/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSubjectRepo struct {
	repository.SubjectRepository
	list   func() ([]models.Subject, error)
	get    func(id int64) (*models.Subject, error)
	create func(in models.SubjectInput) (*models.Subject, error)
	update func(id int64, in models.SubjectInput) (*models.Subject, error)
	del    func(id int64) error
}

func (f *fakeSubjectRepo) List() ([]models.Subject, error)           { return f.list() }
func (f *fakeSubjectRepo) GetByID(id int64) (*models.Subject, error) { return f.get(id) }
func (f *fakeSubjectRepo) Create(in models.SubjectInput) (*models.Subject, error) {
	return f.create(in)
}
func (f *fakeSubjectRepo) Update(id int64, in models.SubjectInput) (*models.Subject, error) {
	return f.update(id, in)
}
func (f *fakeSubjectRepo) Delete(id int64) error { return f.del(id) }

func subjectRouter(repo repository.SubjectRepository) *gin.Engine {
	r := newTestRouter()
	h := NewSubjectHandler(repo, zap.NewNop())
	r.GET("/subjects", h.List)
	r.GET("/subjects/:id", h.Get)
	r.POST("/subjects", h.Create)
	r.PUT("/subjects/:id", h.Update)
	r.DELETE("/subjects/:id", h.Delete)
	return r
}

func TestSubjectCreateYearOutOfRange(t *testing.T) {
	r := subjectRouter(&fakeSubjectRepo{})

	w := perform(r, http.MethodPost, "/subjects", `{"name":"Algebra","code":"ALG1","year":3050}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := parseEnvelope(t, w)
	assert.Contains(t, violationFields(t, env), "year")
}

func TestSubjectCreate(t *testing.T) {
	r := subjectRouter(&fakeSubjectRepo{create: func(in models.SubjectInput) (*models.Subject, error) {
		return &models.Subject{ID: 3, Name: in.Name, Code: in.Code, Year: in.Year}, nil
	}})

	w := perform(r, http.MethodPost, "/subjects", `{"name":"Algebra","code":"ALG1","year":2024}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	env := parseEnvelope(t, w)
	data := env["data"].(map[string]interface{})
	assert.Equal(t, "ALG1", data["code"])
}

func TestSubjectCreateDuplicateCode(t *testing.T) {
	r := subjectRouter(&fakeSubjectRepo{create: func(models.SubjectInput) (*models.Subject, error) {
		return nil, repository.ErrDuplicate
	}})

	w := perform(r, http.MethodPost, "/subjects", `{"name":"Algebra","code":"ALG1","year":2024}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := parseEnvelope(t, w)
	assert.Contains(t, env["message"], "code already exists")
}

func TestSubjectDeleteReferenced(t *testing.T) {
	r := subjectRouter(&fakeSubjectRepo{del: func(int64) error {
		return repository.ErrReferenced
	}})

	w := perform(r, http.MethodDelete, "/subjects/2", "")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubjectUpdateNotFound(t *testing.T) {
	r := subjectRouter(&fakeSubjectRepo{update: func(int64, models.SubjectInput) (*models.Subject, error) {
		return nil, repository.ErrNotFound
	}})

	w := perform(r, http.MethodPut, "/subjects/99", `{"name":"Algebra","code":"ALG1","year":2024}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
