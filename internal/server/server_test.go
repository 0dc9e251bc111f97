package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gradebook/internal/handler"
	"gradebook/internal/models"
	"gradebook/internal/repository"
	"gradebook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	repository.UserRepository
	getByEmail func(email string) (*models.User, error)
	hasRole    func(userID int64, role string) (bool, error)
	list       func() ([]models.User, error)
	get        func(id int64) (*models.User, error)
	roles      func(userID int64) ([]models.Role, error)
}

func (f *fakeUserRepo) GetByEmail(email string) (*models.User, error) { return f.getByEmail(email) }
func (f *fakeUserRepo) HasRole(userID int64, role string) (bool, error) {
	return f.hasRole(userID, role)
}
func (f *fakeUserRepo) List() ([]models.User, error)              { return f.list() }
func (f *fakeUserRepo) GetByID(id int64) (*models.User, error)    { return f.get(id) }
func (f *fakeUserRepo) Roles(userID int64) ([]models.Role, error) { return f.roles(userID) }

type fakeStudentRepo struct {
	repository.StudentRepository
	list func(search string) ([]models.Student, error)
}

func (f *fakeStudentRepo) List(search string) ([]models.Student, error) { return f.list(search) }

type fakeSubjectRepo struct{ repository.SubjectRepository }

type fakeGradeRepo struct{ repository.GradeRepository }

// routedServer wires the full route table over fake repositories, so
// the tests exercise the same guard composition production gets.
func routedServer(t *testing.T, admin bool) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	handler.SetupValidator()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret1pass"), bcrypt.MinCost)
	require.NoError(t, err)
	account := &models.User{ID: 1, Name: "Ana", Email: "ana@example.com", PasswordHash: string(hash), Active: true}

	users := &fakeUserRepo{
		getByEmail: func(string) (*models.User, error) { return account, nil },
		hasRole:    func(int64, string) (bool, error) { return admin, nil },
		list:       func() ([]models.User, error) { return []models.User{*account}, nil },
		get:        func(int64) (*models.User, error) { return account, nil },
		roles:      func(int64) ([]models.Role, error) { return []models.Role{{ID: 1, Name: "admin"}}, nil },
	}
	students := &fakeStudentRepo{list: func(string) ([]models.Student, error) {
		return []models.Student{}, nil
	}}

	authService := service.NewAuthService(users, "test-signing-secret", zap.NewNop())

	s := &Server{router: gin.New(), logger: zap.NewNop()}
	s.setupRoutes(authService, users, students, &fakeSubjectRepo{}, &fakeGradeRepo{})
	return s
}

func request(s *Server, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, s *Server) string {
	t.Helper()
	w := request(s, http.MethodPost, "/auth/login", `{"email":"ana@example.com","password":"secret1pass"}`, "")
	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.Token)
	return env.Data.Token
}

func TestPublicRoutesNeedNoToken(t *testing.T) {
	s := routedServer(t, false)

	w := request(s, http.MethodGet, "/ping", "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Login itself must be reachable without a token.
	loginToken(t, s)
}

func TestEveryResourceRouteRequiresAuth(t *testing.T) {
	s := routedServer(t, true)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/students"},
		{http.MethodGet, "/students/1"},
		{http.MethodPost, "/students"},
		{http.MethodPut, "/students/1"},
		{http.MethodDelete, "/students/1"},
		{http.MethodGet, "/subjects"},
		{http.MethodGet, "/subjects/1"},
		{http.MethodPost, "/subjects"},
		{http.MethodPut, "/subjects/1"},
		{http.MethodDelete, "/subjects/1"},
		{http.MethodGet, "/grades"},
		{http.MethodGet, "/grades/1"},
		{http.MethodPost, "/grades"},
		{http.MethodPut, "/grades/1"},
		{http.MethodDelete, "/grades/1"},
		{http.MethodGet, "/users"},
		{http.MethodGet, "/users/1"},
		{http.MethodPost, "/users"},
		{http.MethodPut, "/users/1"},
		{http.MethodDelete, "/users/1"},
		{http.MethodGet, "/users/1/roles"},
		{http.MethodPost, "/users/1/roles"},
		{http.MethodDelete, "/users/1/roles/admin"},
	}
	for _, rt := range routes {
		w := request(s, rt.method, rt.path, "", "")
		assert.Equalf(t, http.StatusUnauthorized, w.Code, "%s %s must reject missing token", rt.method, rt.path)
	}
}

func TestUserMutationsRequireAdmin(t *testing.T) {
	s := routedServer(t, false)
	token := loginToken(t, s)

	routes := []struct{ method, path string }{
		{http.MethodPost, "/users"},
		{http.MethodPut, "/users/1"},
		{http.MethodDelete, "/users/1"},
		{http.MethodGet, "/users/1/roles"},
		{http.MethodPost, "/users/1/roles"},
		{http.MethodDelete, "/users/1/roles/admin"},
	}
	for _, rt := range routes {
		w := request(s, rt.method, rt.path, "", token)
		assert.Equalf(t, http.StatusForbidden, w.Code, "%s %s must require the admin role", rt.method, rt.path)
	}
}

func TestAuthenticatedReadsPass(t *testing.T) {
	s := routedServer(t, false)
	token := loginToken(t, s)

	for _, path := range []string{"/students", "/users"} {
		w := request(s, http.MethodGet, path, "", token)
		assert.Equalf(t, http.StatusOK, w.Code, "GET %s with a valid token", path)
	}
}

func TestAdminCanManageRoles(t *testing.T) {
	s := routedServer(t, true)
	token := loginToken(t, s)

	w := request(s, http.MethodGet, "/users/1/roles", "", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"admin"`)
}
