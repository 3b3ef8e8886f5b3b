package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mpartaud/school-records/internal/domain"
	"github.com/mpartaud/school-records/internal/repository"
	"github.com/mpartaud/school-records/internal/transport/http/handler"
)

type fakeClassUsecase struct {
	list        func(ctx context.Context) ([]*domain.Class, error)
	getByID     func(ctx context.Context, id int64) (*domain.Class, error)
	createClass func(ctx context.Context, token, name string) (*domain.Class, error)
	updateClass func(ctx context.Context, token string, id int64, patch repository.ClassPatch) error
	deleteClass func(ctx context.Context, token string, id int64) error
}

func (f *fakeClassUsecase) List(ctx context.Context) ([]*domain.Class, error) { return f.list(ctx) }
func (f *fakeClassUsecase) GetByID(ctx context.Context, id int64) (*domain.Class, error) {
	return f.getByID(ctx, id)
}
func (f *fakeClassUsecase) CreateClass(ctx context.Context, token, name string) (*domain.Class, error) {
	return f.createClass(ctx, token, name)
}
func (f *fakeClassUsecase) UpdateClass(ctx context.Context, token string, id int64, patch repository.ClassPatch) error {
	return f.updateClass(ctx, token, id, patch)
}
func (f *fakeClassUsecase) DeleteClass(ctx context.Context, token string, id int64) error {
	return f.deleteClass(ctx, token, id)
}

func newClassEngine(uc *fakeClassUsecase) *gin.Engine {
	h := handler.NewClassHandler(uc, testLogger())
	r := gin.New()
	r.GET("/api/Class", h.List)
	r.GET("/api/ClassID", h.GetByID)
	r.POST("/api/createClass", h.Create)
	r.POST("/api/updateClass", h.Update)
	r.POST("/api/deleteClass", h.Delete)
	return r
}

func TestCreateClass_TeacherToken(t *testing.T) {
	uc := &fakeClassUsecase{
		createClass: func(_ context.Context, token, name string) (*domain.Class, error) {
			if token != "teacher.jwt" {
				t.Errorf("token = %q, want teacher.jwt", token)
			}
			return &domain.Class{ID: 10, Name: name}, nil
		},
	}

	w := postJSON(t, newClassEngine(uc), "/api/createClass",
		`{"class":{"name":"6eme A"}}`, "teacher.jwt")
	env := decodeEnvelope(t, w.Body)
	if !env.Success {
		t.Fatalf("success = false, error = %q", env.Error)
	}
	if !strings.Contains(string(env.Data), `"6eme A"`) {
		t.Errorf("data %s does not echo the class", env.Data)
	}
}

func TestCreateClass_NonTeacherToken(t *testing.T) {
	uc := &fakeClassUsecase{
		createClass: func(_ context.Context, _, _ string) (*domain.Class, error) {
			return nil, domain.ErrUnauthorized
		},
	}

	w := postJSON(t, newClassEngine(uc), "/api/createClass",
		`{"class":{"name":"6eme A"}}`, "student.jwt")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (flat error surface)", w.Code)
	}

	env := decodeEnvelope(t, w.Body)
	if env.Success {
		t.Error("success = true, want false")
	}
	if env.Error != "Unauthorize Operation" {
		t.Errorf("error = %q, want %q", env.Error, "Unauthorize Operation")
	}
}

func TestCreateClass_NoToken(t *testing.T) {
	uc := &fakeClassUsecase{
		createClass: func(_ context.Context, token, _ string) (*domain.Class, error) {
			if token != "" {
				t.Errorf("token = %q, want empty", token)
			}
			return nil, domain.ErrNotAuthenticated
		},
	}

	w := postJSON(t, newClassEngine(uc), "/api/createClass",
		`{"class":{"name":"6eme A"}}`, "")
	env := decodeEnvelope(t, w.Body)
	if env.Success || env.Error != "User not Autheticate" {
		t.Errorf("envelope = %+v, want User not Autheticate failure", env)
	}
}

func TestUpdateClass_NonExistentID(t *testing.T) {
	uc := &fakeClassUsecase{
		updateClass: func(_ context.Context, _ string, _ int64, _ repository.ClassPatch) error {
			return domain.ErrNothingStored
		},
	}

	w := postJSON(t, newClassEngine(uc), "/api/updateClass",
		`{"classId":999,"class":{"name":"5eme B"}}`, "teacher.jwt")
	env := decodeEnvelope(t, w.Body)
	if env.Success {
		t.Error("success = true, want false")
	}
	if env.Error != "data wasn't stored in database" {
		t.Errorf("error = %q, want %q", env.Error, "data wasn't stored in database")
	}
}

func TestDeleteClass_ExpiredToken(t *testing.T) {
	uc := &fakeClassUsecase{
		deleteClass: func(_ context.Context, _ string, _ int64) error {
			return domain.ErrTokenExpired
		},
	}

	w := postJSON(t, newClassEngine(uc), "/api/deleteClass",
		`{"classId":10}`, "expired.jwt")
	env := decodeEnvelope(t, w.Body)
	if env.Success || env.Error != "token is invalid or expired" {
		t.Errorf("envelope = %+v, want token failure", env)
	}
}

func TestClassID_NotFoundIsNull(t *testing.T) {
	uc := &fakeClassUsecase{
		getByID: func(_ context.Context, _ int64) (*domain.Class, error) {
			return nil, domain.ErrClassNotFound
		},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ClassID?classId=999", nil)
	newClassEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if got := strings.TrimSpace(w.Body.String()); got != "null" {
		t.Errorf("body = %q, want null", got)
	}
}

func TestClassID_BadQueryParam(t *testing.T) {
	uc := &fakeClassUsecase{}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ClassID?classId=abc", nil)
	newClassEngine(uc).ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
