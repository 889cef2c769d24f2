package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"todo-tracker-api/internal/dto"
	"todo-tracker-api/internal/response"
)

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// MockTodoService is a mock implementation of TodoService
type MockTodoService struct {
	CreateFunc      func(ctx context.Context, req *dto.CreateTodoRequest) (*dto.TodoResponse, error)
	ListFunc        func(ctx context.Context) ([]*dto.TodoResponse, error)
	GetFunc         func(ctx context.Context, id uuid.UUID) (*dto.TodoResponse, error)
	UpdateFunc      func(ctx context.Context, id uuid.UUID, req *dto.UpdateTodoRequest) (*dto.TodoResponse, error)
	DeleteFunc      func(ctx context.Context, id uuid.UUID) error
	ListChangesFunc func(ctx context.Context, id uuid.UUID) ([]*dto.ChangeResponse, error)
	ReorderFunc     func(ctx context.Context, todoIDs []uuid.UUID) ([]*dto.TodoResponse, error)
}

func (m *MockTodoService) Create(ctx context.Context, req *dto.CreateTodoRequest) (*dto.TodoResponse, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return nil, nil
}

func (m *MockTodoService) List(ctx context.Context) ([]*dto.TodoResponse, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *MockTodoService) Get(ctx context.Context, id uuid.UUID) (*dto.TodoResponse, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTodoService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, req)
	}
	return nil, nil
}

func (m *MockTodoService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockTodoService) ListChanges(ctx context.Context, id uuid.UUID) ([]*dto.ChangeResponse, error) {
	if m.ListChangesFunc != nil {
		return m.ListChangesFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockTodoService) Reorder(ctx context.Context, todoIDs []uuid.UUID) ([]*dto.TodoResponse, error) {
	if m.ReorderFunc != nil {
		return m.ReorderFunc(ctx, todoIDs)
	}
	return nil, nil
}

func TestTodoHandler_CreateTodo(t *testing.T) {
	todoID := uuid.New()

	tests := []struct {
		name           string
		requestBody    interface{}
		mockService    func(*MockTodoService)
		expectedStatus int
		checkResponse  func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "creates a todo",
			requestBody: dto.CreateTodoRequest{Title: "Buy milk"},
			mockService: func(m *MockTodoService) {
				m.CreateFunc = func(ctx context.Context, req *dto.CreateTodoRequest) (*dto.TodoResponse, error) {
					return &dto.TodoResponse{ID: todoID, Title: req.Title}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var todo dto.TodoResponse
				if err := json.Unmarshal(w.Body.Bytes(), &todo); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if todo.Title != "Buy milk" {
					t.Errorf("Title = %q, want Buy milk", todo.Title)
				}
				if todo.ID != todoID {
					t.Errorf("ID = %v, want %v", todo.ID, todoID)
				}
			},
		},
		{
			name:           "rejects missing title",
			requestBody:    map[string]interface{}{},
			mockService:    func(m *MockTodoService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "rejects malformed body",
			requestBody:    "not json",
			mockService:    func(m *MockTodoService) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTodoService{}
			tt.mockService(mockService)
			logger, _ := zap.NewDevelopment()
			handler := NewTodoHandler(mockService, logger)

			router := setupTestRouter()
			router.POST("/api/todos", handler.CreateTodo)

			body, _ := json.Marshal(tt.requestBody)
			req := httptest.NewRequest(http.MethodPost, "/api/todos", bytes.NewBuffer(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("CreateTodo() status = %v, want %v", w.Code, tt.expectedStatus)
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}

func TestTodoHandler_GetTodo(t *testing.T) {
	todoID := uuid.New()

	tests := []struct {
		name           string
		todoID         string
		mockService    func(*MockTodoService)
		expectedStatus int
	}{
		{
			name:   "returns the todo",
			todoID: todoID.String(),
			mockService: func(m *MockTodoService) {
				m.GetFunc = func(ctx context.Context, id uuid.UUID) (*dto.TodoResponse, error) {
					return &dto.TodoResponse{ID: id, Title: "Found"}, nil
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "rejects malformed uuid",
			todoID:         "not-a-uuid",
			mockService:    func(m *MockTodoService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "missing todo maps to 404",
			todoID: todoID.String(),
			mockService: func(m *MockTodoService) {
				m.GetFunc = func(ctx context.Context, id uuid.UUID) (*dto.TodoResponse, error) {
					return nil, response.NewNotFoundError("Todo not found", id.String())
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockTodoService{}
			tt.mockService(mockService)
			logger, _ := zap.NewDevelopment()
			handler := NewTodoHandler(mockService, logger)

			router := setupTestRouter()
			router.GET("/api/todos/:id", handler.GetTodo)

			req := httptest.NewRequest(http.MethodGet, "/api/todos/"+tt.todoID, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("GetTodo() status = %v, want %v", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestTodoHandler_UpdateTodo(t *testing.T) {
	todoID := uuid.New()

	t.Run("forwards the partial patch", func(t *testing.T) {
		var gotReq *dto.UpdateTodoRequest
		mockService := &MockTodoService{
			UpdateFunc: func(ctx context.Context, id uuid.UUID, req *dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
				gotReq = req
				return &dto.TodoResponse{ID: id, Title: "Renamed", Completed: true}, nil
			},
		}
		logger, _ := zap.NewDevelopment()
		handler := NewTodoHandler(mockService, logger)

		router := setupTestRouter()
		router.PATCH("/api/todos/:id", handler.UpdateTodo)

		body := []byte(`{"title":"Renamed","completed":true}`)
		req := httptest.NewRequest(http.MethodPatch, "/api/todos/"+todoID.String(), bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("UpdateTodo() status = %v, want %v", w.Code, http.StatusOK)
		}
		if gotReq.Title == nil || *gotReq.Title != "Renamed" {
			t.Errorf("Title = %v, want Renamed", gotReq.Title)
		}
		if gotReq.Completed == nil || !*gotReq.Completed {
			t.Errorf("Completed = %v, want true", gotReq.Completed)
		}
		if gotReq.Position != nil || gotReq.ColumnID != nil {
			t.Error("absent fields should remain nil in the patch")
		}
	})

	t.Run("missing todo maps to 404", func(t *testing.T) {
		mockService := &MockTodoService{
			UpdateFunc: func(ctx context.Context, id uuid.UUID, req *dto.UpdateTodoRequest) (*dto.TodoResponse, error) {
				return nil, response.NewNotFoundError("Todo not found", id.String())
			},
		}
		logger, _ := zap.NewDevelopment()
		handler := NewTodoHandler(mockService, logger)

		router := setupTestRouter()
		router.PATCH("/api/todos/:id", handler.UpdateTodo)

		req := httptest.NewRequest(http.MethodPatch, "/api/todos/"+todoID.String(), bytes.NewBufferString(`{"title":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("UpdateTodo() status = %v, want %v", w.Code, http.StatusNotFound)
		}
	})
}

func TestTodoHandler_DeleteTodo(t *testing.T) {
	todoID := uuid.New()

	mockService := &MockTodoService{
		DeleteFunc: func(ctx context.Context, id uuid.UUID) error {
			return nil
		},
	}
	logger, _ := zap.NewDevelopment()
	handler := NewTodoHandler(mockService, logger)

	router := setupTestRouter()
	router.DELETE("/api/todos/:id", handler.DeleteTodo)

	req := httptest.NewRequest(http.MethodDelete, "/api/todos/"+todoID.String(), nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("DeleteTodo() status = %v, want %v", w.Code, http.StatusOK)
	}

	var resp response.SuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !resp.Success {
		t.Error("DeleteTodo() Success = false, want true")
	}
}

func TestTodoHandler_ReorderTodos(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	t.Run("forwards the id sequence", func(t *testing.T) {
		var gotIDs []uuid.UUID
		mockService := &MockTodoService{
			ReorderFunc: func(ctx context.Context, todoIDs []uuid.UUID) ([]*dto.TodoResponse, error) {
				gotIDs = todoIDs
				return []*dto.TodoResponse{}, nil
			},
		}
		logger, _ := zap.NewDevelopment()
		handler := NewTodoHandler(mockService, logger)

		router := setupTestRouter()
		router.POST("/api/todos/reorder", handler.ReorderTodos)

		body, _ := json.Marshal(dto.ReorderRequest{TodoIDs: []uuid.UUID{b, a}})
		req := httptest.NewRequest(http.MethodPost, "/api/todos/reorder", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("ReorderTodos() status = %v, want %v", w.Code, http.StatusOK)
		}
		if len(gotIDs) != 2 || gotIDs[0] != b || gotIDs[1] != a {
			t.Errorf("ReorderTodos() forwarded %v, want [%v %v]", gotIDs, b, a)
		}
	})

	t.Run("rejects a body without todoIds", func(t *testing.T) {
		logger, _ := zap.NewDevelopment()
		handler := NewTodoHandler(&MockTodoService{}, logger)

		router := setupTestRouter()
		router.POST("/api/todos/reorder", handler.ReorderTodos)

		req := httptest.NewRequest(http.MethodPost, "/api/todos/reorder", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("ReorderTodos() status = %v, want %v", w.Code, http.StatusBadRequest)
		}
	})
}

func TestTodoHandler_ListChanges(t *testing.T) {
	todoID := uuid.New()

	mockService := &MockTodoService{
		ListChangesFunc: func(ctx context.Context, id uuid.UUID) ([]*dto.ChangeResponse, error) {
			return []*dto.ChangeResponse{
				{ID: uuid.New(), TodoID: id, ChangeType: "title_updated"},
				{ID: uuid.New(), TodoID: id, ChangeType: "created"},
			}, nil
		},
	}
	logger, _ := zap.NewDevelopment()
	handler := NewTodoHandler(mockService, logger)

	router := setupTestRouter()
	router.GET("/api/todos/:id/changes", handler.ListChanges)

	req := httptest.NewRequest(http.MethodGet, "/api/todos/"+todoID.String()+"/changes", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("ListChanges() status = %v, want %v", w.Code, http.StatusOK)
	}

	var changes []dto.ChangeResponse
	if err := json.Unmarshal(w.Body.Bytes(), &changes); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(changes) != 2 {
		t.Errorf("ListChanges() returned %d changes, want 2", len(changes))
	}
}
