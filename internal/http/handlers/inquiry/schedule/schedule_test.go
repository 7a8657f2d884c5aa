package schedule

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/autopuzzle/dealership-crm/internal/models"
)

type ScheduleServiceMock struct {
	mock.Mock
}

func (m *ScheduleServiceMock) ScheduleFromInquiry(ctx context.Context, inquiryType string, id int, req models.DummySchedule) (int, error) {
	args := m.Called(ctx, inquiryType, id, req)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newRequest(t *testing.T, inquiryType, id string, body any) *http.Request {
	t.Helper()

	var bodyBytes []byte
	switch v := body.(type) {
	case string:
		bodyBytes = []byte(v)
	default:
		var err error
		bodyBytes, err = json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest(http.MethodPost,
		"/inquiries/"+inquiryType+"/"+id+"/schedule", bytes.NewReader(bodyBytes))

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("type", inquiryType)
	rctx.URLParams.Add("id", id)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	return req.WithContext(ctx)
}

func TestScheduleHandler_ServeHTTP(t *testing.T) {
	t.Run("schedules cash inquiry", func(t *testing.T) {
		serviceMock := new(ScheduleServiceMock)
		handler := New(newNoopLogger(), serviceMock)

		body := models.DummySchedule{Date: "۱۴۰۳/۰۸/۱۱", Time: "16:00"}
		serviceMock.On("ScheduleFromInquiry", mock.Anything, "cash", 5, body).
			Return(1, nil).Once()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(t, "cash", "5", body))

		assert.Equal(t, http.StatusOK, rec.Code)

		var got map[string]any
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "OK", got["status"])
		assert.Equal(t, float64(1), got["data"].(map[string]any)["updated"])
		serviceMock.AssertExpectations(t)
	})

	t.Run("bad id in url", func(t *testing.T) {
		serviceMock := new(ScheduleServiceMock)
		handler := New(newNoopLogger(), serviceMock)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(t, "cash", "abc",
			models.DummySchedule{Date: "1403/08/11", Time: "16:00"}))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		serviceMock.AssertNotCalled(t, "ScheduleFromInquiry")
	})

	t.Run("validation error - missing time", func(t *testing.T) {
		serviceMock := new(ScheduleServiceMock)
		handler := New(newNoopLogger(), serviceMock)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(t, "installment", "5",
			models.DummySchedule{Date: "1403/08/11"}))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		var got map[string]any
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "field Time is a required field", got["error"])
	})

	t.Run("unparseable date rejected by service", func(t *testing.T) {
		serviceMock := new(ScheduleServiceMock)
		handler := New(newNoopLogger(), serviceMock)

		body := models.DummySchedule{Date: "soon", Time: "16:00"}
		serviceMock.On("ScheduleFromInquiry", mock.Anything, "cash", 5, body).
			Return(0, errors.New("cannot parse start time")).Once()

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, newRequest(t, "cash", "5", body))

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var got map[string]any
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "could not schedule meeting", got["error"])
	})
}
