package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/ivanpodgorny/clubhost/internal/entity"
	"github.com/stretchr/testify/mock"
)

type ValidatorMock struct {
	mock.Mock
}

func (m *ValidatorMock) Struct(_ context.Context, s any) error {
	args := m.Called(s)

	return args.Error(0)
}

func (m *ValidatorMock) Var(_ context.Context, field any, tag string) error {
	args := m.Called(field, tag)

	return args.Error(0)
}

type NoticeSourceMock struct {
	mock.Mock
}

func (m *NoticeSourceMock) Drain() entity.PresenterState {
	args := m.Called()

	return args.Get(0).(entity.PresenterState)
}

func sendTestRequest(method, target string, body io.Reader, handler http.HandlerFunc) *http.Response {
	request := httptest.NewRequest(method, target, body)
	w := httptest.NewRecorder()
	handler(w, request)

	return w.Result()
}
