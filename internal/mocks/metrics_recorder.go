// Mock of github.com/devkvlr/spp/metrics (interfaces: Recorder), written by
// hand in the shape MockGen produces; the go:generate directive in
// metrics/metrics.go regenerates it.

// Package mocks holds GoMock mocks of this module's interfaces.
package mocks

import (
	reflect "reflect"
	time "time"

	gomock "github.com/golang/mock/gomock"
)

// MockRecorder is a mock of the metrics.Recorder interface.
type MockRecorder struct {
	ctrl     *gomock.Controller
	recorder *MockRecorderMockRecorder
}

// MockRecorderMockRecorder is the mock recorder for MockRecorder.
type MockRecorderMockRecorder struct {
	mock *MockRecorder
}

// NewMockRecorder creates a new mock instance.
func NewMockRecorder(ctrl *gomock.Controller) *MockRecorder {
	mock := &MockRecorder{ctrl: ctrl}
	mock.recorder = &MockRecorderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockRecorder) EXPECT() *MockRecorderMockRecorder {
	return m.recorder
}

// WorkerStarted mocks base method.
func (m *MockRecorder) WorkerStarted(stageName string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "WorkerStarted", stageName)
}

// WorkerStarted indicates an expected call of WorkerStarted.
func (mr *MockRecorderMockRecorder) WorkerStarted(stageName interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WorkerStarted", reflect.TypeOf((*MockRecorder)(nil).WorkerStarted), stageName)
}

// WorkerStopped mocks base method.
func (m *MockRecorder) WorkerStopped(stageName string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "WorkerStopped", stageName)
}

// WorkerStopped indicates an expected call of WorkerStopped.
func (mr *MockRecorderMockRecorder) WorkerStopped(stageName interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "WorkerStopped", reflect.TypeOf((*MockRecorder)(nil).WorkerStopped), stageName)
}

// ItemProcessed mocks base method.
func (m *MockRecorder) ItemProcessed(stageName string, d time.Duration) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ItemProcessed", stageName, d)
}

// ItemProcessed indicates an expected call of ItemProcessed.
func (mr *MockRecorderMockRecorder) ItemProcessed(stageName, d interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ItemProcessed", reflect.TypeOf((*MockRecorder)(nil).ItemProcessed), stageName, d)
}

// ItemDropped mocks base method.
func (m *MockRecorder) ItemDropped(stageName string) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ItemDropped", stageName)
}

// ItemDropped indicates an expected call of ItemDropped.
func (mr *MockRecorderMockRecorder) ItemDropped(stageName interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ItemDropped", reflect.TypeOf((*MockRecorder)(nil).ItemDropped), stageName)
}
