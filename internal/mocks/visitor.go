package mocks

import (
	"github.com/brettbedarf/fstree"
	"github.com/stretchr/testify/mock"
)

// MockVisitor implements fstree.Visitor for testing across packages.
// Expectations are keyed by the node passed to each call.
type MockVisitor struct {
	mock.Mock
}

func (m *MockVisitor) VisitFile(n fstree.Node) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockVisitor) EnterDir(n fstree.Node) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockVisitor) LeaveDir(n fstree.Node) error {
	args := m.Called(n)
	return args.Error(0)
}

var _ fstree.Visitor = (*MockVisitor)(nil)

// FailingWriter records the first Allow writes and fails every write after.
type FailingWriter struct {
	Allow  int   // Number of writes that succeed before failing
	Err    error // Error returned once Allow is exhausted
	Writes []string
}

func (w *FailingWriter) Write(p []byte) (int, error) {
	if len(w.Writes) >= w.Allow {
		return 0, w.Err
	}
	w.Writes = append(w.Writes, string(p))
	return len(p), nil
}
