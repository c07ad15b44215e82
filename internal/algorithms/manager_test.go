package algorithms

import (
	"testing"

	"github.com/stretchr/testify/require"

	"binary-morphology/internal/raster"
)

type fakeAlgorithm struct {
	name     string
	shutdown bool
}

func (f *fakeAlgorithm) Process(input *raster.Plane, params map[string]interface{}, progress ProgressFunc) (*raster.Plane, error) {
	return input.Clone(), nil
}

func (f *fakeAlgorithm) ValidateParameters(params map[string]interface{}) error { return nil }

func (f *fakeAlgorithm) GetDefaultParameters() map[string]interface{} {
	return map[string]interface{}{"iterations": 1}
}

func (f *fakeAlgorithm) GetName() string { return f.name }

func (f *fakeAlgorithm) Shutdown() { f.shutdown = true }

func TestManager_Registration(t *testing.T) {
	alg := &fakeAlgorithm{name: "Fake"}
	manager := NewManager(alg)

	require.Equal(t, "Fake", manager.GetCurrentAlgorithm())
	require.Equal(t, []string{"Fake"}, manager.GetAvailableAlgorithms())

	got, err := manager.GetAlgorithm("Fake")
	require.NoError(t, err)
	require.Same(t, alg, got)

	_, err = manager.GetAlgorithm("Missing")
	require.Error(t, err)
	require.Error(t, manager.SetCurrentAlgorithm("Missing"))
}

func TestManager_ParameterStore(t *testing.T) {
	manager := NewManager(&fakeAlgorithm{name: "Fake"})

	params := manager.GetParameters("Fake")
	require.Equal(t, 1, params["iterations"])

	// The returned map is a copy; mutating it must not touch the store.
	params["iterations"] = 99
	require.Equal(t, 1, manager.GetParameters("Fake")["iterations"])

	require.NoError(t, manager.SetParameter("Fake", "iterations", 4))
	require.Equal(t, 4, manager.GetParameters("Fake")["iterations"])

	require.Error(t, manager.SetParameter("Missing", "iterations", 4))
	require.Empty(t, manager.GetParameters("Missing"))
}

func TestManager_ShutdownReleasesAlgorithms(t *testing.T) {
	alg := &fakeAlgorithm{name: "Fake"}
	manager := NewManager(alg)

	manager.Shutdown()
	require.True(t, alg.shutdown)
}
