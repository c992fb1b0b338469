package component

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/wirekit/errors"
)

func TestRegistryRegister(t *testing.T) {
	registry := NewRegistry()

	err := registry.Register(CapabilityConfig{Name: "greeter", Type: greeterType})
	require.NoError(t, err)
	assert.Equal(t, 1, registry.Len())

	capability, ok := registry.Lookup(greeterType)
	require.True(t, ok)
	assert.Equal(t, "greeter", capability.Name)

	capability, ok = registry.LookupName("greeter")
	require.True(t, ok)
	assert.Equal(t, greeterType, capability.Type)
}

func TestRegistryRegisterValidation(t *testing.T) {
	registry := NewRegistry()

	tests := []struct {
		name   string
		config CapabilityConfig
	}{
		{"empty name", CapabilityConfig{Type: greeterType}},
		{"nil type", CapabilityConfig{Name: "greeter"}},
		{"non-interface type", CapabilityConfig{Name: "service", Type: reflect.TypeOf(service{})}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := registry.Register(tt.config)
			require.Error(t, err)
			assert.True(t, errors.IsConfig(err))
		})
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	registry := NewRegistry()
	registry.MustRegister(CapabilityConfig{Name: "greeter", Type: greeterType})

	err := registry.Register(CapabilityConfig{Name: "greeter", Type: counterType})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDuplicateEntry)

	err = registry.Register(CapabilityConfig{Name: "other", Type: greeterType})
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrDuplicateEntry)
}

func TestRegistryDeclaredOrder(t *testing.T) {
	registry := newTestRegistry()
	assert.Equal(t, []reflect.Type{greeterType, counterType, failerType}, registry.Declared())
}

func TestRegistryLookupMiss(t *testing.T) {
	registry := NewRegistry()
	_, ok := registry.Lookup(greeterType)
	assert.False(t, ok)
	_, ok = registry.LookupName("ghost")
	assert.False(t, ok)
}
