package reflection

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Fixture hierarchy: sportsCar embeds car embeds vehicle.

type mover interface{ Move() string }
type honker interface{ Honk() string }
type braker interface{ Brake() }

type vehicle struct{}

func (vehicle) Move() string { return "rolling" }

type car struct{ vehicle }

func (*car) Honk() string { return "beep" }
func (car) Brake()        {}

type sportsCar struct{ car }

type bicycle struct{ vehicle }

var (
	moverType  = reflect.TypeOf((*mover)(nil)).Elem()
	honkerType = reflect.TypeOf((*honker)(nil)).Elem()
	brakerType = reflect.TypeOf((*braker)(nil)).Elem()
)

func TestAncestryOf(t *testing.T) {
	ancestry := AncestryOf(reflect.TypeOf(sportsCar{}))
	assert.Equal(t, []reflect.Type{
		reflect.TypeOf(car{}),
		reflect.TypeOf(vehicle{}),
	}, ancestry)
}

func TestAncestryOfUnwrapsPointer(t *testing.T) {
	ancestry := AncestryOf(reflect.TypeOf(&sportsCar{}))
	assert.Equal(t, []reflect.Type{
		reflect.TypeOf(car{}),
		reflect.TypeOf(vehicle{}),
	}, ancestry)
}

func TestAncestryOfLeafType(t *testing.T) {
	assert.Empty(t, AncestryOf(reflect.TypeOf(vehicle{})))
	assert.Empty(t, AncestryOf(reflect.TypeOf(42)))
}

func TestBoundedAncestryOf(t *testing.T) {
	// car brakes, vehicle does not; descent stops at the bound.
	ancestry := BoundedAncestryOf(reflect.TypeOf(sportsCar{}), brakerType)
	assert.Equal(t, []reflect.Type{reflect.TypeOf(car{})}, ancestry)

	// Every ancestor moves.
	ancestry = BoundedAncestryOf(reflect.TypeOf(sportsCar{}), moverType)
	assert.Equal(t, []reflect.Type{
		reflect.TypeOf(car{}),
		reflect.TypeOf(vehicle{}),
	}, ancestry)
}

func TestCapabilitiesOf(t *testing.T) {
	declared := []reflect.Type{brakerType, honkerType, moverType}

	caps := CapabilitiesOf(reflect.TypeOf(&sportsCar{}), declared)
	// All implemented by the type itself; declaration order preserved.
	assert.Equal(t, []reflect.Type{brakerType, honkerType, moverType}, caps)

	caps = CapabilitiesOf(reflect.TypeOf(&bicycle{}), declared)
	assert.Equal(t, []reflect.Type{moverType}, caps)
}

func TestCapabilitiesOfNoDuplicates(t *testing.T) {
	declared := []reflect.Type{moverType, moverType}
	caps := CapabilitiesOf(reflect.TypeOf(&vehicle{}), declared)
	assert.Equal(t, []reflect.Type{moverType}, caps)
}

func TestCapabilitiesOfIgnoresNonInterfaces(t *testing.T) {
	declared := []reflect.Type{reflect.TypeOf(car{}), moverType}
	caps := CapabilitiesOf(reflect.TypeOf(&sportsCar{}), declared)
	assert.Equal(t, []reflect.Type{moverType}, caps)
}

func TestCapabilitiesAndAncestryOf(t *testing.T) {
	declared := []reflect.Type{moverType, honkerType}

	line := CapabilitiesAndAncestryOf(reflect.TypeOf(sportsCar{}), declared)
	assert.Equal(t, []reflect.Type{
		reflect.TypeOf(car{}),
		reflect.TypeOf(vehicle{}),
		reflect.TypeOf(sportsCar{}),
		moverType,
		honkerType,
	}, line)
}

func TestImplements(t *testing.T) {
	// Pointer receiver methods count for the value type too.
	assert.True(t, Implements(reflect.TypeOf(car{}), honkerType))
	assert.True(t, Implements(reflect.TypeOf(&car{}), honkerType))
	assert.False(t, Implements(reflect.TypeOf(vehicle{}), honkerType))
	assert.False(t, Implements(reflect.TypeOf(car{}), reflect.TypeOf(car{})))
}
