package reflection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/wirekit/errors"
)

type account struct {
	owner   string
	balance int
}

func newAccount(owner string) account {
	return account{owner: owner}
}

func newAccountWithBalance(owner string, balance int) account {
	return account{owner: owner, balance: balance}
}

type thing struct {
	source string
}

func newThingFromInt(int) thing       { return thing{source: "int"} }
func newThingFromString(string) thing { return thing{source: "string"} }

var errBoom = errors.New("boom")

func newFailing(string) (account, error) {
	return account{}, errBoom
}

func newPanicking(string) account {
	panic("constructor blew up")
}

func TestRegisterTypeValidation(t *testing.T) {
	ctx := NewContext()

	tests := []struct {
		name  string
		tname string
		ctor  any
	}{
		{"empty type name", "", newAccount},
		{"not a function", "account", 42},
		{"variadic", "account", func(owners ...string) account { return account{} }},
		{"no returns", "account", func(string) {}},
		{"second return not error", "account", func(string) (account, int) { return account{}, 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ctx.RegisterType(tt.tname, tt.ctor)
			require.Error(t, err)
			assert.True(t, errors.IsConfig(err))
		})
	}
}

func TestRegisterTypeAppends(t *testing.T) {
	ctx := NewContext()
	require.NoError(t, ctx.RegisterType("account", newAccount))
	require.NoError(t, ctx.RegisterType("account", newAccountWithBalance))

	instance, err := ctx.Instantiate("account", "alice", 10)
	require.NoError(t, err)
	assert.Equal(t, account{owner: "alice", balance: 10}, instance)
}

func TestInstantiateExactMatch(t *testing.T) {
	ctx := NewContext()
	ctx.MustRegisterType("account", newAccount, newAccountWithBalance)

	instance, err := ctx.Instantiate("account", "bob")
	require.NoError(t, err)
	assert.Equal(t, account{owner: "bob"}, instance)
}

func TestInstantiateCoercesArguments(t *testing.T) {
	ctx := NewContext()
	ctx.MustRegisterType("account", newAccountWithBalance)

	// int owner coerces to string, string balance coerces to int.
	instance, err := ctx.Instantiate("account", 7, "250")
	require.NoError(t, err)
	assert.Equal(t, account{owner: "7", balance: 250}, instance)
}

func TestInstantiateReusesLastConstructor(t *testing.T) {
	ctx := NewContext()
	ctx.MustRegisterType("thing", newThingFromInt, newThingFromString)

	first, err := ctx.Instantiate("thing", 5)
	require.NoError(t, err)
	assert.Equal(t, thing{source: "int"}, first)

	// The cached int constructor wins over the exact string match because
	// "7" coerces to int.
	second, err := ctx.Instantiate("thing", "7")
	require.NoError(t, err)
	assert.Equal(t, thing{source: "int"}, second)
}

func TestInstantiateCacheMissFallsThrough(t *testing.T) {
	ctx := NewContext()
	ctx.MustRegisterType("thing", newThingFromInt, newThingFromString)

	first, err := ctx.Instantiate("thing", 5)
	require.NoError(t, err)
	assert.Equal(t, thing{source: "int"}, first)

	// Not coercible to int; full resolution finds the string constructor.
	second, err := ctx.Instantiate("thing", "not a number")
	require.NoError(t, err)
	assert.Equal(t, thing{source: "string"}, second)
}

func TestInstantiateUnknownType(t *testing.T) {
	ctx := NewContext()

	_, err := ctx.Instantiate("ghost", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownType)

	var ie *errors.InstantiationError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "ghost", ie.TypeName)
	assert.Equal(t, []string{"string"}, ie.ArgTypes)
}

func TestInstantiateNoMatchingConstructor(t *testing.T) {
	ctx := NewContext()
	ctx.MustRegisterType("account", newAccount)

	_, err := ctx.Instantiate("account", "alice", 10)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNoConstructor)
}

func TestInstantiateNotCoercible(t *testing.T) {
	ctx := NewContext()
	ctx.MustRegisterType("thing", newThingFromInt)

	_, err := ctx.Instantiate("thing", "not a number")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotCoercible)
}

func TestInstantiateConstructorError(t *testing.T) {
	ctx := NewContext()
	ctx.MustRegisterType("account", newFailing)

	_, err := ctx.Instantiate("account", "alice")
	require.Error(t, err)

	var ie *errors.InstantiationError
	require.ErrorAs(t, err, &ie)
	assert.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "account")
}

func TestInstantiateConstructorPanicPropagates(t *testing.T) {
	ctx := NewContext()
	ctx.MustRegisterType("account", newPanicking)

	assert.Panics(t, func() {
		_, _ = ctx.Instantiate("account", "alice")
	})
}

func TestInstantiateNilArgument(t *testing.T) {
	ctx := NewContext()
	ctx.MustRegisterType("holder", func(m mover) string {
		if m == nil {
			return "empty"
		}
		return m.Move()
	})

	instance, err := ctx.Instantiate("holder", nil)
	require.NoError(t, err)
	assert.Equal(t, "empty", instance)
}
