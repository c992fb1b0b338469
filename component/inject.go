package component

import (
	"fmt"
	"maps"
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/c360/wirekit/convert"
	"github.com/c360/wirekit/errors"
	"github.com/c360/wirekit/reflection"
)

// reserved property key whose setter receives the whole raw map.
const propertiesKey = "properties"

// SetProperties injects configuration values into the implementation.
// For every key the expected setter is "Set" plus the capitalized key; when
// exactly one single-argument setter of that name exists, the value is
// coerced to its parameter type and injected. More than one match is a
// configuration error naming the count and key; zero matches are silently
// skipped. After per-key processing, a setter for the reserved "properties"
// key receives the whole raw map. The raw map is stored as the component's
// property snapshot regardless of what was actually injected.
func (c *Component) SetProperties(properties map[string]string) error {
	keys := make([]string, 0, len(properties))
	for key := range properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := c.injectProperty(key, properties[key]); err != nil {
			return err
		}
	}
	if err := c.injectProperty(propertiesKey, properties); err != nil {
		return err
	}

	c.properties = maps.Clone(properties)
	return nil
}

// Properties returns the last full property snapshot handed to SetProperties.
func (c *Component) Properties() map[string]string {
	return maps.Clone(c.properties)
}

// SetterInjectedProperties returns the subset of properties actually applied
// through setters, keyed by property key, with the coerced values.
func (c *Component) SetterInjectedProperties() map[string]any {
	return maps.Clone(c.setterInjected)
}

// injectProperty applies one property value if a matching setter exists.
func (c *Component) injectProperty(key string, value any) error {
	setterName := "Set" + capitalize(key)
	setters := reflection.MethodsByName(reflect.TypeOf(c.impl), setterName, 1)

	switch {
	case len(setters) == 0:
		return nil
	case len(setters) > 1:
		return errors.WrapConfig(
			fmt.Errorf("%w: %d setters found for property %q", errors.ErrAmbiguousSetter, len(setters), key),
			"Component", "SetProperties", "setter resolution")
	}

	setter := setters[0]
	coerced, err := convert.ToType(value, reflection.Params(setter)[0])
	if err != nil {
		return errors.WrapConfig(err, "Component", "SetProperties", "value coercion")
	}
	if _, err := reflection.CallMethod(c.impl, setter.Name, []any{coerced}); err != nil {
		return err
	}

	c.setterInjected[key] = coerced
	if c.metrics != nil {
		c.metrics.PropertyInjections.WithLabelValues(c.id).Inc()
	}
	c.logger.Debug("property injected", "key", key, "setter", setterName)
	return nil
}

// capitalize upper-cases the first rune of a property key.
func capitalize(key string) string {
	r, size := utf8.DecodeRuneInString(key)
	if r == utf8.RuneError {
		return key
	}
	return string(unicode.ToUpper(r)) + key[size:]
}
