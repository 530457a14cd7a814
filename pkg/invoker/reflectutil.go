package invoker

import (
	"fmt"
	"reflect"
	"strings"
)

// SingleAbstractMethod locates the sole method of a handler interface type,
// mirroring the reflective lookup the original host language performs when
// synthesizing an invoker proxy. It fails if the type isn't an interface, or
// has zero or more than one method.
func SingleAbstractMethod(handlerType reflect.Type) (reflect.Method, error) {
	if handlerType == nil || handlerType.Kind() != reflect.Interface {
		return reflect.Method{}, fmt.Errorf("invoker: %v is not an interface type", handlerType)
	}
	switch handlerType.NumMethod() {
	case 0:
		return reflect.Method{}, fmt.Errorf("invoker: %v has no abstract methods", handlerType)
	case 1:
		return handlerType.Method(0), nil
	default:
		return reflect.Method{}, fmt.Errorf("invoker: %v has more than one abstract method", handlerType)
	}
}

// IsNamedInterface reports whether t is a named (non-anonymous), non-generic
// interface type, the shape listenAll requires of a handler interface. An
// instantiation of a generic interface is named too, but reflect writes its
// type arguments in brackets (for example "Handler[int]"), so a name
// containing '[' is rejected.
func IsNamedInterface(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Interface && t.Name() != "" && !strings.Contains(t.Name(), "[")
}
