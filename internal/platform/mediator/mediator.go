// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mediator dispatches in-process requests to their handlers.

Transports (REST, minimal routes, gRPC) never call application handlers
directly. They build a request value and [Send] it; the mediator finds the
handler registered for that request type and runs it inside the pipeline of
[Behavior]s.

Usage:

	m := mediator.New(mediator.Logging(logger), mediator.Validation())
	mediator.Register[CreateLangCommand, *Lang](m, handler)

	lang, err := mediator.Send[CreateLangCommand, *Lang](ctx, m, cmd)

Architecture:

  - One handler per request type; registering twice panics.
  - Behaviors wrap handlers in registration order (the first is outermost).
  - Handlers and behaviors must be registered before the first Send.
*/
package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrHandlerNotFound is returned when no handler is registered for a request type.
var ErrHandlerNotFound = errors.New("mediator: handler not found")

// Handler processes one request type.
type Handler[Req, Resp any] interface {
	Handle(ctx context.Context, request Req) (Resp, error)
}

// HandlerFunc adapts a function to the [Handler] interface.
type HandlerFunc[Req, Resp any] func(ctx context.Context, request Req) (Resp, error)

// Handle calls f(ctx, request).
func (f HandlerFunc[Req, Resp]) Handle(ctx context.Context, request Req) (Resp, error) {
	return f(ctx, request)
}

// Next invokes the rest of the pipeline.
type Next func(ctx context.Context) (any, error)

// Behavior is a cross-cutting step around every handler.
type Behavior func(ctx context.Context, request any, next Next) (any, error)

type untypedHandler func(ctx context.Context, request any) (any, error)

// Mediator holds the handler registry and the behavior pipeline.
type Mediator struct {
	mu        sync.RWMutex
	handlers  map[reflect.Type]untypedHandler
	behaviors []Behavior
}

// New creates a mediator with the given pipeline behaviors.
func New(behaviors ...Behavior) *Mediator {
	return &Mediator{
		handlers:  make(map[reflect.Type]untypedHandler),
		behaviors: behaviors,
	}
}

// Use appends behaviors to the pipeline.
func (m *Mediator) Use(behaviors ...Behavior) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.behaviors = append(m.behaviors, behaviors...)
}

// Register binds handler to the request type Req.
//
// It panics if Req already has a handler, as a duplicate is a wiring bug.
func Register[Req, Resp any](m *Mediator, handler Handler[Req, Resp]) {
	requestType := reflect.TypeFor[Req]()

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.handlers[requestType]; exists {
		panic(fmt.Sprintf("mediator: duplicate handler for %s", requestType))
	}

	m.handlers[requestType] = func(ctx context.Context, request any) (any, error) {
		return handler.Handle(ctx, request.(Req))
	}
}

// Send dispatches request to its handler through the pipeline.
func Send[Req, Resp any](ctx context.Context, m *Mediator, request Req) (Resp, error) {
	var zero Resp
	requestType := reflect.TypeFor[Req]()

	m.mu.RLock()
	handler, ok := m.handlers[requestType]
	behaviors := m.behaviors
	m.mu.RUnlock()

	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrHandlerNotFound, requestType)
	}

	result, err := pipeline(behaviors, handler, request)(ctx)
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}

	response, ok := result.(Resp)
	if !ok {
		return zero, fmt.Errorf("mediator: %s handler returned %T, want %s", requestType, result, reflect.TypeFor[Resp]())
	}
	return response, nil
}

// pipeline folds behaviors around handler so that behaviors[0] runs first.
func pipeline(behaviors []Behavior, handler untypedHandler, request any) Next {
	next := func(ctx context.Context) (any, error) {
		return handler(ctx, request)
	}
	for i := len(behaviors) - 1; i >= 0; i-- {
		behavior, inner := behaviors[i], next
		next = func(ctx context.Context) (any, error) {
			return behavior(ctx, request, inner)
		}
	}
	return next
}

// RequestName returns a short, readable name for a request value.
func RequestName(request any) string {
	t := reflect.TypeOf(request)
	if t == nil {
		return "<nil>"
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}
