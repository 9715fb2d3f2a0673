// Package input turns terminal input events into application actions.
//
// The input system consists of several cooperating packages:
//
//   - key, mouse: the modifier model, key codes and mouse event kinds
//   - event: the closed set of input events a backend delivers
//   - pattern: declarative event patterns and the first-match-wins matcher
//   - eventmap: named tables of pattern-to-action bindings and their registry
//
// A Handler resolves each event through a Resolver, normally an
// eventmap.Registry, and publishes the resulting Action on a channel. An
// event that resolves to nothing produces no action; the handler logs it at
// debug level and counts it in its metrics.
//
// # Usage
//
//	registry := eventmap.NewRegistry()
//	_ = eventmap.LoadDefaults(registry)
//	handler := input.NewHandler(registry, input.DefaultConfig())
//
//	for {
//	    ev, ok := backend.PollEvent()
//	    if !ok {
//	        break
//	    }
//	    handler.HandleEvent(ev)
//	}
//
//	for action := range handler.Actions() {
//	    execute(action)
//	}
package input
