package router

import (
	"fmt"
	"net/url"
	"sync"
)

// NavigateOptions configures navigation behavior.
type NavigateOptions struct {
	// Replace replaces the current history entry instead of pushing.
	Replace bool

	// Params are query parameters to add to the URL.
	Params map[string]any
}

// NavigateOption is a functional option for Navigate.
type NavigateOption func(*NavigateOptions)

// WithReplace replaces the current history entry instead of pushing.
func WithReplace() NavigateOption {
	return func(o *NavigateOptions) {
		o.Replace = true
	}
}

// WithParams adds query parameters to the navigation URL.
func WithParams(params map[string]any) NavigateOption {
	return func(o *NavigateOptions) {
		o.Params = params
	}
}

// NavigationRequest represents a requested navigation.
type NavigationRequest struct {
	Path    string
	Options NavigateOptions
}

// BuildURL constructs the full URL for a navigation request.
func (nr *NavigationRequest) BuildURL() (string, error) {
	u, err := url.Parse(nr.Path)
	if err != nil {
		return "", fmt.Errorf("invalid path: %s", nr.Path)
	}

	if nr.Options.Params != nil {
		q := u.Query()
		for k, v := range nr.Options.Params {
			q.Set(k, fmt.Sprintf("%v", v))
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// Navigator handles navigation side effects.
// Guards invoke it as an injected command object; they never reach for a
// global router singleton.
type Navigator interface {
	// Navigate performs a navigation to the given path.
	Navigate(path string, opts ...NavigateOption)
}

// NavigatorFunc adapts a function to the Navigator interface.
type NavigatorFunc func(path string, opts ...NavigateOption)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(path string, opts ...NavigateOption) {
	f(path, opts...)
}

// Recorder is a Navigator that records every navigation request.
// It backs adapters that translate navigations into transport-specific
// responses, and doubles as a test double.
type Recorder struct {
	mu    sync.Mutex
	calls []NavigationRequest
}

// NewRecorder creates an empty navigation recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Navigate records the navigation request.
func (r *Recorder) Navigate(path string, opts ...NavigateOption) {
	var options NavigateOptions
	for _, opt := range opts {
		opt(&options)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, NavigationRequest{Path: path, Options: options})
}

// Calls returns a snapshot of recorded navigations in order.
func (r *Recorder) Calls() []NavigationRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]NavigationRequest, len(r.calls))
	copy(calls, r.calls)
	return calls
}

// Last returns the most recent navigation, if any.
func (r *Recorder) Last() (NavigationRequest, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return NavigationRequest{}, false
	}
	return r.calls[len(r.calls)-1], true
}

// Reset clears recorded navigations.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
