package auth

import (
	"context"
	"testing"
)

func TestStateConstructors(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  State
	}{
		{"authenticated", AuthenticatedState(), State{Authenticated: true, Known: true}},
		{"unauthenticated", UnauthenticatedState(), State{Known: true}},
		{"loading", LoadingState(), State{Loading: true, Known: true}},
		{"unknown", UnknownState(), State{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.state != tt.want {
				t.Errorf("got %+v, want %+v", tt.state, tt.want)
			}
		})
	}
}

func TestStateResolve(t *testing.T) {
	tests := []struct {
		name  string
		state State
		want  State
	}{
		{
			name:  "unknown resolves to unauthenticated",
			state: UnknownState(),
			want:  State{Known: true},
		},
		{
			name:  "unknown with stray flags still fails closed",
			state: State{Authenticated: true, Loading: true},
			want:  State{Known: true},
		},
		{
			name:  "settled authenticated passes through",
			state: AuthenticatedState(),
			want:  State{Authenticated: true, Known: true},
		},
		{
			name:  "settled loading passes through",
			state: LoadingState(),
			want:  State{Loading: true, Known: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Resolve(); got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStaticSource(t *testing.T) {
	src := StaticSource(AuthenticatedState())
	got := src.State(context.Background())
	if !got.Authenticated || !got.Known {
		t.Errorf("StaticSource state = %+v", got)
	}
}

func TestSignalSource(t *testing.T) {
	src, sig := NewSignalSource(LoadingState())

	if got := src.State(context.Background()); !got.Loading {
		t.Errorf("initial state = %+v, want loading", got)
	}

	sig.Set(AuthenticatedState())
	if got := src.State(context.Background()); !got.Authenticated {
		t.Errorf("after set state = %+v, want authenticated", got)
	}
}

func TestSignalSourceNilSignal(t *testing.T) {
	src := SignalSource{}
	got := src.State(context.Background())
	if got.Known {
		t.Errorf("nil signal should report unknown, got %+v", got)
	}
}

func TestPrincipalHasRole(t *testing.T) {
	p := Principal{Roles: []string{"user", "admin"}}

	if !p.HasRole("admin") {
		t.Error("expected admin role")
	}
	if p.HasRole("owner") {
		t.Error("unexpected owner role")
	}
	if (Principal{}).HasRole("user") {
		t.Error("empty principal should have no roles")
	}
}
