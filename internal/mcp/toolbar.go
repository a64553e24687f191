package mcp

import (
	"sync"

	"github.com/1broseidon/launchbar/internal/config"
	"github.com/1broseidon/launchbar/internal/ipc"
	"github.com/1broseidon/launchbar/internal/toolbar"
)

// Toolbar is what the tools need from a shortcut store. It is satisfied by an
// in-process controller or by a running daemon.
type Toolbar interface {
	Config() (*config.Config, error)
	Launch(category string, index int) error
	Mutate(m toolbar.Mutation, save bool) (int, error)
}

// Local drives a controller owned by this process.
type Local struct {
	mu   sync.Mutex
	ctrl *toolbar.Controller
}

// NewLocal wraps ctrl. ctrl must not be used elsewhere afterwards.
func NewLocal(ctrl *toolbar.Controller) *Local {
	return &Local{ctrl: ctrl}
}

func (l *Local) Config() (*config.Config, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ctrl.Config(), nil
}

func (l *Local) Launch(category string, index int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if category == "" {
		return l.ctrl.LaunchQuick(index)
	}
	return l.ctrl.LaunchCategory(category, index)
}

func (l *Local) Mutate(m toolbar.Mutation, save bool) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	idx, err := l.ctrl.Apply(m)
	if err != nil {
		return -1, err
	}
	if save {
		if err := l.ctrl.Save(); err != nil {
			return idx, err
		}
	}
	return idx, nil
}

// Remote forwards to a daemon over IPC.
type Remote struct {
	Client *ipc.Client
}

func (r *Remote) Config() (*config.Config, error) {
	state, err := r.Client.GetState()
	if err != nil {
		return nil, err
	}
	return state.Config, nil
}

func (r *Remote) Launch(category string, index int) error {
	return r.Client.Launch(category, index)
}

func (r *Remote) Mutate(m toolbar.Mutation, save bool) (int, error) {
	return r.Client.Mutate(m, save)
}
