// Package appstate holds the per-browser-session application state: who is signed
// in, which shop they are working on, and the backend credential.
//
// Lifecycle: Hydrate loads the persisted key (or starts fresh), actions are applied
// through Dispatch which persists the result, and LoggedOut tears the key down.
package appstate

import (
	"github.com/fekuna/omnipos-storefront/internal/model"
)

type State struct {
	SessionID     string      `json:"session_id"`
	User          *model.User `json:"user,omitempty"`
	CurrentShop   *model.Shop `json:"current_shop,omitempty"`
	BackendCookie string      `json:"backend_cookie,omitempty"`
	// Restoring is true while a persisted credential has not been re-verified.
	Restoring bool `json:"restoring"`
}

func (s *State) SignedIn() bool {
	return s.User != nil && s.BackendCookie != ""
}

// Action is a state transition. Apply must only touch the state it is given.
type Action interface {
	Apply(s *State)
}

type SignedIn struct {
	User   model.User
	Cookie string
}

func (a SignedIn) Apply(s *State) {
	u := a.User
	s.User = &u
	s.BackendCookie = a.Cookie
	s.CurrentShop = nil
	s.Restoring = false
}

// Resumed marks a returning session whose stored credential must be re-verified
// before it is trusted again.
type Resumed struct{}

func (Resumed) Apply(s *State) {
	s.Restoring = s.BackendCookie != ""
}

type Restored struct {
	User model.User
}

func (a Restored) Apply(s *State) {
	u := a.User
	s.User = &u
	s.Restoring = false
}

// RestoreFailed drops a credential the backend no longer accepts.
type RestoreFailed struct{}

func (RestoreFailed) Apply(s *State) {
	s.User = nil
	s.CurrentShop = nil
	s.BackendCookie = ""
	s.Restoring = false
}

type ShopSelected struct {
	Shop model.Shop
}

func (a ShopSelected) Apply(s *State) {
	sh := a.Shop
	s.CurrentShop = &sh
}

// ShopUpdated refreshes the current shop if it is the one that changed.
type ShopUpdated struct {
	Shop model.Shop
}

func (a ShopUpdated) Apply(s *State) {
	if s.CurrentShop != nil && s.CurrentShop.ID == a.Shop.ID {
		sh := a.Shop
		s.CurrentShop = &sh
	}
}

type LoggedOut struct{}

func (LoggedOut) Apply(s *State) {
	*s = State{SessionID: s.SessionID}
}
