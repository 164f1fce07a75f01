// Package policy decides whether an authenticated identity may act on an
// entity.  Decisions are pure: the engine holds no state beyond its rule
// table and performs no I/O.  Rules are keyed by (entity kind, action) so
// new entity types and actions register without touching call sites, and
// anything unregistered denies.
//
// Scoping is not a policy concern: an entity that is unreachable through
// the requested route (a comment fetched via the wrong post) must be
// handled as not-found by the repository before the engine is consulted.
package policy

import "github.com/iliyamo/blog-api/internal/auth"

// Action names an operation subject to authorization.
type Action string

const (
	ActionView   Action = "view"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entity is the minimal surface an entity exposes to the engine.
// model.Post and model.Comment satisfy it.
type Entity interface {
	Kind() string
	OwnerID() uint64
}

// Rule decides a single (kind, action) pair.
type Rule func(id auth.Identity, e Entity) bool

// Engine is a decision table over (entity kind, action).
type Engine struct {
	rules map[string]map[Action]Rule
}

// NewEngine returns an engine with an empty rule table.
func NewEngine() *Engine {
	return &Engine{rules: map[string]map[Action]Rule{}}
}

// Register installs a rule for the given kind and action, replacing any
// existing one.
func (e *Engine) Register(kind string, action Action, r Rule) {
	if e.rules[kind] == nil {
		e.rules[kind] = map[Action]Rule{}
	}
	e.rules[kind][action] = r
}

// Can evaluates the rule registered for the entity's kind and the action.
// A missing rule denies.
func (e *Engine) Can(id auth.Identity, action Action, entity Entity) bool {
	if entity == nil {
		return false
	}
	r, ok := e.rules[entity.Kind()][action]
	if !ok {
		return false
	}
	return r(id, entity)
}

// OwnerOnly allows the action only for the entity's author.
func OwnerOnly(id auth.Identity, e Entity) bool {
	return id.UserID != 0 && id.UserID == e.OwnerID()
}

// AnyAuthenticated allows the action for every resolved identity.  The
// gatekeeper rejects anonymous requests before policies run, so a zero
// identity here means a wiring bug and is denied.
func AnyAuthenticated(id auth.Identity, _ Entity) bool {
	return id.UserID != 0
}

// Default builds the blog's rule table: anyone authenticated may view a
// post or comment, only the author may update or delete it.
func Default() *Engine {
	e := NewEngine()
	for _, kind := range []string{"post", "comment"} {
		e.Register(kind, ActionView, AnyAuthenticated)
		e.Register(kind, ActionUpdate, OwnerOnly)
		e.Register(kind, ActionDelete, OwnerOnly)
	}
	return e
}
