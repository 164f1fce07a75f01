package policy

import (
	"testing"

	"github.com/iliyamo/blog-api/internal/auth"
	"github.com/iliyamo/blog-api/internal/model"
)

func TestOwnerMayUpdateAndDelete(t *testing.T) {
	engine := Default()
	owner := auth.Identity{UserID: 1}
	post := model.Post{ID: 10, UserID: 1}

	if !engine.Can(owner, ActionUpdate, post) {
		t.Error("owner denied update on own post")
	}
	if !engine.Can(owner, ActionDelete, post) {
		t.Error("owner denied delete on own post")
	}
}

func TestNonOwnerDenied(t *testing.T) {
	engine := Default()
	stranger := auth.Identity{UserID: 2}

	post := model.Post{ID: 10, UserID: 1}
	comment := model.Comment{ID: 5, PostID: 10, UserID: 1}

	for _, action := range []Action{ActionUpdate, ActionDelete} {
		if engine.Can(stranger, action, post) {
			t.Errorf("non-owner allowed %s on post", action)
		}
		if engine.Can(stranger, action, comment) {
			t.Errorf("non-owner allowed %s on comment", action)
		}
	}
}

func TestAnyAuthenticatedMayView(t *testing.T) {
	engine := Default()
	stranger := auth.Identity{UserID: 2}

	if !engine.Can(stranger, ActionView, model.Post{ID: 10, UserID: 1}) {
		t.Error("authenticated user denied view on post")
	}
	if !engine.Can(stranger, ActionView, model.Comment{ID: 5, PostID: 10, UserID: 1}) {
		t.Error("authenticated user denied view on comment")
	}
}

func TestZeroIdentityDenied(t *testing.T) {
	engine := Default()
	nobody := auth.Identity{}

	if engine.Can(nobody, ActionView, model.Post{ID: 10, UserID: 1}) {
		t.Error("zero identity allowed view")
	}
	if engine.Can(nobody, ActionUpdate, model.Post{ID: 10}) {
		t.Error("zero identity allowed update on ownerless row")
	}
}

func TestUnregisteredKindDenied(t *testing.T) {
	engine := Default()
	if engine.Can(auth.Identity{UserID: 1}, ActionView, fakeEntity{}) {
		t.Error("unregistered entity kind must deny")
	}
	if engine.Can(auth.Identity{UserID: 1}, Action("publish"), model.Post{UserID: 1}) {
		t.Error("unregistered action must deny")
	}
}

func TestRegisterPlugsInNewRule(t *testing.T) {
	engine := Default()
	engine.Register("attachment", ActionDelete, OwnerOnly)

	if !engine.Can(auth.Identity{UserID: 3}, ActionDelete, fakeEntity{kind: "attachment", owner: 3}) {
		t.Error("registered rule for new kind not applied")
	}
	if engine.Can(auth.Identity{UserID: 4}, ActionDelete, fakeEntity{kind: "attachment", owner: 3}) {
		t.Error("owner-only rule allowed a non-owner")
	}
}

func TestNilEntityDenied(t *testing.T) {
	if Default().Can(auth.Identity{UserID: 1}, ActionView, nil) {
		t.Error("nil entity must deny")
	}
}

type fakeEntity struct {
	kind  string
	owner uint64
}

func (f fakeEntity) Kind() string    { return f.kind }
func (f fakeEntity) OwnerID() uint64 { return f.owner }
