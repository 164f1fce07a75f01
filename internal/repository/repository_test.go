package repository

import "testing"

func TestConstructors(t *testing.T) {
	if NewUserRepo(nil) == nil || NewPostRepo(nil) == nil || NewCommentRepo(nil) == nil {
		t.Fatal("expected non-nil repositories")
	}
}

func TestErrEmailExists(t *testing.T) {
	if ErrEmailExists == nil {
		t.Fatal("ErrEmailExists should not be nil")
	}
	if ErrEmailExists.Error() != "email already exists" {
		t.Fatalf("unexpected error message: %s", ErrEmailExists.Error())
	}
}
