package memory

import (
	"context"
	"testing"

	"github.com/omarshaarawi/sportify/internal/repository"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	if _, ok, err := repo.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}

	value := []byte("hello")
	if err := repo.Set(ctx, "greeting", value); err != nil {
		t.Fatalf("set: %v", err)
	}
	value[0] = 'j'

	got, ok, err := repo.Get(ctx, "greeting")
	if err != nil || !ok {
		t.Fatalf("expected key present, got ok=%v err=%v", ok, err)
	}
	if string(got) != "hello" {
		t.Errorf("stored value aliased caller slice: %q", got)
	}
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository()

	type record struct {
		Name string `json:"name"`
	}

	var out []record
	ok, err := repository.GetJSON(ctx, repo, "records", &out)
	if ok || err != nil {
		t.Fatalf("expected absent, got ok=%v err=%v", ok, err)
	}

	if err := repository.SetJSON(ctx, repo, "records", []record{{Name: "a"}}); err != nil {
		t.Fatalf("set json: %v", err)
	}
	ok, err = repository.GetJSON(ctx, repo, "records", &out)
	if !ok || err != nil || len(out) != 1 || out[0].Name != "a" {
		t.Fatalf("unexpected round trip: ok=%v err=%v out=%+v", ok, err, out)
	}

	_ = repo.Set(ctx, "broken", []byte("{"))
	if _, err := repository.GetJSON(ctx, repo, "broken", &out); err == nil {
		t.Error("expected decode error")
	}
}
