package areas

import (
	"context"
	"testing"

	"github.com/ascendapp/ascend/internal/app/domain/area"
	"github.com/ascendapp/ascend/internal/app/storage/memory"
)

func TestListMergesCustomAreas(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)
	ctx := context.Background()

	if _, err := svc.CreateCustom(ctx, area.CustomArea{Name: "Gardening", Color: "from-lime-500 to-green-500"}); err != nil {
		t.Fatalf("create custom area: %v", err)
	}

	defs, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list areas: %v", err)
	}
	if len(defs) != len(area.Defaults())+1 {
		t.Fatalf("areas = %d, want defaults plus one custom", len(defs))
	}

	reg, err := svc.Registry(ctx)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if !reg.Known("gardening") {
		t.Fatal("custom area not resolvable by value")
	}
}

func TestCreateCustomRequiresName(t *testing.T) {
	store := memory.New()
	svc := New(store, store, nil)

	if _, err := svc.CreateCustom(context.Background(), area.CustomArea{}); err == nil {
		t.Fatal("expected error for missing name")
	}
}
