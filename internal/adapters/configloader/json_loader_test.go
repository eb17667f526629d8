package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"transport-optimizer-service/internal/domain"
)

func writeTemplate(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "constraints.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	return path
}

func TestLoadBaseConstraints(t *testing.T) {
	path := writeTemplate(t, `{
		"warehouses": {
			"Warehouse_A": {"capacity": 100},
			"Warehouse_B": {"capacity": 80}
		},
		"customers": {
			"Customer_1": {"demand": 70},
			"Customer_2": {"demand": 60}
		}
	}`)

	loader, err := NewJSONConstraintLoader(path)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	cs, err := loader.LoadBaseConstraints(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cs.Capacities["Warehouse_A"] != 100 || cs.Capacities["Warehouse_B"] != 80 {
		t.Errorf("capacities = %v", cs.Capacities)
	}
	if cs.Demands["Customer_1"] != 70 || cs.Demands["Customer_2"] != 60 {
		t.Errorf("demands = %v", cs.Demands)
	}
}

func TestLoadBaseConstraintsMissingFile(t *testing.T) {
	loader, err := NewJSONConstraintLoader(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	_, err = loader.LoadBaseConstraints(context.Background())
	if !errors.Is(err, domain.ErrExternalSource) {
		t.Fatalf("expected ErrExternalSource, got %v", err)
	}
}

func TestLoadBaseConstraintsMalformed(t *testing.T) {
	path := writeTemplate(t, `{"warehouses": "oops"`)

	loader, err := NewJSONConstraintLoader(path)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	_, err = loader.LoadBaseConstraints(context.Background())
	if !errors.Is(err, domain.ErrExternalSource) {
		t.Fatalf("expected ErrExternalSource, got %v", err)
	}
}

func TestLoadBaseConstraintsNegativeCapacity(t *testing.T) {
	path := writeTemplate(t, `{
		"warehouses": {"Warehouse_A": {"capacity": -1}},
		"customers": {"Customer_1": {"demand": 70}}
	}`)

	loader, err := NewJSONConstraintLoader(path)
	if err != nil {
		t.Fatalf("new loader: %v", err)
	}

	_, err = loader.LoadBaseConstraints(context.Background())
	if !errors.Is(err, domain.ErrExternalSource) {
		t.Fatalf("expected ErrExternalSource, got %v", err)
	}
}
