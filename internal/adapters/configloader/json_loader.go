package configloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"transport-optimizer-service/internal/domain"
)

// JSONConstraintLoader implements the ConstraintLoader port from a JSON
// template document:
//
//	{
//	  "warehouses": {"Warehouse_A": {"capacity": 100}},
//	  "customers":  {"Customer_1": {"demand": 70}}
//	}
type JSONConstraintLoader struct {
	Path string
}

func NewJSONConstraintLoader(path string) (*JSONConstraintLoader, error) {
	if path == "" {
		return nil, errors.New("constraint template path is empty")
	}
	return &JSONConstraintLoader{Path: path}, nil
}

type warehouseEntry struct {
	Capacity float64 `json:"capacity"`
}

type customerEntry struct {
	Demand float64 `json:"demand"`
}

type constraintsDoc struct {
	Warehouses map[string]warehouseEntry `json:"warehouses"`
	Customers  map[string]customerEntry  `json:"customers"`
}

func (l *JSONConstraintLoader) LoadBaseConstraints(ctx context.Context) (domain.Constraints, error) {
	bytes, err := os.ReadFile(l.Path)
	if err != nil {
		return domain.Constraints{}, fmt.Errorf("%w: read constraint template %q: %v", domain.ErrExternalSource, l.Path, err)
	}

	var doc constraintsDoc
	if err := json.Unmarshal(bytes, &doc); err != nil {
		return domain.Constraints{}, fmt.Errorf("%w: parse constraint template %q: %v", domain.ErrExternalSource, l.Path, err)
	}

	cs := domain.Constraints{
		Capacities: make(map[string]float64, len(doc.Warehouses)),
		Demands:    make(map[string]float64, len(doc.Customers)),
	}
	for name, entry := range doc.Warehouses {
		cs.Capacities[name] = entry.Capacity
	}
	for name, entry := range doc.Customers {
		cs.Demands[name] = entry.Demand
	}

	if err := cs.Validate(); err != nil {
		return domain.Constraints{}, fmt.Errorf("%w: constraint template %q: %v", domain.ErrExternalSource, l.Path, err)
	}

	return cs, nil
}
