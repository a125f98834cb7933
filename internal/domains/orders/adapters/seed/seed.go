// Package seed loads order collections from YAML files.
package seed

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/Apurer/order-board/internal/domains/orders/domain"
	"github.com/Apurer/order-board/internal/domains/orders/ports"
)

//go:embed seed.yaml
var defaultSeed []byte

// File is the on-disk seed layout.
type File struct {
	Orders []Record `yaml:"orders"`
}

// Record is one seeded order. Price and LastUpdated stay textual so that
// YAML never rounds a price through float64.
type Record struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Price       string `yaml:"price"`
	Quantity    int    `yaml:"quantity"`
	Status      string `yaml:"status"`
	LastUpdated string `yaml:"lastUpdated"`
}

// Default returns the built-in collection.
func Default() ([]domain.Order, error) {
	return Load(bytes.NewReader(defaultSeed))
}

// LoadFile reads a seed file from disk.
func LoadFile(path string) ([]domain.Order, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// LoadFileOrDefault reads path, or the built-in collection when path is blank.
func LoadFileOrDefault(path string) ([]domain.Order, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	return LoadFile(path)
}

// Load decodes and validates a seed document. Records without an id get a
// random UUID; duplicate ids are rejected.
func Load(r io.Reader) ([]domain.Order, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	orders := make([]domain.Order, 0, len(file.Orders))
	seen := make(map[string]struct{}, len(file.Orders))
	for i, rec := range file.Orders {
		order, err := rec.toDomain()
		if err != nil {
			return nil, fmt.Errorf("seed record %d: %w", i, err)
		}
		if _, dup := seen[order.ID]; dup {
			return nil, fmt.Errorf("seed record %d: duplicate id %q", i, order.ID)
		}
		seen[order.ID] = struct{}{}
		orders = append(orders, order)
	}
	return orders, nil
}

// Apply saves orders into repo in slice order and returns how many were written.
func Apply(ctx context.Context, repo ports.Repository, orders []domain.Order) (int, error) {
	for i, order := range orders {
		if _, err := repo.Save(ctx, order); err != nil {
			return i, fmt.Errorf("save order %s: %w", order.ID, err)
		}
	}
	return len(orders), nil
}

func (r Record) toDomain() (domain.Order, error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		id = uuid.NewString()
	}
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return domain.Order{}, fmt.Errorf("price %q: %w", r.Price, err)
	}
	status, err := domain.ParseStatus(r.Status)
	if err != nil {
		return domain.Order{}, err
	}
	lastUpdated, err := domain.ParseDate(r.LastUpdated)
	if err != nil {
		return domain.Order{}, err
	}
	return domain.NewOrder(id, r.Name, r.Category, price, r.Quantity, status, lastUpdated)
}
