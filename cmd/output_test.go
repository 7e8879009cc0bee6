package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lightbnb/models"
)

func TestReadNewProperty(t *testing.T) {
	doc := `
owner_id: 4
title: "Bob's Place"
description: cozy
thumbnail_photo_url: https://img.example/thumb.jpg
cover_photo_url: https://img.example/cover.jpg
cost_per_night: 12500
parking_spaces: 1
number_of_bathrooms: 2
number_of_bedrooms: 3
country: Canada
street: 123 Main St
city: Vancouver
province: BC
post_code: V5K 0A1
`
	p, err := readNewProperty(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("readNewProperty failed: %v", err)
	}
	if p.OwnerID != 4 || p.Title != "Bob's Place" || p.CostPerNight != 12500 || p.PostCode != "V5K 0A1" {
		t.Fatalf("unexpected property %+v", p)
	}
}

func TestReadNewProperty_UnknownField(t *testing.T) {
	if _, err := readNewProperty(strings.NewReader("titel: typo\n")); err == nil {
		t.Fatalf("expected error for unknown field")
	}
}

func TestLoadNewProperty_MissingFile(t *testing.T) {
	if _, err := loadNewProperty(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestLoadNewProperty_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "property.yaml")
	if err := os.WriteFile(path, []byte("owner_id: 2\ntitle: Loft\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	p, err := loadNewProperty(path)
	if err != nil {
		t.Fatalf("loadNewProperty failed: %v", err)
	}
	if p.OwnerID != 2 || p.Title != "Loft" {
		t.Fatalf("unexpected property %+v", p)
	}
}

func TestPrintJSON_HidesPassword(t *testing.T) {
	var buf bytes.Buffer
	u := &models.User{ID: 1, Name: "Alice", Email: "alice@example.com", Password: "$2a$10$secret"}
	if err := printJSON(&buf, u); err != nil {
		t.Fatalf("printJSON failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "secret") {
		t.Fatalf("password hash leaked: %s", out)
	}
	if !strings.Contains(out, `"email": "alice@example.com"`) {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestPrintJSON_NilUser(t *testing.T) {
	var buf bytes.Buffer
	var u *models.User
	if err := printJSON(&buf, u); err != nil {
		t.Fatalf("printJSON failed: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "null" {
		t.Fatalf("expected null, got %q", buf.String())
	}
}
