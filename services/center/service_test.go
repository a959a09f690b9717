package center_test

import (
	"errors"
	"testing"
	"time"

	"hemovida/models"
	"hemovida/services/center"
)

// memCenterRepo is an in-memory CenterRepository for tests.
type memCenterRepo struct {
	centers map[string]models.Center
}

func newMemCenterRepo(centers ...models.Center) *memCenterRepo {
	r := &memCenterRepo{centers: make(map[string]models.Center)}
	for _, c := range centers {
		r.centers[c.ID] = c
	}
	return r
}

func (r *memCenterRepo) GetByID(id string) (*models.Center, error) {
	c, ok := r.centers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *memCenterRepo) GetAll() ([]models.Center, error) {
	var out []models.Center
	for _, c := range r.centers {
		out = append(out, c)
	}
	return out, nil
}

func (r *memCenterRepo) Upsert(c *models.Center) error {
	r.centers[c.ID] = *c
	return nil
}

func newDirectory(centers ...models.Center) *center.DefaultDirectoryService {
	return &center.DefaultDirectoryService{
		Repo: newMemCenterRepo(centers...),
		Now:  func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) },
	}
}

func TestSlotsForDefaultTemplate(t *testing.T) {
	dir := newDirectory(models.Center{ID: "hc-campinas", Name: "Hemocentro Campinas"})

	slots, err := dir.SlotsFor("hc-campinas", "2024-06-10")
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots) != len(center.DefaultSlotTemplate) {
		t.Fatalf("got %d slots, want %d", len(slots), len(center.DefaultSlotTemplate))
	}
}

func TestSlotsForCustomTemplate(t *testing.T) {
	dir := newDirectory(models.Center{
		ID:           "hc-itapira",
		Name:         "Unidade Móvel",
		SlotTemplate: []string{"14:00", "14:30"},
	})

	slots, err := dir.SlotsFor("hc-itapira", "2024-06-10")
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if len(slots) != 2 || slots[0] != "14:00" {
		t.Fatalf("unexpected slots: %v", slots)
	}
}

func TestSlotsForOutsideWindow(t *testing.T) {
	dir := newDirectory(models.Center{ID: "hc-campinas"})

	cases := []struct {
		name string
		date string
	}{
		{"past date", "2024-05-31"},
		{"beyond window", "2024-09-02"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			slots, err := dir.SlotsFor("hc-campinas", tc.date)
			if err != nil {
				t.Fatalf("slots: %v", err)
			}
			if len(slots) != 0 {
				t.Fatalf("expected no slots, got %v", slots)
			}
		})
	}
}

func TestSlotsForInvalidDate(t *testing.T) {
	dir := newDirectory(models.Center{ID: "hc-campinas"})

	_, err := dir.SlotsFor("hc-campinas", "10/06/2024")
	var badDate *center.InvalidDateError
	if !errors.As(err, &badDate) {
		t.Fatalf("expected InvalidDateError, got %v", err)
	}
	if badDate.Date != "10/06/2024" {
		t.Fatalf("error carries %q", badDate.Date)
	}
}

func TestSlotsForUnknownCenter(t *testing.T) {
	dir := newDirectory()
	slots, err := dir.SlotsFor("hc-nowhere", "2024-06-10")
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	if slots != nil {
		t.Fatalf("expected nil slots, got %v", slots)
	}
}

func TestIsOffered(t *testing.T) {
	dir := newDirectory(models.Center{ID: "hc-campinas"})

	ok, err := dir.IsOffered("hc-campinas", "2024-06-10", "08:30")
	if err != nil || !ok {
		t.Fatalf("expected 08:30 offered, got ok=%v err=%v", ok, err)
	}
	ok, err = dir.IsOffered("hc-campinas", "2024-06-10", "13:00")
	if err != nil || ok {
		t.Fatalf("expected 13:00 not offered, got ok=%v err=%v", ok, err)
	}
}

func TestSeedDefaultCenters(t *testing.T) {
	repo := newMemCenterRepo()
	if err := center.SeedDefaultCenters(repo); err != nil {
		t.Fatalf("seed: %v", err)
	}
	all, _ := repo.GetAll()
	if len(all) != 3 {
		t.Fatalf("got %d centers, want 3", len(all))
	}
	// Seeding twice must not duplicate or overwrite.
	if err := center.SeedDefaultCenters(repo); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	all, _ = repo.GetAll()
	if len(all) != 3 {
		t.Fatalf("got %d centers after reseed, want 3", len(all))
	}
}
