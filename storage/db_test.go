package storage

import (
	"path/filepath"
	"testing"

	"github.com/beleglab/bonscan"
	"github.com/beleglab/bonscan/model"
)

func testResult() *bonscan.Result {
	conf := 0.97
	return &bonscan.Result{
		Items: []model.Item{
			{
				RowIndex: 2,
				Name:     "Milch 1,5%",
				NameBox:  model.Box{X1: 10, Y1: 100, X2: 180, Y2: 120},
				Price: model.Price{
					Raw:      "1,19",
					Value:    1.19,
					Currency: "EUR",
					VatTag:   model.VatB,
				},
				PriceBox:   model.Box{X1: 300, Y1: 100, X2: 340, Y2: 120},
				Confidence: &conf,
			},
			{
				RowIndex: 3,
				Name:     "Butter",
				NameBox:  model.Box{X1: 10, Y1: 130, X2: 90, Y2: 150},
				Price: model.Price{
					Raw:      "2,49",
					Value:    2.49,
					Currency: "EUR",
					VatTag:   model.VatA,
				},
				PriceBox: model.Box{X1: 300, Y1: 130, X2: 340, Y2: 150},
			},
		},
		ItemCount: 2,
		Text:      "Milch 1,5%\n1,19 B\nButter\n2,49 A",
		Meta: bonscan.Meta{
			Source:     "receipt.jpg",
			TokenCount: 6,
		},
	}
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndGetRun(t *testing.T) {
	db := openTestDB(t)

	runID, err := db.SaveRun(testResult())
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if runID == 0 {
		t.Fatal("expected non-zero run id")
	}

	run, err := db.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Source != "receipt.jpg" {
		t.Errorf("source = %q; want receipt.jpg", run.Source)
	}
	if run.TokenCount != 6 {
		t.Errorf("tokenCount = %d; want 6", run.TokenCount)
	}
	if run.ItemCount != 2 {
		t.Errorf("itemCount = %d; want 2", run.ItemCount)
	}
	if run.ScannedAt == "" {
		t.Error("expected scannedAt to be set")
	}
}

func TestGetRun_NotFound(t *testing.T) {
	db := openTestDB(t)

	if _, err := db.GetRun(999); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestItemsForRun_RoundTrip(t *testing.T) {
	db := openTestDB(t)

	want := testResult()
	runID, err := db.SaveRun(want)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	items, err := db.ItemsForRun(runID)
	if err != nil {
		t.Fatalf("ItemsForRun: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items; want 2", len(items))
	}

	first := items[0]
	if first.Name != "Milch 1,5%" {
		t.Errorf("name = %q; want Milch 1,5%%", first.Name)
	}
	if first.Price.Value != 1.19 || first.Price.VatTag != model.VatB {
		t.Errorf("price = %+v; want 1.19 B", first.Price)
	}
	if first.NameBox != want.Items[0].NameBox {
		t.Errorf("nameBox = %+v; want %+v", first.NameBox, want.Items[0].NameBox)
	}
	if first.Confidence == nil || *first.Confidence != 0.97 {
		t.Errorf("confidence = %v; want 0.97", first.Confidence)
	}

	second := items[1]
	if second.Confidence != nil {
		t.Errorf("confidence = %v; want nil", second.Confidence)
	}
}

func TestListRuns(t *testing.T) {
	db := openTestDB(t)

	for i := 0; i < 3; i++ {
		if _, err := db.SaveRun(testResult()); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	runs, err := db.ListRuns(2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs; want 2", len(runs))
	}
	if runs[0].ID < runs[1].ID {
		t.Error("expected newest run first")
	}

	all, err := db.ListRuns(0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("got %d runs; want 3", len(all))
	}
}
