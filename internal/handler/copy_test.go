package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
	"github.com/AxelBuee/TestLibBackendShadow/internal/testutil"
)

func TestCreateCopy_Success(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)

	payload := map[string]any{
		"barcode":      "0100101010",
		"location":     "Shelf 1",
		"is_available": true,
		"book_id":      book.ID,
	}

	w := doJSON(t, router, http.MethodPost, "/copy/", payload)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[CopyRead](t, w)
	if resp.ID == 0 {
		t.Errorf("expected an assigned id")
	}
	if !resp.IsAvailable {
		t.Errorf("expected copy to be available")
	}
	if resp.BookID != book.ID {
		t.Errorf("expected book_id %d, got %d", book.ID, resp.BookID)
	}
}

func TestCreateCopy_BookNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	payload := map[string]any{
		"barcode":      "0100101010",
		"location":     "Shelf 1",
		"is_available": true,
		"book_id":      999,
	}

	w := doJSON(t, router, http.MethodPost, "/copy/", payload)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[map[string]string](t, w)
	if resp["detail"] != "Book id 999 not found" {
		t.Errorf("unexpected detail: %q", resp["detail"])
	}
}

func TestCreateCopy_FalseAvailabilityAccepted(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)

	payload := map[string]any{
		"barcode":      "0100101010",
		"location":     "Shelf 1",
		"is_available": false,
		"book_id":      book.ID,
	}

	w := doJSON(t, router, http.MethodPost, "/copy/", payload)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[CopyRead](t, w)
	if resp.IsAvailable {
		t.Errorf("expected copy to be unavailable")
	}
}

func TestCreateCopy_DuplicateBarcode(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	testutil.SeedCopy(t, db, book.ID, "0100101010", true)

	payload := map[string]any{
		"barcode":      "0100101010",
		"location":     "Shelf 2",
		"is_available": true,
		"book_id":      book.ID,
	}

	w := doJSON(t, router, http.MethodPost, "/copy/", payload)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestGetCopy_WithCheckouts(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	copyItem := testutil.SeedCopy(t, db, book.ID, "0100101010", false)
	member := testutil.SeedMember(t, db, "Jane", testutil.Date(2030, time.January, 1))
	checkout := testutil.SeedCheckout(t, db, member.ID, copyItem.ID, nil)

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/copy/%d", copyItem.ID), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[CopyReadWithCheckouts](t, w)
	if len(resp.Checkouts) != 1 {
		t.Fatalf("expected 1 checkout, got %d", len(resp.Checkouts))
	}
	if resp.Checkouts[0].ID != checkout.ID {
		t.Errorf("expected checkout id %d, got %d", checkout.ID, resp.Checkouts[0].ID)
	}
	if resp.Checkouts[0].ReturnedDate != nil {
		t.Errorf("expected returned_date to be null")
	}
}

func TestUpdateCopy_PartialFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	copyItem := testutil.SeedCopy(t, db, book.ID, "0100101010", true)

	payload := map[string]any{"location": "Shelf 40"}

	w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/copy/%d", copyItem.ID), payload)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[CopyRead](t, w)
	if resp.Location != "Shelf 40" {
		t.Errorf("expected location Shelf 40, got %s", resp.Location)
	}
	if resp.Barcode != copyItem.Barcode {
		t.Errorf("expected barcode untouched, got %s", resp.Barcode)
	}

	var stored model.Copy
	if err := db.First(&stored, "id = ?", copyItem.ID).Error; err != nil {
		t.Fatalf("expected copy in db, got error: %v", err)
	}
	if !stored.IsAvailable {
		t.Errorf("expected availability untouched")
	}
}

func TestDeleteCopy_ThenGone(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	copyItem := testutil.SeedCopy(t, db, book.ID, "0100101010", true)

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/copy/%d", copyItem.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, fmt.Sprintf("/copy/%d", copyItem.ID), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", w.Code)
	}
}

func TestDeleteCopy_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodDelete, "/copy/123", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
	}
}
