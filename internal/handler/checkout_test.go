package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
	"github.com/AxelBuee/TestLibBackendShadow/internal/testutil"
)

// seedLendingScenario inserts one author, one book, one copy and one member
// ready to check the copy out.
func seedLendingScenario(t *testing.T, db *gorm.DB) (model.Copy, model.Member) {
	t.Helper()

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	copyItem := testutil.SeedCopy(t, db, book.ID, "0100101010", true)
	member := testutil.SeedMember(t, db, "Jane", testutil.Date(2030, time.January, 1))
	return copyItem, member
}

func checkoutPayload(memberID, copyID int64) map[string]any {
	return map[string]any{
		"checkout_date":        "2024-03-10",
		"expected_return_date": "2024-03-15",
		"member_id":            memberID,
		"copy_id":              copyID,
	}
}

func copyAvailability(t *testing.T, db *gorm.DB, copyID int64) bool {
	t.Helper()

	var copyItem model.Copy
	if err := db.First(&copyItem, "id = ?", copyID).Error; err != nil {
		t.Fatalf("failed to fetch copy: %v", err)
	}
	return copyItem.IsAvailable
}

func checkoutCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	if err := db.Model(&model.Checkout{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count checkouts: %v", err)
	}
	return count
}

func TestCreateCheckout_FlipsCopyUnavailable(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	copyItem, member := seedLendingScenario(t, db)

	w := doJSON(t, router, http.MethodPost, "/checkout/", checkoutPayload(member.ID, copyItem.ID))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[CheckoutRead](t, w)
	if resp.ID == 0 {
		t.Errorf("expected an assigned id")
	}
	if resp.MemberID != member.ID || resp.CopyID != copyItem.ID {
		t.Errorf("unexpected ids: member %d copy %d", resp.MemberID, resp.CopyID)
	}
	if resp.ReturnedDate != nil {
		t.Errorf("expected returned_date to be null")
	}
	if copyAvailability(t, db, copyItem.ID) {
		t.Errorf("expected copy to be unavailable after checkout")
	}
}

func TestCreateCheckout_CopyNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	member := testutil.SeedMember(t, db, "Jane", testutil.Date(2030, time.January, 1))

	w := doJSON(t, router, http.MethodPost, "/checkout/", checkoutPayload(member.ID, 999))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[map[string]string](t, w)
	if resp["detail"] != "Copy id 999 not found" {
		t.Errorf("unexpected detail: %q", resp["detail"])
	}
}

func TestCreateCheckout_CopyUnavailable(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	copyItem := testutil.SeedCopy(t, db, book.ID, "0100101010", false)
	member := testutil.SeedMember(t, db, "Jane", testutil.Date(2030, time.January, 1))

	w := doJSON(t, router, http.MethodPost, "/checkout/", checkoutPayload(member.ID, copyItem.ID))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[map[string]string](t, w)
	want := fmt.Sprintf("Copy id %d is not available", copyItem.ID)
	if resp["detail"] != want {
		t.Errorf("unexpected detail: %q", resp["detail"])
	}
	if got := checkoutCount(t, db); got != 0 {
		t.Errorf("expected no checkout rows, got %d", got)
	}
}

func TestCreateCheckout_MemberNotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	copyItem := testutil.SeedCopy(t, db, book.ID, "0100101010", true)

	w := doJSON(t, router, http.MethodPost, "/checkout/", checkoutPayload(999, copyItem.ID))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[map[string]string](t, w)
	if resp["detail"] != "Member id 999 not found" {
		t.Errorf("unexpected detail: %q", resp["detail"])
	}
	if copyAvailability(t, db, copyItem.ID) != true {
		t.Errorf("expected copy to stay available")
	}
}

func TestCreateCheckout_ExpiredMembership(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	copyItem := testutil.SeedCopy(t, db, book.ID, "0100101010", true)
	member := testutil.SeedMember(t, db, "John", testutil.Date(2022, time.January, 1))

	w := doJSON(t, router, http.MethodPost, "/checkout/", checkoutPayload(member.ID, copyItem.ID))

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[map[string]string](t, w)
	want := fmt.Sprintf("Member id %d membership expired", member.ID)
	if resp["detail"] != want {
		t.Errorf("unexpected detail: %q", resp["detail"])
	}
	if got := checkoutCount(t, db); got != 0 {
		t.Errorf("expected no checkout rows, got %d", got)
	}
	if !copyAvailability(t, db, copyItem.ID) {
		t.Errorf("expected copy to stay available")
	}
}

func TestCreateCheckout_MissingFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodPost, "/checkout/", map[string]any{"member_id": 1})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestGetCheckout_WithDetails(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	copyItem := testutil.SeedCopy(t, db, book.ID, "0100101010", false)
	member := testutil.SeedMember(t, db, "Jane", testutil.Date(2030, time.January, 1))
	checkout := testutil.SeedCheckout(t, db, member.ID, copyItem.ID, nil)

	w := doJSON(t, router, http.MethodGet, fmt.Sprintf("/checkout/%d", checkout.ID), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[CheckoutReadWithDetails](t, w)
	if resp.CurrentOwner.ID != member.ID {
		t.Errorf("expected current_owner id %d, got %d", member.ID, resp.CurrentOwner.ID)
	}
	if resp.CurrentOwner.FirstName != "Jane" {
		t.Errorf("expected current_owner Jane, got %s", resp.CurrentOwner.FirstName)
	}
	if resp.CopyItem.ID != copyItem.ID {
		t.Errorf("expected copy_item id %d, got %d", copyItem.ID, resp.CopyItem.ID)
	}
	if resp.CopyItem.Barcode != "0100101010" {
		t.Errorf("expected copy_item barcode 0100101010, got %s", resp.CopyItem.Barcode)
	}
}

func TestGetCheckout_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	w := doJSON(t, router, http.MethodGet, "/checkout/999", nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[map[string]string](t, w)
	if resp["detail"] != "Checkout id 999 not found" {
		t.Errorf("unexpected detail: %q", resp["detail"])
	}
}

func TestUpdateCheckout_ReturnFlipsCopyAvailable(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	copyItem, member := seedLendingScenario(t, db)

	w := doJSON(t, router, http.MethodPost, "/checkout/", checkoutPayload(member.ID, copyItem.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("checkout failed: %d, body=%s", w.Code, w.Body.String())
	}
	checkout := decodeJSON[CheckoutRead](t, w)

	if copyAvailability(t, db, copyItem.ID) {
		t.Fatalf("expected copy to be unavailable while checked out")
	}

	payload := map[string]any{"returned_date": "2024-03-14"}
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/checkout/%d", checkout.ID), payload)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[CheckoutRead](t, w)
	if resp.ReturnedDate == nil {
		t.Fatalf("expected returned_date to be set")
	}
	if got := resp.ReturnedDate.Format("2006-01-02"); got != "2024-03-14" {
		t.Errorf("expected returned_date 2024-03-14, got %s", got)
	}
	if !copyAvailability(t, db, copyItem.ID) {
		t.Errorf("expected copy to be available after return")
	}
}

func TestUpdateCheckout_WithoutReturnedDateLeavesCopy(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	copyItem, member := seedLendingScenario(t, db)

	w := doJSON(t, router, http.MethodPost, "/checkout/", checkoutPayload(member.ID, copyItem.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("checkout failed: %d, body=%s", w.Code, w.Body.String())
	}
	checkout := decodeJSON[CheckoutRead](t, w)

	payload := map[string]any{"expected_return_date": "2024-03-20"}
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/checkout/%d", checkout.ID), payload)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[CheckoutRead](t, w)
	if got := resp.ExpectedReturnDate.Format("2006-01-02"); got != "2024-03-20" {
		t.Errorf("expected expected_return_date 2024-03-20, got %s", got)
	}
	if resp.ReturnedDate != nil {
		t.Errorf("expected returned_date to stay null")
	}
	if copyAvailability(t, db, copyItem.ID) {
		t.Errorf("expected copy to stay unavailable")
	}
}

func TestUpdateCheckout_FutureReturnedDateKeepsCopyUnavailable(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	copyItem, member := seedLendingScenario(t, db)

	w := doJSON(t, router, http.MethodPost, "/checkout/", checkoutPayload(member.ID, copyItem.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("checkout failed: %d, body=%s", w.Code, w.Body.String())
	}
	checkout := decodeJSON[CheckoutRead](t, w)

	future := time.Now().UTC().AddDate(0, 0, 7).Format("2006-01-02")
	payload := map[string]any{"returned_date": future}
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/checkout/%d", checkout.ID), payload)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[CheckoutRead](t, w)
	if resp.ReturnedDate == nil {
		t.Fatalf("expected returned_date to be recorded")
	}
	if copyAvailability(t, db, copyItem.ID) {
		t.Errorf("expected copy to stay unavailable until the return date passes")
	}
}

func TestUpdateCheckout_NullReturnedDateClears(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	copyItem := testutil.SeedCopy(t, db, book.ID, "0100101010", true)
	member := testutil.SeedMember(t, db, "Jane", testutil.Date(2030, time.January, 1))
	returned := testutil.Date(2024, time.March, 14)
	checkout := testutil.SeedCheckout(t, db, member.ID, copyItem.ID, &returned)

	payload := map[string]any{"returned_date": nil}
	w := doJSON(t, router, http.MethodPut, fmt.Sprintf("/checkout/%d", checkout.ID), payload)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[CheckoutRead](t, w)
	if resp.ReturnedDate != nil {
		t.Errorf("expected explicit null to clear returned_date")
	}

	var stored model.Checkout
	if err := db.First(&stored, "id = ?", checkout.ID).Error; err != nil {
		t.Fatalf("expected checkout in db, got error: %v", err)
	}
	if stored.ReturnedDate != nil {
		t.Errorf("expected cleared returned_date in db, got %v", stored.ReturnedDate)
	}
	if !copyAvailability(t, db, copyItem.ID) {
		t.Errorf("expected clearing returned_date to leave the copy untouched")
	}
}

func TestCheckoutRoundTrip_CopyCanBeCheckedOutAgain(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	copyItem, member := seedLendingScenario(t, db)

	w := doJSON(t, router, http.MethodPost, "/checkout/", checkoutPayload(member.ID, copyItem.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("first checkout failed: %d, body=%s", w.Code, w.Body.String())
	}
	first := decodeJSON[CheckoutRead](t, w)

	w = doJSON(t, router, http.MethodPost, "/checkout/", checkoutPayload(member.ID, copyItem.ID))
	if w.Code != http.StatusConflict {
		t.Fatalf("expected second checkout to get 409, got %d", w.Code)
	}

	payload := map[string]any{"returned_date": "2024-03-14"}
	w = doJSON(t, router, http.MethodPut, fmt.Sprintf("/checkout/%d", first.ID), payload)
	if w.Code != http.StatusOK {
		t.Fatalf("return failed: %d, body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/checkout/", checkoutPayload(member.ID, copyItem.ID))
	if w.Code != http.StatusOK {
		t.Fatalf("expected returned copy to be checked out again, got %d, body=%s", w.Code, w.Body.String())
	}

	if got := checkoutCount(t, db); got != 2 {
		t.Errorf("expected 2 checkout rows, got %d", got)
	}
}

func TestDeleteCheckout_NotReturnedBlocked(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	copyItem := testutil.SeedCopy(t, db, book.ID, "0100101010", false)
	member := testutil.SeedMember(t, db, "Jane", testutil.Date(2030, time.January, 1))
	checkout := testutil.SeedCheckout(t, db, member.ID, copyItem.ID, nil)

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/checkout/%d", checkout.ID), nil)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[map[string]string](t, w)
	want := fmt.Sprintf(
		"Checkout id %d is not returned. Please make sure the book was returned before deleting the checkout",
		checkout.ID)
	if resp["detail"] != want {
		t.Errorf("unexpected detail: %q", resp["detail"])
	}
	if got := checkoutCount(t, db); got != 1 {
		t.Errorf("expected checkout to survive, got %d rows", got)
	}
}

func TestDeleteCheckout_ReturnedSucceeds(t *testing.T) {
	db := testutil.NewTestDB(t)
	router := setupTestRouter(db)

	orwell := testutil.SeedAuthor(t, db, "George", "Orwell")
	book := testutil.SeedBook(t, db, "Deadpond", "000-0000000000", orwell)
	copyItem := testutil.SeedCopy(t, db, book.ID, "0100101010", true)
	member := testutil.SeedMember(t, db, "Jane", testutil.Date(2030, time.January, 1))
	returned := testutil.Date(2024, time.March, 14)
	checkout := testutil.SeedCheckout(t, db, member.ID, copyItem.ID, &returned)

	w := doJSON(t, router, http.MethodDelete, fmt.Sprintf("/checkout/%d", checkout.ID), nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d, body=%s", w.Code, w.Body.String())
	}

	resp := decodeJSON[map[string]string](t, w)
	want := fmt.Sprintf("Checkout id %d deleted successfully", checkout.ID)
	if resp["message"] != want {
		t.Errorf("unexpected message: %q", resp["message"])
	}
	if got := checkoutCount(t, db); got != 0 {
		t.Errorf("expected no checkout rows, got %d", got)
	}
}
