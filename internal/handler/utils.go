package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AxelBuee/TestLibBackendShadow/internal/model"
)

func writeError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func notFound(c *gin.Context, entity string, id int64) {
	writeError(c, http.StatusNotFound, fmt.Sprintf("%s id %d not found", entity, id))
}

func deletedMessage(c *gin.Context, entity string, id int64) {
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s id %d deleted successfully", entity, id),
	})
}

func parseIDParam(c *gin.Context, entity string) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(c, http.StatusUnprocessableEntity, fmt.Sprintf("invalid %s id", entity))
		return 0, false
	}
	return id, true
}

// today is the current date truncated to midnight UTC, the reference point
// for membership expiration and return-date checks.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func toAuthorRead(a model.Author) AuthorRead {
	return AuthorRead{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DateOfBirth: model.NewDate(a.DateOfBirth),
		DateOfDeath: model.NewDatePtr(a.DateOfDeath),
		Nationality: a.Nationality,
	}
}

func toAuthorReadWithBooks(a model.Author) AuthorReadWithBooks {
	books := make([]BookRead, 0, len(a.Books))
	for _, b := range a.Books {
		books = append(books, toBookRead(b))
	}
	return AuthorReadWithBooks{
		AuthorRead: toAuthorRead(a),
		Books:      books,
	}
}

func toBookRead(b model.Book) BookRead {
	return BookRead{
		ID:              b.ID,
		Title:           b.Title,
		ISBN:            b.ISBN,
		Edition:         b.Edition,
		PublicationDate: model.NewDate(b.PublicationDate),
		Language:        b.Language,
	}
}

func toBookReadWithAuthors(b model.Book) BookReadWithAuthors {
	authors := make([]AuthorRead, 0, len(b.Authors))
	for _, a := range b.Authors {
		authors = append(authors, toAuthorRead(a))
	}
	copies := make([]CopyRead, 0, len(b.Copies))
	for _, cp := range b.Copies {
		copies = append(copies, toCopyRead(cp))
	}
	return BookReadWithAuthors{
		BookRead: toBookRead(b),
		Copies:   copies,
		Authors:  authors,
	}
}

func toCopyRead(cp model.Copy) CopyRead {
	return CopyRead{
		ID:          cp.ID,
		Barcode:     cp.Barcode,
		Location:    cp.Location,
		IsAvailable: cp.IsAvailable,
		BookID:      cp.BookID,
	}
}

func toCopyReadWithCheckouts(cp model.Copy) CopyReadWithCheckouts {
	checkouts := make([]CheckoutRead, 0, len(cp.Checkouts))
	for _, co := range cp.Checkouts {
		checkouts = append(checkouts, toCheckoutRead(co))
	}
	return CopyReadWithCheckouts{
		CopyRead:  toCopyRead(cp),
		Checkouts: checkouts,
	}
}

func toMemberRead(m model.Member) MemberRead {
	return MemberRead{
		ID:                   m.ID,
		Auth0ID:              m.Auth0ID,
		FirstName:            m.FirstName,
		LastName:             m.LastName,
		Age:                  m.Age,
		Birthdate:            model.NewDate(m.Birthdate),
		City:                 m.City,
		MembershipExpiration: model.NewDate(m.MembershipExpiration),
	}
}

func toMemberReadWithCheckouts(m model.Member) MemberReadWithCheckouts {
	checkouts := make([]CheckoutRead, 0, len(m.Checkouts))
	for _, co := range m.Checkouts {
		checkouts = append(checkouts, toCheckoutRead(co))
	}
	return MemberReadWithCheckouts{
		MemberRead:      toMemberRead(m),
		MemberCheckouts: checkouts,
	}
}

func toCheckoutRead(co model.Checkout) CheckoutRead {
	return CheckoutRead{
		ID:                 co.ID,
		CheckoutDate:       model.NewDate(co.CheckoutDate),
		ExpectedReturnDate: model.NewDate(co.ExpectedReturnDate),
		ReturnedDate:       model.NewDatePtr(co.ReturnedDate),
		MemberID:           co.MemberID,
		CopyID:             co.CopyID,
	}
}

func toCheckoutReadWithDetails(co model.Checkout) CheckoutReadWithDetails {
	return CheckoutReadWithDetails{
		CheckoutRead: toCheckoutRead(co),
		CurrentOwner: toMemberRead(co.Member),
		CopyItem:     toCopyRead(co.Copy),
	}
}
