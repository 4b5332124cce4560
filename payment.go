package main

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"time"

	"gjl/models"
	"gjl/pkg/gateway"

	"github.com/gin-gonic/gin"
)

var billing *gateway.Client

func initGateway() {
	key := os.Getenv("GATEWAY_API_KEY")
	if key == "" {
		log.Println("GATEWAY_API_KEY not set; online dues payment is disabled")
		return
	}
	base := os.Getenv("GATEWAY_BASE_URL")
	if base == "" {
		base = "https://api.mayar.id/hl/v1"
	}
	billing = gateway.New(base, key)
}

// monthNames maps a month number to its Indonesian label used on invoices.
var monthNames = map[int]string{
	1: "Januari", 2: "Februari", 3: "Maret", 4: "April",
	5: "Mei", 6: "Juni", 7: "Juli", 8: "Agustus",
	9: "September", 10: "Oktober", 11: "November", 12: "Desember",
}

var yearRE = regexp.MustCompile(`^\d{4}$`)

// parseDuesMonths validates the caller-supplied month identifiers ("1".."12",
// non-empty, no duplicates) and returns them as ints.
func parseDuesMonths(months []string) ([]int, error) {
	if len(months) == 0 {
		return nil, errors.New("months must not be empty")
	}
	seen := map[int]bool{}
	out := make([]int, 0, len(months))
	for _, m := range months {
		n, err := strconv.Atoi(m)
		if err != nil || n < 1 || n > 12 {
			return nil, fmt.Errorf("invalid month %q", m)
		}
		if seen[n] {
			return nil, fmt.Errorf("duplicate month %q", m)
		}
		seen[n] = true
		out = append(out, n)
	}
	return out, nil
}

func parseDuesYear(year string) (int, error) {
	if !yearRE.MatchString(year) {
		return 0, fmt.Errorf("invalid year %q", year)
	}
	return strconv.Atoi(year)
}

// newReferenceID builds the correlation key shared by all ledger rows of one
// gateway request. The millisecond timestamp keeps it unique per request.
func newReferenceID(houseBlock string) string {
	return fmt.Sprintf("GJL-%s-%d", houseBlock, time.Now().UnixMilli())
}

// createPaymentRequestHandler starts the online dues payment flow: it bills
// every selected month as one gateway invoice and writes one pending ledger
// row per month, all tagged with the same reference id. This is the only path
// that creates pending records.
func createPaymentRequestHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Months []string `json:"months"`
		Year   string   `json:"year"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	months, err := parseDuesMonths(req.Months)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	year, err := parseDuesYear(req.Year)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var profile models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil || profile.HouseBlock == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "profile with house block required before paying dues"})
		return
	}
	fee, err := monthlyFee()
	if err != nil {
		log.Printf("payment request rejected: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "monthly fee is not configured"})
		return
	}
	if billing == nil {
		log.Println("payment request rejected: gateway client not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "payment gateway is not configured"})
		return
	}

	items := make([]gateway.LineItem, 0, len(months))
	for _, m := range months {
		items = append(items, gateway.LineItem{
			Name:     fmt.Sprintf("Iuran %s %d", monthNames[m], year),
			Price:    fee,
			Quantity: 1,
		})
	}
	refID := newReferenceID(profile.HouseBlock)
	invoice, err := billing.CreateInvoice(c.Request.Context(), &gateway.InvoiceRequest{
		Name:        profile.Name,
		Email:       profile.Email,
		Mobile:      profile.Phone,
		Description: fmt.Sprintf("Iuran bulanan blok %s", profile.HouseBlock),
		ReferenceID: refID,
		Items:       items,
	})
	if err != nil {
		var gerr *gateway.Error
		if errors.As(err, &gerr) {
			// propagate the gateway's verdict; nothing was written locally
			c.JSON(gerr.StatusCode, gin.H{"error": gerr.Message})
			return
		}
		log.Printf("gateway call failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment gateway unreachable"})
		return
	}

	uid := user.ID
	records := make([]models.FinancialRecord, 0, len(months))
	for _, m := range months {
		records = append(records, models.FinancialRecord{
			Type:        models.RecordIncome,
			Category:    "Iuran Bulanan",
			Amount:      fee,
			Description: fmt.Sprintf("Iuran %s %d", monthNames[m], year),
			Date:        time.Date(year, time.Month(m), 1, 0, 0, 0, 0, time.UTC),
			HouseBlock:  profile.HouseBlock,
			UserID:      &uid,
			CreatedBy:   user.ID,
			Status:      models.StatusPending,
			PaymentURL:  invoice.PaymentURL,
			ReferenceID: refID,
		})
	}
	if err := db.Create(&records).Error; err != nil {
		// The gateway already issued a billable link. There is no compensating
		// transaction; log the reference id for manual reconciliation.
		log.Printf("ledger insert failed after gateway success, reference_id=%s: %v", refID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record payment request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"payment_url":  invoice.PaymentURL,
		"amount":       fee * int64(len(months)),
		"reference_id": refID,
		"link_id":      invoice.LinkID,
		"status":       invoice.Status,
	})
}
