package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"gjl/models"

	"github.com/gin-gonic/gin"
)

const signatureHeader = "X-Callback-Signature"

// gateway-defined webhook status values
const (
	webhookSuccessful = "SUCCESSFUL"
	webhookFailed     = "FAILED"
	webhookPending    = "PENDING"
)

// verifyWebhookSignature checks the hex HMAC-SHA256 of the raw body.
func verifyWebhookSignature(secret, body []byte, signature string) bool {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	got := strings.ToLower(strings.TrimSpace(signature))
	return hmac.Equal([]byte(expected), []byte(got))
}

// paymentWebhookHandler settles the ledger rows of one gateway batch. The
// status transition only touches rows still pending, so redelivered webhooks
// match zero rows and succeed as no-ops. Anything short of a database failure
// answers 200 so the gateway stops retrying.
func paymentWebhookHandler(c *gin.Context) {
	secret := os.Getenv("GATEWAY_WEBHOOK_SECRET")
	if secret == "" {
		// fail closed: unsigned webhooks are never processed
		log.Println("payment webhook rejected: GATEWAY_WEBHOOK_SECRET not configured")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "webhook secret not configured"})
		return
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	if !verifyWebhookSignature([]byte(secret), body, c.GetHeader(signatureHeader)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
		return
	}

	var payload struct {
		ReferenceID string `json:"reference_id"`
		Status      string `json:"status"`
		Amount      int64  `json:"amount"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.ReferenceID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed payload"})
		return
	}

	var target models.RecordStatus
	switch payload.Status {
	case webhookSuccessful:
		target = models.StatusDone
	case webhookFailed:
		target = models.StatusExpired
	case webhookPending:
		c.JSON(http.StatusOK, gin.H{"reference_id": payload.ReferenceID, "updated": 0, "result": "pending"})
		return
	default:
		log.Printf("payment webhook: ignoring unknown status %q for %s", payload.Status, payload.ReferenceID)
		c.JSON(http.StatusOK, gin.H{"reference_id": payload.ReferenceID, "updated": 0, "result": "ignored"})
		return
	}

	res := db.Model(&models.FinancialRecord{}).
		Where("reference_id = ? AND status = ?", payload.ReferenceID, models.StatusPending).
		Update("status", target)
	if res.Error != nil {
		log.Printf("payment webhook update failed for %s: %v", payload.ReferenceID, res.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reference_id": payload.ReferenceID,
		"updated":      res.RowsAffected,
		"result":       string(target),
	})
}
