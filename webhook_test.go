package main

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"
)

func signBody(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	secret := []byte("test-secret")
	body := []byte(`{"reference_id":"GJL-A1-1700000000000","status":"SUCCESSFUL"}`)
	sig := signBody(secret, body)

	if !verifyWebhookSignature(secret, body, sig) {
		t.Fatal("valid signature rejected")
	}
	if !verifyWebhookSignature(secret, body, strings.ToUpper(sig)) {
		t.Fatal("uppercase hex signature rejected")
	}
	if !verifyWebhookSignature(secret, body, "  "+sig+"\n") {
		t.Fatal("signature with surrounding whitespace rejected")
	}
}

func TestVerifyWebhookSignatureMismatch(t *testing.T) {
	secret := []byte("test-secret")
	body := []byte(`{"reference_id":"GJL-A1-1700000000000","status":"SUCCESSFUL"}`)

	if verifyWebhookSignature(secret, body, signBody([]byte("other-secret"), body)) {
		t.Fatal("signature from wrong secret accepted")
	}
	if verifyWebhookSignature(secret, []byte("tampered"), signBody(secret, body)) {
		t.Fatal("signature over different body accepted")
	}
	if verifyWebhookSignature(secret, body, "") {
		t.Fatal("empty signature accepted")
	}
	if verifyWebhookSignature(secret, body, "not-hex") {
		t.Fatal("garbage signature accepted")
	}
}
