package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateInvoiceSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/invoices", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req InvoiceRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "GJL-A1-1", req.ReferenceID)
		assert.Len(t, req.Items, 2)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"link_id":"lnk_123","payment_url":"https://pay.example/lnk_123","status":"ACTIVE"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	resp, err := c.CreateInvoice(context.Background(), &InvoiceRequest{
		Name:        "Warga A1",
		ReferenceID: "GJL-A1-1",
		Items: []LineItem{
			{Name: "Iuran Januari 2025", Price: 150000, Quantity: 1},
			{Name: "Iuran Februari 2025", Price: 150000, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "lnk_123", resp.LinkID)
	assert.Equal(t, "https://pay.example/lnk_123", resp.PaymentURL)
	assert.Equal(t, "ACTIVE", resp.Status)
}

func TestCreateInvoicePropagatesGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"amount below minimum"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "test-key")
	_, err := c.CreateInvoice(context.Background(), &InvoiceRequest{ReferenceID: "GJL-A1-2"})
	require.Error(t, err)

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, http.StatusUnprocessableEntity, gerr.StatusCode)
	assert.Equal(t, "amount below minimum", gerr.Message)
}

func TestCreateInvoiceMissingPaymentURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "k")
	_, err := c.CreateInvoice(context.Background(), &InvoiceRequest{ReferenceID: "x"})
	assert.Error(t, err)
}
