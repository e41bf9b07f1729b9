package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fadna/oms/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.APIConfig{BaseURL: srv.URL, Timeout: 5 * time.Second})
}

func TestBackendMessageSurfacesVerbatim(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"Customer with this phone already exists"}`)
	})

	_, err := client.CreateCustomer(context.Background(), CustomerPayload{Phone: "077"})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *api.Error", err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d", apiErr.Status)
	}
	if apiErr.Message != "Customer with this phone already exists" {
		t.Errorf("message = %q, want the backend text untouched", apiErr.Message)
	}
}

func TestGenericMessageWhenBodyUnusable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "<html>oops</html>")
	})

	err := client.CreateOrder(context.Background(), OrderPayload{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *api.Error", err)
	}
	if apiErr.Message != "request failed with status 500" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestLookupCustomerNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.LookupCustomer(context.Background(), "0770000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestNotFoundKeepsBackendMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Order not found or already deleted"}`)
	})

	err := client.RequestEdit(context.Background(), "gone", "please fix")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want it to match ErrNotFound", err)
	}
	if err.Error() != "Order not found or already deleted" {
		t.Errorf("message = %q, want the backend text kept alongside the sentinel", err)
	}
}

func TestTokenTravelsAsBearer(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, "[]")
	})
	client.SetToken("tok-123")

	if _, err := client.Orders(context.Background()); err != nil {
		t.Fatalf("Orders() error = %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q", gotAuth)
	}
}

func TestUpdateCustomerNeverSendsPhone(t *testing.T) {
	var body map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	payload := CustomerPayload{Name: "Nadeesha", Phone: "0771234567"}
	if err := client.UpdateCustomer(context.Background(), "cust-1", payload); err != nil {
		t.Fatalf("UpdateCustomer() error = %v", err)
	}
	if _, ok := body["phone"]; ok {
		t.Errorf("phone must be stripped on update, body = %v", body)
	}
	if body["name"] != "Nadeesha" {
		t.Errorf("name = %v", body["name"])
	}
}

func TestDeleteCarriesPasswordBody(t *testing.T) {
	var method string
	var body map[string]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("bad body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := client.DeleteOrder(context.Background(), "ord-1", "hunter2"); err != nil {
		t.Fatalf("DeleteOrder() error = %v", err)
	}
	if method != http.MethodDelete {
		t.Errorf("method = %q", method)
	}
	if body["password"] != "hunter2" {
		t.Errorf("password = %q, want forwarded for re-auth", body["password"])
	}
}

func TestImportOrdersMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/bulk-import" {
			t.Errorf("path = %q", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("no file part: %v", err)
			http.Error(w, "no file", http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "batch.csv" {
			t.Errorf("filename = %q", header.Filename)
		}
		fmt.Fprint(w, `{"successCount":3,"errorCount":1,"errors":["row 2: unknown customer"]}`)
	})

	result, err := client.ImportOrders(context.Background(), "batch.csv",
		strings.NewReader("phone,product,qty\n077,Shampoo,1\n"))
	if err != nil {
		t.Fatalf("ImportOrders() error = %v", err)
	}
	if result.SuccessCount != 3 || result.ErrorCount != 1 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Errors) != 1 || result.Errors[0] != "row 2: unknown customer" {
		t.Errorf("errors = %v", result.Errors)
	}
}

func TestPendingEditsCount(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orders/pending-edits-count" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"count":4}`)
	})

	count, err := client.PendingEditsCount(context.Background())
	if err != nil {
		t.Fatalf("PendingEditsCount() error = %v", err)
	}
	if count != 4 {
		t.Errorf("count = %d", count)
	}
}

func TestMyReportQueryParams(t *testing.T) {
	var query map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		fmt.Fprint(w, "[]")
	})

	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 31, 23, 59, 59, 0, time.UTC)
	if _, err := client.MyReport(context.Background(), start, end, "All"); err != nil {
		t.Fatalf("MyReport() error = %v", err)
	}
	if got := query["startDate"]; len(got) != 1 || got[0] != "2025-08-01T00:00:00Z" {
		t.Errorf("startDate = %v", got)
	}
	if got := query["paymentStatus"]; len(got) != 1 || got[0] != "All" {
		t.Errorf("paymentStatus = %v", got)
	}
}

func TestLoginDecodesTokenAndUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var creds map[string]string
		if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
			t.Errorf("bad body: %v", err)
		}
		if creds["email"] != "a@b.lk" || creds["password"] != "pw" {
			t.Errorf("creds = %v", creds)
		}
		fmt.Fprint(w, `{"token":"tok","user":{"_id":"u1","name":"Sithara","role":"Agent"}}`)
	})

	resp, err := client.Login(context.Background(), "a@b.lk", "pw")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if resp.Token != "tok" || resp.User == nil || resp.User.ID != "u1" {
		t.Errorf("resp = %+v", resp)
	}
}
