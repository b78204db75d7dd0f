package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gage_backend/internal/models"
	"gage_backend/internal/service"
)

func TestCustomerHandlers_Create(t *testing.T) {
	cust := &mockCustomers{created: models.Customer{ID: "id-1", Email: "new@gage.io", Role: "operator", Plant: "P1", CreatedAt: testNow}}
	r := newTestRouter(&service.Service{Authorization: newMockAuth(), Customers: cust})

	post := func(token, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/customers", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		r.ServeHTTP(w, req)
		return w
	}

	w := post("admin", `{"email":"New@gage.io","full_name":"N","role":"Operator","plant":"P1","password":"pw"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status=%d body=%s", w.Code, w.Body.String())
	}
	if cust.lastInput.Email != "new@gage.io" || cust.lastInput.Role != "operator" {
		t.Fatalf("input not normalized: %+v", cust.lastInput)
	}
	if cust.lastActor.Email != testAdmin.Email {
		t.Fatalf("actor not forwarded: %+v", cust.lastActor)
	}
	if strings.Contains(w.Body.String(), "password") {
		t.Fatalf("response leaks password: %s", w.Body.String())
	}

	// missing fields listed in declared order
	w = post("admin", `{"email":"a@b.c","role":""}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	var out map[string]string
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out["error"] != "missing required field(s): full_name, role, plant, password" {
		t.Fatalf("unexpected error %q", out["error"])
	}

	// invalid JSON
	if w = post("admin", `{`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad json, got %d", w.Code)
	}

	// no token
	if w = post("", `{}`); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	cases := []struct {
		err  error
		code int
	}{
		{service.ErrForbidden, http.StatusForbidden},
		{service.ErrCustomerExists, http.StatusConflict},
		{errors.New("warehouse down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		cust.createErr = tc.err
		w = post("valid", `{"email":"x@y.z","full_name":"X","role":"viewer","plant":"P1","password":"pw"}`)
		if w.Code != tc.code {
			t.Fatalf("err %v: got %d want %d", tc.err, w.Code, tc.code)
		}
	}
	if strings.Contains(w.Body.String(), "warehouse down") {
		t.Fatalf("internal error leaked: %s", w.Body.String())
	}
}

func TestCustomerHandlers_ListAndGet(t *testing.T) {
	cust := &mockCustomers{
		list: []models.Customer{{Email: "a@gage.io"}, {Email: "b@gage.io"}},
		got:  models.Customer{Email: "a@gage.io", Plant: "P1"},
	}
	r := newTestRouter(&service.Service{Authorization: newMockAuth(), Customers: cust})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodGet, "/api/v1/customers?plant=P1&role=Viewer&limit=5", "valid"))
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	var out struct {
		Count     int               `json:"count"`
		Customers []models.Customer `json:"customers"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Count != 2 || len(out.Customers) != 2 {
		t.Fatalf("unexpected list %+v", out)
	}
	want := service.CustomerFilter{Plant: "P1", Role: "viewer", Limit: 5}
	if cust.lastFilter != want {
		t.Fatalf("filter=%+v want %+v", cust.lastFilter, want)
	}

	// non-numeric limit falls back to the service default
	w = httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodGet, "/api/v1/customers?limit=abc", "valid"))
	if cust.lastFilter.Limit != 0 {
		t.Fatalf("expected limit 0, got %d", cust.lastFilter.Limit)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodGet, "/api/v1/customers/A@gage.io", "valid"))
	if w.Code != http.StatusOK || cust.lastEmail != "a@gage.io" {
		t.Fatalf("get status=%d email=%q", w.Code, cust.lastEmail)
	}

	cust.getErr = service.ErrCustomerNotFound
	w = httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodGet, "/api/v1/customers/nobody@gage.io", "valid"))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestCustomerHandlers_DeleteByRole(t *testing.T) {
	cust := &mockCustomers{deleted: 3}
	r := newTestRouter(&service.Service{Authorization: newMockAuth(), Customers: cust})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodDelete, "/api/v1/customers?role=Viewer", "admin"))
	if w.Code != http.StatusOK {
		t.Fatalf("delete status=%d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Deleted int64  `json:"deleted"`
		Role    string `json:"role"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	if out.Deleted != 3 || out.Role != "viewer" || cust.lastRole != "viewer" {
		t.Fatalf("unexpected delete result %+v (role %q)", out, cust.lastRole)
	}

	// role is required
	w = httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodDelete, "/api/v1/customers", "admin"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}

	cust.deleteErr = service.ErrForbidden
	w = httptest.NewRecorder()
	r.ServeHTTP(w, newAuthedRequest(http.MethodDelete, "/api/v1/customers?role=viewer", "valid"))
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}
