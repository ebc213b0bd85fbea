package main

import (
	"bytes"
	"encoding/xml"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRunTotals_EncodesQuery(t *testing.T) {
	var gotUser, gotDate string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.URL.Query().Get("user")
		gotDate = r.URL.Query().Get("date")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userId":"whatsapp:+15550001111","date":"2025-03-10"}`))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	if err := runTotals(srv.URL, "whatsapp:+15550001111", "2025-03-10", &buf); err != nil {
		t.Fatalf("runTotals: %v", err)
	}
	// The plus sign survives only if the query is percent-encoded.
	if gotUser != "whatsapp:+15550001111" || gotDate != "2025-03-10" {
		t.Fatalf("query mangled: user=%q date=%q", gotUser, gotDate)
	}
	if !strings.Contains(buf.String(), "userId") {
		t.Fatalf("body not copied: %q", buf.String())
	}
}

func TestRunTotals_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no user", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := runTotals(srv.URL, "whatsapp:+15550001111", "", io.Discard)
	if err == nil || !strings.Contains(err.Error(), "http 400") {
		t.Fatalf("expected http 400 error, got %v", err)
	}
}

func TestRunSend_PrintsReplyText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/whatsapp" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if got := r.FormValue("From"); got != "whatsapp:+15550001111" {
			t.Errorf("unexpected From: %q", got)
		}
		if got := r.FormValue("Body"); got != "totals" {
			t.Errorf("unexpected Body: %q", got)
		}
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(xml.Header +
			"<Response><Message>Your totals for 2025-03-10:&#xA;Calories: 120 kcal&#xA;Protein: 8.5 g</Message></Response>"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	if err := runSend(srv.URL, "whatsapp:+15550001111", "totals", &buf); err != nil {
		t.Fatalf("runSend: %v", err)
	}
	want := "Your totals for 2025-03-10:\nCalories: 120 kcal\nProtein: 8.5 g\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestRunSend_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := runSend(srv.URL, "whatsapp:+15550001111", "hi", io.Discard)
	if err == nil || !strings.Contains(err.Error(), "http 500") {
		t.Fatalf("expected http 500 error, got %v", err)
	}
}
