package uscf

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMockLookupDeterministic(t *testing.T) {
	client := NewClient("", time.Second, true)

	first, err := client.LookupMember(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("LookupMember: %v", err)
	}
	second, err := client.LookupMember(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("second LookupMember: %v", err)
	}
	if first.RegularRating == nil || second.RegularRating == nil {
		t.Fatal("mock lookups must return a rating")
	}
	if *first.RegularRating != *second.RegularRating {
		t.Errorf("mock ratings differ between lookups: %d vs %d", *first.RegularRating, *second.RegularRating)
	}
	if *first.RegularRating < 800 || *first.RegularRating > 2499 {
		t.Errorf("mock rating %d outside the 800-2499 range", *first.RegularRating)
	}
}

func TestLookupMemberEmptyID(t *testing.T) {
	client := NewClient("", time.Second, true)

	if _, err := client.LookupMember(context.Background(), ""); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound, got %v", err)
	}
}

func TestLookupMember(t *testing.T) {
	rating := 1825
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/members/12345678":
			json.NewEncoder(w).Encode(Member{ID: "12345678", Name: "Alice Adams", State: "TX", RegularRating: &rating})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, false)
	member, err := client.LookupMember(context.Background(), "12345678")
	if err != nil {
		t.Fatalf("LookupMember: %v", err)
	}
	if member.Name != "Alice Adams" || member.RegularRating == nil || *member.RegularRating != 1825 {
		t.Errorf("unexpected member: %+v", member)
	}

	if _, err := client.LookupMember(context.Background(), "00000000"); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("expected ErrMemberNotFound for unknown ID, got %v", err)
	}
}

func TestSearchPlayers(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Adams" {
			t.Errorf("query %q, want Adams", got)
		}
		json.NewEncoder(w).Encode([]Member{
			{ID: "12345678", Name: "Alice Adams"},
			{ID: "23456789", Name: "Albert Adams"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second, false)
	members, err := client.SearchPlayers(context.Background(), "Adams")
	if err != nil {
		t.Fatalf("SearchPlayers: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
}
