package supabase

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSignInStoresSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" {
			t.Errorf("path = %s, want /auth/v1/token", r.URL.Path)
		}
		if got := r.URL.Query().Get("grant_type"); got != "password" {
			t.Errorf("grant_type = %s, want password", got)
		}
		if got := r.Header.Get("apikey"); got != "anon" {
			t.Errorf("apikey header = %s, want anon", got)
		}
		w.Write([]byte(`{"access_token":"at","refresh_token":"rt","user":{"id":"u1","email":"a@b.c","user_metadata":{"name":"Asha"}}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	s, err := c.SignIn(context.Background(), "a@b.c", "pw")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if s.AccessToken != "at" || s.RefreshToken != "rt" {
		t.Errorf("session tokens = %q/%q", s.AccessToken, s.RefreshToken)
	}
	if c.Session() == nil {
		t.Error("session not retained on client")
	}
	if got := s.User.Name(); got != "Asha" {
		t.Errorf("User.Name() = %q, want Asha", got)
	}
}

func TestSignInBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error_description":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	_, err := c.SignIn(context.Background(), "a@b.c", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Friendly(err); got != "Invalid login credentials" {
		t.Errorf("Friendly = %q, want the auth message", got)
	}
	if c.Session() != nil {
		t.Error("session must stay nil after a failed sign-in")
	}
}

func TestSelectUsesSessionToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer at" {
			t.Errorf("Authorization = %q, want Bearer at", got)
		}
		if r.URL.Path != "/rest/v1/clients" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`[{"id":"c1","name":"Acme"}]`))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	c.setSession(&Session{AccessToken: "at"})

	var rows []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := c.Select(context.Background(), "clients", "order=created_at.desc", &rows); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Acme" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestMissingTableMapsToSchemaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"42P01","message":"relation \"public.invoices\" does not exist"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "anon")
	err := c.Select(context.Background(), "invoices", "", &[]struct{}{})
	if !IsSchemaMissing(err) {
		t.Fatalf("IsSchemaMissing = false for %v", err)
	}
	if got := Friendly(err); got != "Database Error: required tables do not exist. Run the setup SQL in your Supabase project." {
		t.Errorf("Friendly = %q", got)
	}
}

func TestNetworkErrorFriendly(t *testing.T) {
	c := New("http://127.0.0.1:1", "anon")
	err := c.Select(context.Background(), "clients", "", &[]struct{}{})
	if err == nil {
		t.Fatal("expected error")
	}
	if got := Friendly(err); got != "Network Error: unable to reach the server." {
		t.Errorf("Friendly = %q", got)
	}
}
