package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestImageList_DecodeForms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"array", `["a.jpg","b.jpg"]`, []string{"a.jpg", "b.jpg"}},
		{"bare string", `"single.jpg"`, []string{"single.jpg"}},
		{"double-encoded array", `"[\"a.jpg\",\"b.jpg\"]"`, []string{"a.jpg", "b.jpg"}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var l ImageList
			if err := json.Unmarshal([]byte(tc.in), &l); err != nil {
				t.Fatalf("unmarshal %s: %v", tc.in, err)
			}
			if len(l) != len(tc.want) {
				t.Fatalf("got %v, want %v", l, tc.want)
			}
			for i := range l {
				if l[i] != tc.want[i] {
					t.Fatalf("got %v, want %v", l, tc.want)
				}
			}
		})
	}

	var l ImageList
	if err := json.Unmarshal([]byte(`42`), &l); err == nil {
		t.Fatalf("want error for non-string non-array images")
	}
}

func TestImageList_EncodesAsArray(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(ImageList{"x.jpg"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `["x.jpg"]` {
		t.Fatalf("canonical encoding must be an array, got %s", b)
	}
}

func TestItem_Price(t *testing.T) {
	t.Parallel()

	if got := (Item{PriceEstimate: "12.50"}).Price(); got != 12.5 {
		t.Fatalf("Price=%v, want 12.5", got)
	}
	if got := (Item{PriceEstimate: " 7 "}).Price(); got != 7 {
		t.Fatalf("Price=%v, want 7", got)
	}
	if got := (Item{PriceEstimate: "cheap"}).Price(); got != 0 {
		t.Fatalf("unparseable estimate must sort as zero, got %v", got)
	}
}

func TestSession_Authenticated(t *testing.T) {
	t.Parallel()

	if (Session{}).Authenticated() {
		t.Fatalf("empty token must not be authenticated")
	}
	s := Session{Token: "tok"}
	if !s.Authenticated() {
		t.Fatalf("non-empty token must be authenticated")
	}
	if s.UserID() != 0 {
		t.Fatalf("absent profile must report user id 0")
	}
	s.User = &User{ID: 9}
	if s.UserID() != 9 {
		t.Fatalf("UserID=%d, want 9", s.UserID())
	}
}

func TestAPIError_Unwrap(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("boom")
	err := &APIError{Message: "m", Err: sentinel}
	if err.Error() != "m" {
		t.Fatalf("Error()=%q", err.Error())
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("APIError must unwrap to its sentinel")
	}
}

func TestItem_DecodeWireShape(t *testing.T) {
	t.Parallel()

	raw := `{
		"id": 3, "user_id": 7, "category_id": 2,
		"title": "Bike", "description": "red", "location": "Austin",
		"price_estimate": "40.00", "images": "[\"u1\"]",
		"is_Approved": "approved",
		"created_at": "2025-05-01T10:00:00Z", "updated_at": "2025-05-02T10:00:00Z",
		"user": {"id": 7, "username": "bob"},
		"category": {"id": 2, "name": "Sports"}
	}`
	var it Item
	if err := json.Unmarshal([]byte(raw), &it); err != nil {
		t.Fatalf("unmarshal item: %v", err)
	}
	if it.OwnerID != 7 || it.Category.Name != "Sports" || !it.Approved() {
		t.Fatalf("bad decode: %+v", it)
	}
	if len(it.Images) != 1 || it.Images[0] != "u1" {
		t.Fatalf("images not normalized: %v", it.Images)
	}
}
