// Package model defines domain entities shared by the api client and state store.
package model

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// ApprovalState is the moderation status controlling an item's visibility to other users.
type ApprovalState string

const (
	ApprovalPending  ApprovalState = "pending"
	ApprovalApproved ApprovalState = "approved"
	ApprovalRejected ApprovalState = "rejected"
)

// User is an account profile, either the session owner or reference data embedded in items.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Category is immutable reference data. No client-side mutation.
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ImageList is a collection of image URL references.
//
// The canonical wire encoding is a JSON array of URL strings, but the API has
// historically also returned a bare string (sometimes itself containing an
// encoded array). The decoder accepts all three forms and normalizes to the
// array form; encoding always produces the array.
type ImageList []string

func (l *ImageList) UnmarshalJSON(data []byte) error {
	var urls []string
	if err := json.Unmarshal(data, &urls); err == nil {
		*l = urls
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		*l = nil
		return nil
	}
	// Bare string carrying an encoded array.
	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &urls); err == nil {
			*l = urls
			return nil
		}
	}
	*l = ImageList{s}
	return nil
}

// Item is a single marketplace listing with its embedded owner and category.
type Item struct {
	ID            int64         `json:"id"`
	OwnerID       int64         `json:"user_id"`
	CategoryID    int64         `json:"category_id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Location      string        `json:"location"`
	PriceEstimate string        `json:"price_estimate"`
	Images        ImageList     `json:"images"`
	Approval      ApprovalState `json:"is_Approved"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Owner         User          `json:"user"`
	Category      Category      `json:"category"`
}

// Price converts the decimal-as-string estimate to a number for sorting.
// Unparseable estimates sort as zero.
func (i Item) Price() float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(i.PriceEstimate), 64)
	if err != nil {
		return 0
	}
	return v
}

// Approved reports whether the item is visible to users other than its owner.
func (i Item) Approved() bool { return i.Approval == ApprovalApproved }

// Session is the authenticated state of the client. The user profile is only
// populated after a login/registration in this process; a session restored from
// durable storage carries the token alone.
type Session struct {
	Token string
	User  *User
}

// Authenticated is true if and only if the token is non-empty.
func (s Session) Authenticated() bool { return s.Token != "" }

// UserID returns the session owner's id, or 0 when the profile is absent.
func (s Session) UserID() int64 {
	if s.User == nil {
		return 0
	}
	return s.User.ID
}

// Credentials is the login submission.
type Credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// FileAttachment is a binary payload sent as a multipart file part.
type FileAttachment struct {
	Name string
	Data []byte
}

// Registration is the profile submitted on account creation. ProfilePicture is
// optional; when present it is attached as a binary image part.
type Registration struct {
	Username       string
	Email          string
	Password       string
	FirstName      string
	LastName       string
	ProfilePicture *FileAttachment
}

// Fields returns the non-file form fields in wire order.
func (r Registration) Fields() map[string]string {
	return map[string]string{
		"username":   r.Username,
		"email":      r.Email,
		"password":   r.Password,
		"first_name": r.FirstName,
		"last_name":  r.LastName,
	}
}

// APIError is the normalized shape of every remote failure: a user-facing
// message plus optional field-level validation details, wrapping a sentinel
// from the errs package for stable errors.Is matching.
type APIError struct {
	Message string              `json:"message"`
	Details map[string][]string `json:"errors,omitempty"`
	Err     error               `json:"-"`
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Unwrap() error { return e.Err }
