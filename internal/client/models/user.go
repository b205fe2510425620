package models

import (
	"encoding/json"
	"strings"
)

// Credential is the bearer token pair issued by the backend. RefreshToken
// may be empty.
type Credential struct {
	AccessToken  string
	RefreshToken string
}

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the identity returned by login, signup and /auth/me.
type User struct {
	ID        string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      Role   `json:"role"`
}

// UnmarshalJSON defaults a missing role to RoleUser.
func (u *User) UnmarshalJSON(b []byte) error {
	type wire User
	var w wire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if w.Role == "" {
		w.Role = RoleUser
	}
	*u = User(w)
	return nil
}

// DisplayName is "First Last" when known, else the email.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// SignupData carries the registration fields.
type SignupData struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type PlanType string

const (
	PlanMonthly PlanType = "monthly"
	PlanYearly  PlanType = "yearly"
	PlanTrial   PlanType = "trial"
)

type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// Subscription is read-only on the client.
type Subscription struct {
	PlanType         PlanType           `json:"planType"`
	Status           SubscriptionStatus `json:"status"`
	QueriesUsed      int                `json:"queriesUsed"`
	QueryLimit       int                `json:"queryLimit"`
	CurrentPeriodEnd Timestamp          `json:"currentPeriodEnd"`
}

// QueriesLeft never goes below zero.
func (s Subscription) QueriesLeft() int {
	if left := s.QueryLimit - s.QueriesUsed; left > 0 {
		return left
	}
	return 0
}
