// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Authenticated Principal

// Principal is the identity the Authentication Gate attaches to a request.
//
// It is resolved from storage on every request and never built from token
// claims alone.
type Principal struct {
	UserID   string
	Username string
	Email    string
	IsAdmin  bool
}

// # Privilege Checks

// Privilege is a predicate over an authenticated principal.
type Privilege func(principal *Principal) bool

// Admin grants access to principals flagged as administrators.
func Admin(principal *Principal) bool {
	return principal != nil && principal.IsAdmin
}
