// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account provides profile self-service and user administration.

Members read and edit their own profile; administrators list every account
and remove non-admin accounts. Persistence goes through [auth.UserRepository],
so this package owns no storage of its own.

# Security

Every endpoint sits behind the Authentication Gate. The administration
endpoints additionally sit behind the Authorization Gate.
*/
package account

// # Messages

const (
	MessageUserRemoved       = "User removed"
	MessageCannotDeleteAdmin = "Cannot delete admin user"
)

// resourceUser names the resource in NOT_FOUND responses.
const resourceUser = "User"
