// Copyright (c) 2026 Langdata. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import "slices"

// Role is the authorization level carried by an admin token.
type Role string

const (
	// RoleCurator may submit regions, countries and harvests.
	RoleCurator Role = "curator"

	// RoleAdmin may also delete catalog entries and trigger retention passes.
	RoleAdmin Role = "admin"
)

// ladder lists the known roles from least to most privileged.
var ladder = []Role{RoleCurator, RoleAdmin}

// AtLeast reports whether r grants everything target does. Unknown roles
// grant nothing.
func (r Role) AtLeast(target Role) bool {
	held, required := slices.Index(ladder, r), slices.Index(ladder, target)
	return held >= 0 && held >= required
}
