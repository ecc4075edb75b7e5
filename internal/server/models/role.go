package models

import (
	"encoding/json"
	"fmt"
)

// Role is a granted capability of a User. Roles serialize by name (both in
// JSON bodies and in access-token claims) and persist by numeric id.
type Role int

const (
	RoleAdmin    Role = 1
	RoleEmployee Role = 2
	RolePremium  Role = 3
)

type roleInfo struct {
	name        string
	description string
	precedence  int
}

var roleTable = map[Role]roleInfo{
	RoleAdmin:    {name: "Admin", description: "Role for admin access", precedence: 5},
	RoleEmployee: {name: "Employee", description: "Role for internal employees", precedence: 10},
	RolePremium:  {name: "Premium", description: "Role for premium users", precedence: 15},
}

var roleByName map[string]Role

func init() {
	roleByName = make(map[string]Role, len(roleTable))
	for id, info := range roleTable {
		roleByName[info.name] = id
	}
	if len(roleByName) != len(roleTable) {
		panic("models: duplicate role names")
	}
}

func (r Role) String() string {
	if info, ok := roleTable[r]; ok {
		return info.name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

func (r Role) Description() string { return roleTable[r].description }

func (r Role) Precedence() int { return roleTable[r].precedence }

// RoleFromID maps a stored numeric id back to a Role.
func RoleFromID(id int) (Role, error) {
	r := Role(id)
	if _, ok := roleTable[r]; !ok {
		return 0, fmt.Errorf("unknown role id %d", id)
	}
	return r, nil
}

// RoleFromName maps a role name back to a Role.
func RoleFromName(name string) (Role, error) {
	r, ok := roleByName[name]
	if !ok {
		return 0, fmt.Errorf("unknown role %q", name)
	}
	return r, nil
}

func (r Role) MarshalJSON() ([]byte, error) {
	if _, ok := roleTable[r]; !ok {
		return nil, fmt.Errorf("unknown role id %d", int(r))
	}
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	role, err := RoleFromName(name)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// RoleNames renders a role set as its names, preserving order.
func RoleNames(roles []Role) []string {
	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	return names
}

// RolesFromNames parses a list of role names.
func RolesFromNames(names []string) ([]Role, error) {
	roles := make([]Role, 0, len(names))
	for _, n := range names {
		r, err := RoleFromName(n)
		if err != nil {
			return nil, err
		}
		roles = append(roles, r)
	}
	return roles, nil
}
