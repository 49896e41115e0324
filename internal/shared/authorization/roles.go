// Package authorization defines the principal roles trusted from the identity provider.
package authorization

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleCustomer UserRole = "customer"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleCustomer
}
