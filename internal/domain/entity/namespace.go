// Package entity contains the core business objects of the project.
package entity

// Namespace identifies the storage namespace that storefront state is keyed
// by: either the shared anonymous namespace or one authenticated user.
type Namespace string

// NamespaceGuest is the namespace for anonymous visitors.
const NamespaceGuest Namespace = "guest"

// NamespaceForUser returns the namespace for an authenticated user ID.
func NamespaceForUser(uid string) Namespace {
	return Namespace(uid)
}

// String returns the string representation of the Namespace.
func (n Namespace) String() string {
	return string(n)
}

// IsGuest reports whether the namespace belongs to an anonymous visitor.
func (n Namespace) IsGuest() bool {
	return n == NamespaceGuest || n == ""
}

// UserID returns the user ID for an authenticated namespace, or "" for guest.
func (n Namespace) UserID() string {
	if n.IsGuest() {
		return ""
	}

	return string(n)
}
