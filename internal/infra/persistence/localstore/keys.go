package localstore

import "maison/internal/domain/entity"

// Typed key builders: the single source of truth for the persisted state
// layout. Every repository goes through these; nothing else formats keys.
//
// Layout: cart_<ns>, shipping_<ns>, promo_<ns>, wishlist_<uid>,
// addresses_<uid>, orders_<uid>, where <ns> is "guest" or a user ID.

// CartKey returns the storage key for a namespace's cart items.
func CartKey(ns entity.Namespace) string {
	return "cart_" + namespaceSegment(ns)
}

// ShippingKey returns the storage key for a namespace's shipping selection.
func ShippingKey(ns entity.Namespace) string {
	return "shipping_" + namespaceSegment(ns)
}

// PromoKey returns the storage key for a namespace's applied promo.
func PromoKey(ns entity.Namespace) string {
	return "promo_" + namespaceSegment(ns)
}

// WishlistKey returns the storage key for a user's wishlist.
func WishlistKey(ns entity.Namespace) string {
	return "wishlist_" + namespaceSegment(ns)
}

// AddressesKey returns the storage key for a user's address book.
func AddressesKey(ns entity.Namespace) string {
	return "addresses_" + namespaceSegment(ns)
}

// OrdersKey returns the storage key for a user's order records.
func OrdersKey(ns entity.Namespace) string {
	return "orders_" + namespaceSegment(ns)
}

func namespaceSegment(ns entity.Namespace) string {
	if ns.IsGuest() {
		return entity.NamespaceGuest.String()
	}

	return ns.String()
}
