// internal/domain/wishlist/entity.go
package wishlist

// Item is one saved product in a session's wishlist. Wishlists carry no
// quantity; moving an item to the cart adds a single unit.
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"` // Whole EGP
	Image string `json:"image,omitempty"`
}
