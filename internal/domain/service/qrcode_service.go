package service

// QRCodeService defines the interface for QR code generation services
type QRCodeService interface {
	// GenerateCheckoutQR renders the checkout URL as a PNG QR code so a
	// customer can pick up payment on another device.
	GenerateCheckoutQR(checkoutURL string) ([]byte, error)
}
