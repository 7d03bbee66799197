package service

// PaymentQR is a generated UPI payment request: the deep link and its QR
// image, PNG-encoded.
type PaymentQR struct {
	UPIURL string
	PNG    []byte
}

// PaymentQRService generates scannable UPI payment requests for orders.
type PaymentQRService interface {
	// GenerateUPIQR builds a UPI deep link referencing the order number and
	// renders it as a QR code.
	GenerateUPIQR(orderNumber string, amount float64) (*PaymentQR, error)
}
