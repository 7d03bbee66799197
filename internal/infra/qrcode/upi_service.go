// Package qrcode renders UPI payment requests as scannable QR images.
package qrcode

import (
	"fmt"
	"net/url"

	"market/config"
	"market/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/skip2/go-qrcode"
)

type upiQRService struct {
	vpa                  string
	merchantName         string
	merchantCode         string
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
}

// NewUPIQRService creates the UPI QR generator from merchant configuration.
func NewUPIQRService(cfg *config.Config) service.PaymentQRService {
	var level qrcode.RecoveryLevel
	switch cfg.QRCode.ErrorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &upiQRService{
		vpa:                  cfg.UPI.VPA,
		merchantName:         cfg.UPI.MerchantName,
		merchantCode:         cfg.UPI.MerchantCode,
		size:                 cfg.QRCode.Size,
		errorCorrectionLevel: level,
	}
}

// GenerateUPIQR builds the upi://pay deep link referencing the order number
// and renders it as a PNG QR code.
func (s *upiQRService) GenerateUPIQR(orderNumber string, amount float64) (*service.PaymentQR, error) {
	params := url.Values{}
	params.Set("pa", s.vpa)
	params.Set("pn", s.merchantName)
	params.Set("mc", s.merchantCode)
	params.Set("tr", orderNumber)
	params.Set("am", fmt.Sprintf("%.2f", amount))
	params.Set("cu", "INR")

	upiURL := "upi://pay?" + params.Encode()

	qrCode, err := qrcode.New(upiURL, s.errorCorrectionLevel)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create QR code")
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate PNG")
	}

	return &service.PaymentQR{UPIURL: upiURL, PNG: pngBytes}, nil
}
