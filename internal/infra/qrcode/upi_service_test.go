package qrcode

import (
	"net/url"
	"strings"
	"testing"

	"market/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *upiQRService {
	cfg := &config.Config{
		UPI: &config.UPIConfig{
			VPA:          "anonshop@paytm",
			MerchantName: "Anon Shop",
			MerchantCode: "123456789",
		},
		QRCode: &config.QRCodeConfig{Size: 256, ErrorCorrectionLevel: "M"},
	}

	return NewUPIQRService(cfg).(*upiQRService)
}

func TestGenerateUPIQR_DeepLinkFormat(t *testing.T) {
	svc := newTestService()

	qr, err := svc.GenerateUPIQR("ORD-1740830400000-ABCDEF123", 1280)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(qr.UPIURL, "upi://pay?"))

	parsed, err := url.Parse(qr.UPIURL)
	require.NoError(t, err)
	query := parsed.Query()
	assert.Equal(t, "anonshop@paytm", query.Get("pa"))
	assert.Equal(t, "Anon Shop", query.Get("pn"))
	assert.Equal(t, "123456789", query.Get("mc"))
	assert.Equal(t, "ORD-1740830400000-ABCDEF123", query.Get("tr"))
	assert.Equal(t, "1280.00", query.Get("am"))
	assert.Equal(t, "INR", query.Get("cu"))
}

func TestGenerateUPIQR_AmountRendering(t *testing.T) {
	svc := newTestService()

	qr, err := svc.GenerateUPIQR("ORD-1", 99.5)
	require.NoError(t, err)
	assert.Contains(t, qr.UPIURL, "am=99.50")
}

func TestGenerateUPIQR_ProducesPNG(t *testing.T) {
	svc := newTestService()

	qr, err := svc.GenerateUPIQR("ORD-1", 100)
	require.NoError(t, err)
	require.NotEmpty(t, qr.PNG)

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	assert.Equal(t, pngMagic, qr.PNG[:4])
}
