package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderID int) ([]byte, error)
}

// DefaultQRGenerator encodes a pickup link for the order.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g DefaultQRGenerator) Generate(orderID int) ([]byte, error) {
	qrData := fmt.Sprintf("%s/pickup.html?order_id=%d", g.BaseURL, orderID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
