package services

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(reservationID uint) ([]byte, error)
}

type DefaultQRGenerator struct {
	BaseURL string
	Size    int
}

func (g DefaultQRGenerator) Generate(reservationID uint) ([]byte, error) {
	size := g.Size
	if size == 0 {
		size = 256
	}
	data := fmt.Sprintf("%s/check-in?reservation_id=%d", strings.TrimRight(g.BaseURL, "/"), reservationID)
	return qrcode.Encode(data, qrcode.Medium, size)
}
