package ports

// QREncoder define el puerto de salida para generar códigos QR.
// El adaptador concreto vive en infrastructure/qrcode.
type QREncoder interface {
	// EncodePNG codifica content como QR cuadrado de size píxeles en formato PNG.
	EncodePNG(content string, size int) ([]byte, error)
}
