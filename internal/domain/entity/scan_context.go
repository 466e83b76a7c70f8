package entity

// ScanMode modo del próximo escaneo.
type ScanMode string

const (
	// ScanGeneral busca el ítem decodificado en todas las categorías y lo selecciona.
	ScanGeneral ScanMode = "general"
	// ScanVerify confirma que el código decodificado coincide con ExpectedID antes de contar.
	ScanVerify ScanMode = "verify"
)

// ScanContext contexto transitorio de un escaneo; no se persiste.
// Se crea justo antes de armar el escáner y se consume exactamente una vez
// por el primer código decodificado; después se descarta.
type ScanContext struct {
	Mode       ScanMode
	ExpectedID string // solo con Mode == verify
}
