package entity

// Bucket destino automático de la distribución GYA.
type Bucket string

const (
	BucketCost    Bucket = "cost"    // Bóveda Monte: precio de compra × cantidad
	BucketFreight Bucket = "freight" // Fletes: flete × cantidad
	BucketProfit  Bucket = "profit"  // Utilidades: el resto
)

// Buckets orden fijo en el que se generan los movimientos de distribución.
var Buckets = []Bucket{BucketCost, BucketFreight, BucketProfit}

// BucketAccounts catálogo fijo bucket → cuenta destino.
type BucketAccounts struct {
	Cost    string
	Freight string
	Profit  string
}

// For devuelve la cuenta configurada para el bucket.
func (b BucketAccounts) For(bucket Bucket) string {
	switch bucket {
	case BucketCost:
		return b.Cost
	case BucketFreight:
		return b.Freight
	case BucketProfit:
		return b.Profit
	}
	return ""
}

// Contains indica si la cuenta es uno de los destinos automáticos.
func (b BucketAccounts) Contains(accountID string) bool {
	return accountID != "" && (accountID == b.Cost || accountID == b.Freight || accountID == b.Profit)
}
