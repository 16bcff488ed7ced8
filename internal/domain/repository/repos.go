package repository

// Repos agrupa los repositorios atados a una misma conexión o transacción.
type Repos struct {
	Accounts  AccountRepository
	Movements MovementRepository
	Sales     SaleRepository
	Orders    PurchaseOrderRepository
	Parties   PartyRepository
}
