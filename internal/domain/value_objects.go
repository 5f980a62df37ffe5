package domain

// ProductID is the external identifier from the FicMart catalog
type ProductID string

// Product is a catalog entry as seen by the checkout engine.
type Product struct {
	ID        string
	Name      string
	UnitPrice Money
}
