package domain

type ProductID int64

type Product struct {
	ID       ProductID
	Name     string
	Price    Money
	ImageRef string
}
