package domain

type CartLine struct {
	ProductID ProductID
	Name      string
	UnitPrice Money
	Quantity  int
	ImageRef  string
}

func (l CartLine) Subtotal() Money {
	return l.UnitPrice.Mul(l.Quantity)
}
