package api

import (
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type productDTO struct {
	ID    int64           `json:"id"`
	Name  string          `json:"nome"`
	Price decimal.Decimal `json:"preco"`
	Image string          `json:"imagem"`
}

type loginRequest struct {
	Document string `json:"documento"`
	Password string `json:"senha"`
}

type loginResponse struct {
	User *userDTO `json:"usuario"`
}

type userDTO struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Document string `json:"documento"`
}

type orderRequest struct {
	Customer customerDTO    `json:"cliente"`
	Items    []orderItemDTO `json:"itens"`
}

type customerDTO struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Phone    string `json:"telefone"`
	Document string `json:"cpf_cnpj"`
	Address  string `json:"endereco"`
}

type orderItemDTO struct {
	ProductID int64   `json:"produto_id"`
	Quantity  int     `json:"quantidade"`
	Price     float64 `json:"preco"`
}

func mapProductToDomain(dto productDTO, unit currency.Unit) domain.Product {
	return domain.Product{
		ID:       domain.ProductID(dto.ID),
		Name:     dto.Name,
		Price:    domain.NewMoney(dto.Price, unit),
		ImageRef: dto.Image,
	}
}

func mapProductsToDomain(dtos []productDTO, unit currency.Unit) []domain.Product {
	products := make([]domain.Product, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, mapProductToDomain(dto, unit))
	}
	return products
}

func mapUserToDomain(dto *userDTO) (domain.User, error) {
	if dto == nil {
		return domain.User{}, fmt.Errorf("response has no usuario")
	}

	return domain.User{
		Name:       dto.Name,
		Email:      dto.Email,
		DocumentID: dto.Document,
	}, nil
}

func mapOrderFromDomain(order domain.Order) orderRequest {
	items := make([]orderItemDTO, 0, len(order.Lines))
	for _, line := range order.Lines {
		items = append(items, orderItemDTO{
			ProductID: int64(line.ProductID),
			Quantity:  line.Quantity,
			Price:     line.UnitPrice.Amount.InexactFloat64(),
		})
	}

	return orderRequest{
		Customer: customerDTO{
			Name:     order.Customer.Name,
			Email:    order.Customer.Email,
			Phone:    order.Customer.Phone,
			Document: order.Customer.DocumentID,
			Address:  order.Customer.Address,
		},
		Items: items,
	}
}
