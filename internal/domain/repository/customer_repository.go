package repository

import "github.com/jhoicas/tienda-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	FindByEmail(email string) (*entity.Customer, error)
}
