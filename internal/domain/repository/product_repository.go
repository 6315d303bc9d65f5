package repository

import "github.com/GaloDurante/stockApp/internal/domain/entity"

// ProductFilter filtros para el listado de productos.
type ProductFilter struct {
	Category string // vacío = todas
	Search   string // búsqueda por nombre, normalizada sin acentos
	Limit    int
	Offset   int
}

// ProductRepository puerto de persistencia para productos.
// DiscountStock y RestoreStock son las únicas mutaciones de stock permitidas
// fuera del alta del producto.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	List(filter ProductFilter) ([]*entity.Product, int, error)

	// DiscountStock descuenta quantity unidades de forma condicional y atómica
	// (UPDATE ... SET stock = stock - $2 WHERE id = $1 AND stock >= $2).
	// Devuelve false si el stock era insuficiente; no escribe nada en ese caso.
	DiscountStock(productID string, quantity int64) (bool, error)

	// RestoreStock suma quantity unidades al stock (borrado de venta o reposición manual).
	RestoreStock(productID string, quantity int64) error
}
