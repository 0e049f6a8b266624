package store

import (
	"strconv"

	"github.com/phrazzld/catalog-api/internal/csvtable"
	"github.com/phrazzld/catalog-api/internal/domain"
	"github.com/phrazzld/catalog-api/internal/platform/blob"
)

// ProductStore defines the interface for product data persistence.
type ProductStore = RecordStore[domain.Product]

// ProductSchema maps products onto the `id,name,price,description` table.
var ProductSchema = Schema[domain.Product]{
	Entity: "product",
	Table: csvtable.Schema[domain.Product]{
		Columns: []string{"id", "name", "price", "description"},
		Encode: func(p domain.Product) []string {
			return []string{
				strconv.Itoa(p.ID),
				p.Name,
				strconv.FormatFloat(p.Price, 'f', -1, 64),
				p.Description,
			}
		},
		Decode: func(r csvtable.Row) (domain.Product, error) {
			id, err := r.Int("id")
			if err != nil {
				return domain.Product{}, err
			}
			price, err := r.Float("price")
			if err != nil {
				return domain.Product{}, err
			}
			return domain.Product{
				ID:          id,
				Name:        r.Get("name"),
				Price:       price,
				Description: r.Get("description"),
			}, nil
		},
	},
	ID:       func(p domain.Product) int { return p.ID },
	NotFound: ErrProductNotFound,
}

// NewProductStore creates the product collection stored as file in blobs.
func NewProductStore(blobs blob.Store, file string, opts Options) *Collection[domain.Product] {
	return NewCollection(ProductSchema, blobs, file, opts)
}
