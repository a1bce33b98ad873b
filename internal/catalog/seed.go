package catalog

import "github.com/fjod/go_storefront/internal/domain"

// ReferenceCatalog is the set of products inserted on first startup.
func ReferenceCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Wireless Headphones",
			Price:       79.99,
			Description: "Premium noise-cancelling headphones",
			Image:       "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&h=500&fit=crop",
			Category:    "Electronics",
		},
		{
			ID:          "2",
			Name:        "Smart Watch",
			Price:       199.99,
			Description: "Advanced fitness tracking smartwatch",
			Image:       "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&h=500&fit=crop",
			Category:    "Electronics",
		},
		{
			ID:          "3",
			Name:        "Portable Speaker",
			Price:       49.99,
			Description: "Waterproof Bluetooth speaker",
			Image:       "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=500&h=500&fit=crop",
			Category:    "Audio",
		},
		{
			ID:          "4",
			Name:        "USB-C Cable",
			Price:       12.99,
			Description: "Fast charging USB-C cable",
			Image:       "https://images.unsplash.com/photo-1625948515291-69613efd103f?w=500&h=500&fit=crop",
			Category:    "Accessories",
		},
		{
			ID:          "5",
			Name:        "Phone Stand",
			Price:       19.99,
			Description: "Adjustable phone stand for desk",
			Image:       "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500&h=500&fit=crop",
			Category:    "Accessories",
		},
		{
			ID:          "6",
			Name:        "Wireless Charger",
			Price:       34.99,
			Description: "Fast wireless charging pad",
			Image:       "https://images.unsplash.com/photo-1591290619762-8b0a3e2f0e3e?w=500&h=500&fit=crop",
			Category:    "Accessories",
		},
		{
			ID:          "7",
			Name:        "Screen Protector",
			Price:       9.99,
			Description: "Tempered glass screen protector",
			Image:       "https://images.unsplash.com/photo-1598327105666-5b89351aff97?w=500&h=500&fit=crop",
			Category:    "Accessories",
		},
		{
			ID:          "8",
			Name:        "Phone Case",
			Price:       24.99,
			Description: "Durable protective phone case",
			Image:       "https://images.unsplash.com/photo-1592286927505-1def25115558?w=500&h=500&fit=crop",
			Category:    "Accessories",
		},
	}
}
