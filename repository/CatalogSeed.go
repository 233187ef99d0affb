package repository

import "merchstore/entities"

// DefaultCatalog is the fixed list the store opens with.
func DefaultCatalog() []entities.Product {
	return []entities.Product{
		{
			Id:          "merch-1",
			Name:        "Limited Edition Gold Chain",
			Description: "Exclusive 24K gold chain, one of a kind collector's item with certificate of authenticity.",
			Price:       100000,
			Images:      []string{"/images/gold-chain.jpg"},
			CategoryId:  entities.CategoryMerchandise,
			InStock:     true,
			Featured:    true,
		},
		{
			Id:          "merch-2",
			Name:        "Logo Hoodie",
			Description: "Premium hoodie with embroidered logo",
			Price:       59.99,
			Images:      []string{"/images/hoodie.jpg"},
			CategoryId:  entities.CategoryMerchandise,
			InStock:     true,
		},
		{
			Id:          "merch-3",
			Name:        "Signed Poster",
			Description: "Limited edition signed tour poster",
			Price:       49.99,
			Images:      []string{"/images/poster.jpg"},
			CategoryId:  entities.CategoryMerchandise,
			InStock:     true,
		},
		{
			Id:          "feature-1",
			Name:        "Exclusive Album Feature",
			Description: "A premium verse on your upcoming album with marketing support. Includes studio time and video appearance.",
			Price:       100000,
			Images:      []string{"/images/album-feature.jpg"},
			CategoryId:  entities.CategoryFeatures,
			InStock:     true,
			Featured:    true,
		},
		{
			Id:          "feature-2",
			Name:        "Standard Feature",
			Description: "A standard verse on your track",
			Price:       5000,
			Images:      []string{"/images/feature.jpg"},
			CategoryId:  entities.CategoryFeatures,
			InStock:     true,
		},
		{
			Id:          "studio-1",
			Name:        "Executive Producer Package",
			Description: "Executive production for an entire album. Two weeks of studio time, creative direction and industry connections.",
			Price:       100000,
			Images:      []string{"/images/exec-producer.jpg"},
			CategoryId:  entities.CategoryStudio,
			InStock:     true,
			Featured:    true,
		},
		{
			Id:          "studio-2",
			Name:        "Full Day Studio Session",
			Description: "Full day (8 hours) in the studio",
			Price:       10000,
			Images:      []string{"/images/studio-full.jpg"},
			CategoryId:  entities.CategoryStudio,
			InStock:     true,
		},
		{
			Id:          "concert-1",
			Name:        "Private Concert Experience",
			Description: "A private concert at your location of choice. Full production setup and a 90-minute performance.",
			Price:       100000,
			Images:      []string{"/images/private-concert.jpg"},
			CategoryId:  entities.CategoryConcerts,
			InStock:     true,
			Featured:    true,
		},
		{
			Id:          "concert-2",
			Name:        "Club Performance",
			Description: "A club performance booking",
			Price:       25000,
			Images:      []string{"/images/club.jpg"},
			CategoryId:  entities.CategoryConcerts,
			InStock:     true,
		},
	}
}
