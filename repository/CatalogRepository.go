package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"

	"merchstore/entities"
	"merchstore/models"
)

type CatalogRepository interface {
	GetAll() (prods []entities.Product, err error)
	GetByCategory(categoryId string) (prods []entities.Product, err error)
	GetById(id string) (prod entities.Product, exists bool, err error)
	GetFeatured() (prods []entities.Product, err error)
	Create(prod entities.Product) (err error)
	Update(prod entities.Product) (updated entities.Product, err error)
	Delete(id string) (err error)
	Seed(prods []entities.Product) (err error)
}

type CatalogRepo struct {
	db *sql.DB
}

// NewCatalogRepository wraps an sqlite connection. The store runs on
// :memory:, so the catalog and any admin edits die with the process.
func NewCatalogRepository(conn *sql.DB) (CatalogRepository, error) {
	if conn == nil {
		return nil, errors.New("conn must be non-nil")
	}
	err := conn.Ping()
	if err != nil {
		return nil, err
	}
	if _, err = conn.Exec(`CREATE TABLE IF NOT EXISTS Products (
		Id TEXT PRIMARY KEY,
		Name TEXT NOT NULL,
		Description TEXT NOT NULL DEFAULT '',
		Price REAL NOT NULL,
		Images TEXT NOT NULL DEFAULT '[]',
		CategoryId TEXT NOT NULL,
		InStock INTEGER NOT NULL DEFAULT 1,
		Featured INTEGER NOT NULL DEFAULT 0
	)`); err != nil {
		return nil, err
	}
	return &CatalogRepo{
		db: conn,
	}, nil
}

// Seed loads the fixed product list; existing rows win.
func (c *CatalogRepo) Seed(prods []entities.Product) (err error) {
	for _, p := range prods {
		_, exists, e := c.GetById(p.Id)
		if e != nil {
			err = e
			return
		}
		if exists {
			continue
		}
		if err = c.Create(p); err != nil {
			return
		}
	}
	return
}

const productColumns = "Id, Name, Description, Price, Images, CategoryId, InStock, Featured"

func (c *CatalogRepo) GetAll() (prods []entities.Product, err error) {
	return c.query("SELECT " + productColumns + " FROM Products")
}

func (c *CatalogRepo) GetByCategory(categoryId string) (prods []entities.Product, err error) {
	return c.query("SELECT "+productColumns+" FROM Products WHERE CategoryId = ?", categoryId)
}

func (c *CatalogRepo) GetFeatured() (prods []entities.Product, err error) {
	return c.query("SELECT " + productColumns + " FROM Products WHERE Featured = 1")
}

func (c *CatalogRepo) GetById(id string) (prod entities.Product, exists bool, err error) {
	row := c.db.QueryRow("SELECT "+productColumns+" FROM Products WHERE Id = ?", id)
	prod, err = scanProduct(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			err = nil
		} else {
			log.Printf("GetById: %v", err)
			err = models.ErrServerError
		}
		return
	}
	exists = true
	return
}

func (c *CatalogRepo) Create(prod entities.Product) (err error) {
	images, err := json.Marshal(prod.Images)
	if err != nil {
		log.Printf("Create: Marshal: %v", err)
		err = models.ErrServerError
		return
	}
	_, err = c.db.Exec("INSERT INTO Products ("+productColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		prod.Id, prod.Name, prod.Description, prod.Price, string(images), prod.CategoryId, prod.InStock, prod.Featured)
	if err != nil {
		log.Printf("Create: %v", err)
		err = models.ErrServerError
	}
	return
}

func (c *CatalogRepo) Update(prod entities.Product) (updated entities.Product, err error) {
	images, err := json.Marshal(prod.Images)
	if err != nil {
		log.Printf("Update: Marshal: %v", err)
		err = models.ErrServerError
		return
	}
	res, err := c.db.Exec("UPDATE Products SET Name = ?, Description = ?, Price = ?, Images = ?, CategoryId = ?, InStock = ?, Featured = ? WHERE Id = ?",
		prod.Name, prod.Description, prod.Price, string(images), prod.CategoryId, prod.InStock, prod.Featured, prod.Id)
	if err != nil {
		log.Printf("Update: %v", err)
		err = models.ErrServerError
		return
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		err = models.ErrNotFoundError
		return
	}
	updated = prod
	return
}

func (c *CatalogRepo) Delete(id string) (err error) {
	_, err = c.db.Exec("DELETE FROM Products WHERE Id = ?", id)
	if err != nil {
		log.Printf("Delete: %v", err)
		err = models.ErrServerError
	}
	return
}

func (c *CatalogRepo) query(q string, args ...any) (prods []entities.Product, err error) {
	rows, err := c.db.Query(q, args...)
	if err != nil {
		log.Printf("query: %v", err)
		err = models.ErrServerError
		return
	}
	defer rows.Close()
	prods = []entities.Product{}
	for rows.Next() {
		p, e := scanProduct(rows.Scan)
		if e != nil {
			log.Printf("query: scan: %v", e)
			err = models.ErrServerError
			return
		}
		prods = append(prods, p)
	}
	if err = rows.Err(); err != nil {
		log.Printf("query: rows: %v", err)
		err = models.ErrServerError
	}
	return
}

func scanProduct(scan func(...any) error) (prod entities.Product, err error) {
	var images string
	err = scan(&prod.Id, &prod.Name, &prod.Description, &prod.Price, &images,
		&prod.CategoryId, &prod.InStock, &prod.Featured)
	if err != nil {
		return
	}
	if e := json.Unmarshal([]byte(images), &prod.Images); e != nil {
		prod.Images = []string{}
	}
	return
}
